package config

import (
	"context"
)

// Loader is the interface for a format-specific robot definition loader.
type Loader interface {
	// Load reads robot definitions from the given files or directories and
	// translates them into the format-agnostic model. Definitions are returned
	// in file order; inheritance through Extends is resolved by the caller.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
