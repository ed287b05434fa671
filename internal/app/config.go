package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vk/legcfg/internal/export"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	AssetsDir   string   // root of the USD assets
	ConfigPaths []string // hcl robot files or directories

	// Robots selects the records to act on. Empty means every robot.
	Robots   []string
	Format   string
	PrimPath string
	Check    bool

	// ServePort starts the HTTP catalog when > 0.
	ServePort   int
	ReloadDelay time.Duration

	PublishURL       string
	PublishNamespace string
	PublishEvent     string
	PublishAck       string
	PublishTimeout   time.Duration
	PublishInsecure  bool // skip TLS certificate verification

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AssetsDir == "" {
		return nil, errors.New("AssetsDir is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = export.DefaultFormat
	}
	if _, err := export.ForFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("invalid serve port %d: must be between 0 and 65535", cfg.ServePort)
	}
	if cfg.ReloadDelay <= 0 {
		cfg.ReloadDelay = 200 * time.Millisecond
	}

	modes := 0
	for _, on := range []bool{cfg.Check, cfg.ServePort > 0, cfg.PublishURL != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("check, serve and publish modes are mutually exclusive")
	}

	if cfg.PublishURL != "" {
		if _, err := url.Parse(cfg.PublishURL); err != nil {
			return nil, fmt.Errorf("invalid publish URL: %w", err)
		}
	}
	if cfg.PublishNamespace != "" && !strings.HasPrefix(cfg.PublishNamespace, "/") {
		return nil, fmt.Errorf("invalid publish namespace %q: must start with '/'", cfg.PublishNamespace)
	}
	if cfg.PublishTimeout < 0 {
		return nil, fmt.Errorf("invalid publish timeout %v: must not be negative", cfg.PublishTimeout)
	}

	return &cfg, nil
}
