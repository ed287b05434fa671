// Package cli turns the legcfg command line into a validated app.Config.
// Usage mistakes come back as *ExitError with code 2; the caller owns the
// process exit.
package cli
