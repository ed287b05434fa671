package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/export"
	"github.com/vk/legcfg/internal/integrity"
	"github.com/vk/legcfg/internal/registry"
)

// Run executes the mode selected by the configuration: check, serve,
// publish, or rendering the selected robots to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	reg := a.Registry()
	robots, err := a.selectRobots(reg)
	if err != nil {
		return err
	}

	if a.config.Check {
		return a.runCheck(reg, robots)
	}

	if err := reg.ValidateRegistry(ctx); err != nil {
		return err
	}

	switch {
	case a.config.ServePort > 0:
		return a.serve(ctx)
	case a.config.PublishURL != "":
		return a.publish(ctx, robots)
	}

	enc, err := export.ForFormat(a.config.Format)
	if err != nil {
		return err
	}
	if err := enc.Encode(a.outW, robots...); err != nil {
		return fmt.Errorf("failed to render robots: %w", err)
	}
	a.logger.Debug("App.Run method finished.", "robots", len(robots), "format", a.config.Format)
	return nil
}

// selectRobots resolves the requested robot names, or every robot when none
// were requested, and applies the prim path override to the copies.
func (a *App) selectRobots(reg *registry.Registry) ([]*config.Articulation, error) {
	names := a.config.Robots
	if len(names) == 0 {
		names = reg.Names()
	}

	robots := make([]*config.Articulation, 0, len(names))
	for _, name := range names {
		cfg, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		if a.config.PrimPath != "" {
			cfg = cfg.WithPrimPath(a.config.PrimPath)
		}
		robots = append(robots, cfg)
	}
	return robots, nil
}

// runCheck prints the integrity report of each selected robot and fails if
// any has errors.
func (a *App) runCheck(reg *registry.Registry, robots []*config.Articulation) error {
	failed := 0
	for _, cfg := range robots {
		report := integrity.Check(cfg)
		if !report.OK() {
			failed++
		}
		if err := writeReport(a.outW, report, reg.Source(cfg.Name)); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("integrity check failed for %d of %d robots", failed, len(robots))
	}
	return nil
}

func writeReport(w io.Writer, r *integrity.Report, source string) error {
	status := "ok"
	if !r.OK() {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s (%s): %s\n", r.Robot, source, status); err != nil {
		return err
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "  error: %v\n", e); err != nil {
			return err
		}
	}
	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "  warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
