package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/integrity"
)

// Check runs the integrity checks on one robot.
func (r *Registry) Check(name string) (*integrity.Report, error) {
	cfg, ok := r.robots[name]
	if !ok {
		return nil, fmt.Errorf("unknown robot %q", name)
	}
	return integrity.Check(cfg), nil
}

// Reports runs the integrity checks on every robot, sorted by name.
func (r *Registry) Reports() []*integrity.Report {
	names := r.Names()
	reports := make([]*integrity.Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, integrity.Check(r.robots[name]))
	}
	return reports
}

// ValidateRegistry checks every robot and fails if any record has integrity
// errors. Warnings are logged and do not fail validation.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, report := range r.Reports() {
		robotLogger := ctxlog.FromContext(ctxlog.WithRobot(ctx, report.Robot))
		for _, w := range report.Warnings {
			robotLogger.Warn("Robot configuration warning.", "source", r.sources[report.Robot], "warning", w)
		}
		for _, e := range report.Errors {
			errs = append(errs, fmt.Sprintf("robot '%s': %v", report.Robot, e))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "robots", r.Len())
	return nil
}
