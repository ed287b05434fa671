// Package integrity runs the data-integrity checks on an articulation record:
// its constants, and how its joint-name patterns line up with its joint
// manifest.
//
// Errors are violations the simulator would reject at scene-load time.
// Warnings flag values that load fine but are likely miscalibrated, such as an
// initial joint position sitting outside the soft limits.
package integrity

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/jointmatch"
)

// Report is the outcome of checking one articulation.
type Report struct {
	Robot    string
	Errors   []error
	Warnings []string
}

// OK reports whether the record has no errors. Warnings do not count.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Err combines all errors into one, or returns nil.
func (r *Report) Err() error {
	return multierr.Combine(r.Errors...)
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Errorf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check validates cfg. When cfg has a joint manifest it also checks that:
//   - the actuator groups partition the joints, without gaps or overlaps;
//   - every init-state pattern resolves, and every joint it sets is driven;
//   - initial positions lie within hard limits (error) and soft limits (warning);
//   - actuator limits do not exceed the manifest's joint limits (warning).
//
// Without a manifest only the patterns themselves are checked.
func Check(cfg *config.Articulation) *Report {
	r := &Report{Robot: cfg.Name}
	r.Errors = append(r.Errors, multierr.Errors(cfg.Validate(""))...)

	groups := make(map[string][]string, len(cfg.Actuators))
	for name, act := range cfg.Actuators {
		if act == nil {
			continue
		}
		groups[name] = act.JointNamesExpr
	}
	if !checkPatterns(r, cfg, groups) {
		return r
	}

	joints := cfg.JointNames()
	if len(joints) == 0 {
		return r
	}

	assign, err := jointmatch.Partition(groups, joints)
	if err != nil {
		r.errorf("actuators: %w", err)
	}
	for _, name := range cfg.ActuatorNames() {
		if cfg.Actuators[name] == nil {
			continue
		}
		if _, err := jointmatch.ResolveNames(cfg.Actuators[name].JointNamesExpr, joints); err != nil {
			r.errorf("actuators.%s: %w", name, err)
		}
	}

	driven := func(j string) bool {
		if assign != nil {
			_, ok := assign[j]
			return ok
		}
		for _, pats := range groups {
			if m, err := jointmatch.Compile(pats...); err == nil && m.Match(j) {
				return true
			}
		}
		return false
	}

	pos := checkValues(r, "init_state.joint_pos", cfg.InitState.JointPos, joints, driven)
	checkValues(r, "init_state.joint_vel", cfg.InitState.JointVel, joints, driven)
	checkLimits(r, cfg, pos, assign)
	return r
}

// checkPatterns compiles every pattern and reports compile failures. It
// returns false if any pattern is invalid.
func checkPatterns(r *Report, cfg *config.Articulation, groups map[string][]string) bool {
	ok := true
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)
	for _, g := range names {
		if _, err := jointmatch.Compile(groups[g]...); err != nil {
			r.errorf("actuators.%s: %w", g, err)
			ok = false
		}
	}
	for _, f := range []struct {
		field  string
		values config.JointValues
	}{
		{"init_state.joint_pos", cfg.InitState.JointPos},
		{"init_state.joint_vel", cfg.InitState.JointVel},
	} {
		if _, err := jointmatch.Compile(f.values.Keys()...); err != nil {
			r.errorf("%s: %w", f.field, err)
			ok = false
		}
	}
	return ok
}

// checkValues resolves one init-state map and requires every joint it sets
// to be driven by some actuator group.
func checkValues(r *Report, field string, values config.JointValues, joints []string, driven func(string) bool) map[string]float64 {
	if len(values) == 0 {
		return nil
	}
	resolved, err := jointmatch.ResolveValues(values, joints)
	if err != nil {
		r.errorf("%s: %w", field, err)
		return nil
	}
	for _, j := range joints {
		if _, ok := resolved[j]; ok && !driven(j) {
			r.errorf("%s: joint %q has an initial value but no actuator group drives it", field, j)
		}
	}
	return resolved
}

func checkLimits(r *Report, cfg *config.Articulation, pos map[string]float64, assign map[string]string) {
	for _, j := range cfg.Joints {
		if v, ok := pos[j.Name]; ok && j.HasLimits {
			if v < j.Lower || v > j.Upper {
				r.errorf("init_state.joint_pos: joint %q initial position %v is outside its limits [%v, %v]", j.Name, v, j.Lower, j.Upper)
			} else if lo, hi := j.SoftLimits(cfg.SoftJointPosLimitFactor); v < lo || v > hi {
				r.warnf("joint %q initial position %v is outside its soft limits [%.4g, %.4g]", j.Name, v, lo, hi)
			}
		}

		group, ok := assign[j.Name]
		if !ok {
			continue
		}
		act := cfg.Actuators[group]
		if j.Effort > 0 && act.EffortLimit > j.Effort {
			r.warnf("actuator group %q effort limit %v exceeds joint %q limit %v", group, act.EffortLimit, j.Name, j.Effort)
		}
		if j.Velocity > 0 && act.VelocityLimit > j.Velocity {
			r.warnf("actuator group %q velocity limit %v exceeds joint %q limit %v", group, act.VelocityLimit, j.Name, j.Velocity)
		}
	}
}

// IsPartitionError reports whether err carries a joint partition failure.
func IsPartitionError(err error) bool {
	var perr *jointmatch.PartitionError
	return errors.As(err, &perr)
}
