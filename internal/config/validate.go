package config

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
)

// FieldError reports a single invalid field of an articulation record.
type FieldError struct {
	Path   string
	Reason string
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func fieldErr(path, field, format string, args ...any) error {
	return &FieldError{Path: joinPath(path, field), Reason: fmt.Sprintf(format, args...)}
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// nonNegative reports a FieldError unless v is finite and >= 0.
func nonNegative(path, field string, v float64) error {
	if !finite(v) || v < 0 {
		return fieldErr(path, field, "must be a non-negative number, got %v", v)
	}
	return nil
}

// Validate checks the record's constants. It does not resolve joint-name
// patterns; see the integrity package for that. Every violation is returned,
// combined with multierr, each as a *FieldError rooted at path.
func (a *Articulation) Validate(path string) error {
	var errs error
	if a.Name == "" {
		errs = multierr.Append(errs, fieldErr(path, "name", "is required"))
	}
	errs = multierr.Append(errs, a.Spawn.validate(joinPath(path, "spawn")))
	errs = multierr.Append(errs, a.InitState.validate(joinPath(path, "init_state")))

	if f := a.SoftJointPosLimitFactor; !finite(f) || f <= 0 || f > 1 {
		errs = multierr.Append(errs, fieldErr(path, "soft_joint_pos_limit_factor", "must be in (0, 1], got %v", f))
	}

	if len(a.Actuators) == 0 {
		errs = multierr.Append(errs, fieldErr(path, "actuators", "at least one actuator group is required"))
	}
	for _, name := range a.ActuatorNames() {
		errs = multierr.Append(errs, a.Actuators[name].validate(joinPath(path, "actuators", name)))
	}

	seen := make(map[string]struct{}, len(a.Joints))
	for i, j := range a.Joints {
		jointPath := joinPath(path, fmt.Sprintf("joints[%d]", i))
		if _, dup := seen[j.Name]; dup {
			errs = multierr.Append(errs, fieldErr(jointPath, "name", "duplicate joint %q", j.Name))
		}
		seen[j.Name] = struct{}{}
		errs = multierr.Append(errs, j.validate(jointPath))
	}
	return errs
}

func (s UsdFile) validate(path string) error {
	var errs error
	if s.USDPath == "" {
		errs = multierr.Append(errs, fieldErr(path, "usd_path", "is required"))
	}

	rp := joinPath(path, "rigid_props")
	errs = multierr.Append(errs, nonNegative(rp, "linear_damping", s.RigidProps.LinearDamping))
	errs = multierr.Append(errs, nonNegative(rp, "angular_damping", s.RigidProps.AngularDamping))
	errs = multierr.Append(errs, nonNegative(rp, "max_linear_velocity", s.RigidProps.MaxLinearVelocity))
	errs = multierr.Append(errs, nonNegative(rp, "max_angular_velocity", s.RigidProps.MaxAngularVelocity))
	errs = multierr.Append(errs, nonNegative(rp, "max_depenetration_velocity", s.RigidProps.MaxDepenetrationVelocity))

	// PhysX accepts 1..255 position and 0..255 velocity iterations.
	ap := joinPath(path, "articulation_props")
	if n := s.ArticulationProps.SolverPositionIterationCount; n < 1 || n > 255 {
		errs = multierr.Append(errs, fieldErr(ap, "solver_position_iteration_count", "must be in [1, 255], got %d", n))
	}
	if n := s.ArticulationProps.SolverVelocityIterationCount; n < 0 || n > 255 {
		errs = multierr.Append(errs, fieldErr(ap, "solver_velocity_iteration_count", "must be in [0, 255], got %d", n))
	}
	return errs
}

func (s InitialState) validate(path string) error {
	var errs error
	if !finite(s.Pos.X) || !finite(s.Pos.Y) || !finite(s.Pos.Z) {
		errs = multierr.Append(errs, fieldErr(path, "pos", "must be finite, got %v", s.Pos))
	}
	for _, k := range s.JointPos.Keys() {
		if k == "" {
			errs = multierr.Append(errs, fieldErr(path, "joint_pos", "empty joint pattern"))
		}
		if v := s.JointPos[k]; !finite(v) {
			errs = multierr.Append(errs, fieldErr(path, fmt.Sprintf("joint_pos[%q]", k), "must be finite, got %v", v))
		}
	}
	for _, k := range s.JointVel.Keys() {
		if k == "" {
			errs = multierr.Append(errs, fieldErr(path, "joint_vel", "empty joint pattern"))
		}
		if v := s.JointVel[k]; !finite(v) {
			errs = multierr.Append(errs, fieldErr(path, fmt.Sprintf("joint_vel[%q]", k), "must be finite, got %v", v))
		}
	}
	return errs
}

func (a *Actuator) validate(path string) error {
	if a == nil {
		return fieldErr(path, "", "actuator group is nil")
	}
	var errs error
	if a.Model != DelayedPD && a.Model != DCMotor {
		errs = multierr.Append(errs, fieldErr(path, "model", "unknown actuator model %q", a.Model))
	}
	if len(a.JointNamesExpr) == 0 {
		errs = multierr.Append(errs, fieldErr(path, "joint_names_expr", "at least one joint pattern is required"))
	}
	for i, expr := range a.JointNamesExpr {
		if expr == "" {
			errs = multierr.Append(errs, fieldErr(path, fmt.Sprintf("joint_names_expr[%d]", i), "empty joint pattern"))
		}
	}

	errs = multierr.Append(errs, nonNegative(path, "effort_limit", a.EffortLimit))
	errs = multierr.Append(errs, nonNegative(path, "velocity_limit", a.VelocityLimit))
	errs = multierr.Append(errs, nonNegative(path, "stiffness", a.Stiffness))
	errs = multierr.Append(errs, nonNegative(path, "damping", a.Damping))
	errs = multierr.Append(errs, nonNegative(path, "friction", a.Friction))
	errs = multierr.Append(errs, nonNegative(path, "armature", a.Armature))

	if a.MinDelay < 0 {
		errs = multierr.Append(errs, fieldErr(path, "min_delay", "must be non-negative, got %d", a.MinDelay))
	}
	if a.MinDelay > a.MaxDelay {
		errs = multierr.Append(errs, fieldErr(path, "max_delay", "must be >= min_delay (%d), got %d", a.MinDelay, a.MaxDelay))
	}

	if a.Model == DCMotor {
		if !finite(a.SaturationEffort) || a.SaturationEffort < a.EffortLimit {
			errs = multierr.Append(errs, fieldErr(path, "saturation_effort", "must be >= effort_limit (%v) for a dc_motor, got %v", a.EffortLimit, a.SaturationEffort))
		}
	}
	return errs
}

func (j Joint) validate(path string) error {
	var errs error
	if j.Name == "" {
		errs = multierr.Append(errs, fieldErr(path, "name", "is required"))
	}
	if _, err := ParseJointType(string(j.Type)); err != nil || j.Type == "" {
		errs = multierr.Append(errs, fieldErr(path, "type", "unknown joint type %q", j.Type))
	}
	if j.HasLimits {
		if j.Type == Continuous {
			errs = multierr.Append(errs, fieldErr(path, "limits", "continuous joint %q cannot have position limits", j.Name))
		}
		if !finite(j.Lower) || !finite(j.Upper) || j.Lower > j.Upper {
			errs = multierr.Append(errs, fieldErr(path, "limits", "lower (%v) must not exceed upper (%v)", j.Lower, j.Upper))
		}
	}
	errs = multierr.Append(errs, nonNegative(path, "effort", j.Effort))
	errs = multierr.Append(errs, nonNegative(path, "velocity", j.Velocity))
	return errs
}
