package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/schema"
)

// Encode writes complete robot records as `robot` blocks. Every field is
// written, so loading the output without `extends` yields equal records.
func Encode(cfgs ...*config.Articulation) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, cfg := range cfgs {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock(schema.RobotBlockType, []string{cfg.Name})
		if err := encodeRobot(block.Body(), cfg); err != nil {
			return nil, fmt.Errorf("failed to encode robot %q: %w", cfg.Name, err)
		}
	}
	return f.Bytes(), nil
}

func encodeRobot(body *hclwrite.Body, cfg *config.Articulation) error {
	if cfg.Description != "" {
		body.SetAttributeValue("description", cty.StringVal(cfg.Description))
	}
	if cfg.PrimPath != "" {
		body.SetAttributeValue("prim_path", cty.StringVal(cfg.PrimPath))
	}
	body.SetAttributeValue("soft_joint_pos_limit_factor", cty.NumberFloatVal(cfg.SoftJointPosLimitFactor))

	body.AppendNewline()
	encodeSpawn(body.AppendNewBlock("spawn", nil).Body(), cfg.Spawn)

	body.AppendNewline()
	if err := encodeInitState(body.AppendNewBlock("init_state", nil).Body(), cfg.InitState); err != nil {
		return err
	}

	for _, name := range cfg.ActuatorNames() {
		body.AppendNewline()
		block := body.AppendNewBlock("actuator", []string{name})
		if err := encodeActuator(block.Body(), cfg.Actuators[name]); err != nil {
			return fmt.Errorf("actuator %q: %w", name, err)
		}
	}

	if len(cfg.Joints) > 0 {
		body.AppendNewline()
	}
	for _, j := range cfg.Joints {
		encodeJoint(body.AppendNewBlock("joint", []string{j.Name}).Body(), j)
	}
	return nil
}

func encodeSpawn(body *hclwrite.Body, s config.UsdFile) {
	body.SetAttributeValue("usd_path", cty.StringVal(s.USDPath))
	body.SetAttributeValue("activate_contact_sensors", cty.BoolVal(s.ActivateContactSensors))

	body.AppendNewline()
	rp := body.AppendNewBlock("rigid_props", nil).Body()
	rp.SetAttributeValue("disable_gravity", cty.BoolVal(s.RigidProps.DisableGravity))
	rp.SetAttributeValue("retain_accelerations", cty.BoolVal(s.RigidProps.RetainAccelerations))
	rp.SetAttributeValue("linear_damping", cty.NumberFloatVal(s.RigidProps.LinearDamping))
	rp.SetAttributeValue("angular_damping", cty.NumberFloatVal(s.RigidProps.AngularDamping))
	rp.SetAttributeValue("max_linear_velocity", cty.NumberFloatVal(s.RigidProps.MaxLinearVelocity))
	rp.SetAttributeValue("max_angular_velocity", cty.NumberFloatVal(s.RigidProps.MaxAngularVelocity))
	rp.SetAttributeValue("max_depenetration_velocity", cty.NumberFloatVal(s.RigidProps.MaxDepenetrationVelocity))

	body.AppendNewline()
	ap := body.AppendNewBlock("articulation_props", nil).Body()
	ap.SetAttributeValue("enabled_self_collisions", cty.BoolVal(s.ArticulationProps.EnabledSelfCollisions))
	ap.SetAttributeValue("solver_position_iteration_count", cty.NumberIntVal(int64(s.ArticulationProps.SolverPositionIterationCount)))
	ap.SetAttributeValue("solver_velocity_iteration_count", cty.NumberIntVal(int64(s.ArticulationProps.SolverVelocityIterationCount)))
}

func encodeInitState(body *hclwrite.Body, st config.InitialState) error {
	body.SetAttributeValue("pos", cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(st.Pos.X),
		cty.NumberFloatVal(st.Pos.Y),
		cty.NumberFloatVal(st.Pos.Z),
	}))
	for _, attr := range []struct {
		name   string
		values config.JointValues
	}{
		{"joint_pos", st.JointPos},
		{"joint_vel", st.JointVel},
	} {
		if len(attr.values) == 0 {
			continue
		}
		val, err := toCtyValue(map[string]float64(attr.values))
		if err != nil {
			return fmt.Errorf("%s: %w", attr.name, err)
		}
		body.SetAttributeValue(attr.name, val)
	}
	return nil
}

func encodeActuator(body *hclwrite.Body, a *config.Actuator) error {
	exprs, err := toCtyValue(a.JointNamesExpr)
	if err != nil {
		return err
	}
	body.SetAttributeValue("model", cty.StringVal(string(a.Model)))
	body.SetAttributeValue("joint_names_expr", exprs)
	body.SetAttributeValue("effort_limit", cty.NumberFloatVal(a.EffortLimit))
	body.SetAttributeValue("velocity_limit", cty.NumberFloatVal(a.VelocityLimit))
	body.SetAttributeValue("stiffness", cty.NumberFloatVal(a.Stiffness))
	body.SetAttributeValue("damping", cty.NumberFloatVal(a.Damping))
	body.SetAttributeValue("friction", cty.NumberFloatVal(a.Friction))
	body.SetAttributeValue("armature", cty.NumberFloatVal(a.Armature))
	if a.Model == config.DCMotor || a.SaturationEffort != 0 {
		body.SetAttributeValue("saturation_effort", cty.NumberFloatVal(a.SaturationEffort))
	}
	body.SetAttributeValue("min_delay", cty.NumberIntVal(int64(a.MinDelay)))
	body.SetAttributeValue("max_delay", cty.NumberIntVal(int64(a.MaxDelay)))
	return nil
}

func encodeJoint(body *hclwrite.Body, j config.Joint) {
	body.SetAttributeValue("type", cty.StringVal(string(j.Type)))
	if j.HasLimits {
		body.SetAttributeValue("lower", cty.NumberFloatVal(j.Lower))
		body.SetAttributeValue("upper", cty.NumberFloatVal(j.Upper))
	}
	if j.Effort != 0 {
		body.SetAttributeValue("effort", cty.NumberFloatVal(j.Effort))
	}
	if j.Velocity != 0 {
		body.SetAttributeValue("velocity", cty.NumberFloatVal(j.Velocity))
	}
}

// toCtyValue converts a native Go value into its corresponding cty.Value.
func toCtyValue(v any) (cty.Value, error) {
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
