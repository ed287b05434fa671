package hcl

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/schema"
	"github.com/vk/legcfg/internal/urdf"
)

// translateRobot converts a decoded robot block into the agnostic model. dir
// is the directory of the defining file; relative urdf paths resolve against
// it.
func translateRobot(block *hcl.Block, r *schema.Robot, dir string) (*config.RobotDefinition, error) {
	def := &config.RobotDefinition{
		Name:                    block.Labels[0],
		Source:                  fmt.Sprintf("%s:%d", block.DefRange.Filename, block.DefRange.Start.Line),
		Description:             r.Description,
		PrimPath:                r.PrimPath,
		SoftJointPosLimitFactor: r.SoftJointPosLimitFactor,
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("robot %q at %s: %s", def.Name, def.Source, fmt.Sprintf(format, args...))
	}

	if r.Extends != nil {
		def.Extends = *r.Extends
	}
	if r.Spawn != nil {
		spawn := translateSpawn(r.Spawn)
		def.Spawn = &spawn
	}

	if st := r.InitState; st != nil {
		if st.Pos != nil {
			if len(st.Pos) != 3 {
				return nil, fail("init_state.pos must have 3 elements, got %d", len(st.Pos))
			}
			def.Pos = &config.Position{X: st.Pos[0], Y: st.Pos[1], Z: st.Pos[2]}
		}
		def.JointPos = config.JointValues(st.JointPos)
		def.JointVel = config.JointValues(st.JointVel)
	}

	if len(r.Actuators) > 0 {
		def.Actuators = make(map[string]*config.Actuator, len(r.Actuators))
	}
	for _, a := range r.Actuators {
		if _, dup := def.Actuators[a.Name]; dup {
			return nil, fail("actuator %q is defined twice", a.Name)
		}
		act, err := translateActuator(a)
		if err != nil {
			return nil, fail("actuator %q: %v", a.Name, err)
		}
		def.Actuators[a.Name] = act
	}

	if r.URDF != nil {
		path := *r.URDF
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		manifest, err := urdf.ParseFile(path)
		if err != nil {
			return nil, fail("%v", err)
		}
		def.Joints = manifest.Joints
	}

	seen := make(map[string]bool, len(r.Joints))
	for _, j := range r.Joints {
		if seen[j.Name] {
			return nil, fail("joint %q is defined twice", j.Name)
		}
		seen[j.Name] = true
		joint, err := translateJoint(j)
		if err != nil {
			return nil, fail("joint %q: %v", j.Name, err)
		}
		def.Joints = upsertJoint(def.Joints, joint)
	}

	return def, nil
}

func translateSpawn(s *schema.Spawn) config.UsdFile {
	out := config.UsdFile{
		USDPath:                s.USDPath,
		ActivateContactSensors: s.ActivateContactSensors,
	}
	if rp := s.RigidProps; rp != nil {
		out.RigidProps = config.RigidBodyProperties{
			DisableGravity:           rp.DisableGravity,
			RetainAccelerations:      rp.RetainAccelerations,
			LinearDamping:            rp.LinearDamping,
			AngularDamping:           rp.AngularDamping,
			MaxLinearVelocity:        rp.MaxLinearVelocity,
			MaxAngularVelocity:       rp.MaxAngularVelocity,
			MaxDepenetrationVelocity: rp.MaxDepenetrationVelocity,
		}
	}
	if ap := s.ArticulationProps; ap != nil {
		out.ArticulationProps = config.ArticulationRootProperties{
			EnabledSelfCollisions:        ap.EnabledSelfCollisions,
			SolverPositionIterationCount: ap.SolverPositionIterationCount,
			SolverVelocityIterationCount: ap.SolverVelocityIterationCount,
		}
	}
	return out
}

func translateActuator(a *schema.Actuator) (*config.Actuator, error) {
	model, err := config.ParseActuatorModel(a.Model)
	if err != nil {
		return nil, err
	}
	return &config.Actuator{
		Model:            model,
		JointNamesExpr:   append([]string(nil), a.JointNamesExpr...),
		EffortLimit:      a.EffortLimit,
		VelocityLimit:    a.VelocityLimit,
		Stiffness:        a.Stiffness,
		Damping:          a.Damping,
		Friction:         a.Friction,
		Armature:         a.Armature,
		SaturationEffort: a.SaturationEffort,
		MinDelay:         a.MinDelay,
		MaxDelay:         a.MaxDelay,
	}, nil
}

func translateJoint(j *schema.Joint) (config.Joint, error) {
	typ, err := config.ParseJointType(j.Type)
	if err != nil {
		return config.Joint{}, err
	}
	out := config.Joint{Name: j.Name, Type: typ, Effort: j.Effort, Velocity: j.Velocity}
	switch {
	case j.Lower != nil && j.Upper != nil:
		out.HasLimits = true
		out.Lower, out.Upper = *j.Lower, *j.Upper
	case j.Lower != nil || j.Upper != nil:
		return config.Joint{}, fmt.Errorf("lower and upper must be given together")
	}
	return out, nil
}

// upsertJoint replaces the joint of the same name or appends a new one.
func upsertJoint(joints []config.Joint, j config.Joint) []config.Joint {
	for i := range joints {
		if joints[i].Name == j.Name {
			joints[i] = j
			return joints
		}
	}
	return append(joints, j)
}
