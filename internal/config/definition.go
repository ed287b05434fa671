package config

// Model is everything a Loader read from its files.
type Model struct {
	Robots []*RobotDefinition
}

// RobotDefinition is a possibly partial robot record read from a file. Nil
// pointer fields were not given and are inherited from the base named by
// Extends (or left at their zero value when there is no base).
type RobotDefinition struct {
	Name    string
	Extends string
	// Source is a human-readable location of the definition, e.g. "robots.hcl:3".
	Source string

	Description             *string
	PrimPath                *string
	SoftJointPosLimitFactor *float64

	Spawn    *UsdFile
	Pos      *Position
	JointPos JointValues
	JointVel JointValues

	Actuators map[string]*Actuator
	Joints    []Joint
}

// Apply overlays the definition onto base and returns the resulting record.
// base is not modified and may be nil. Spawn and Pos replace the base values
// when given; joint value maps and actuator groups merge by key; joints merge
// by name, keeping the base order and appending new ones.
func (d *RobotDefinition) Apply(base *Articulation) *Articulation {
	var out *Articulation
	if base != nil {
		out = base.Clone()
	} else {
		out = &Articulation{}
	}
	out.Name = d.Name

	if d.Description != nil {
		out.Description = *d.Description
	}
	if d.PrimPath != nil {
		out.PrimPath = *d.PrimPath
	}
	if d.SoftJointPosLimitFactor != nil {
		out.SoftJointPosLimitFactor = *d.SoftJointPosLimitFactor
	}
	if d.Spawn != nil {
		out.Spawn = *d.Spawn
	}
	if d.Pos != nil {
		out.InitState.Pos = *d.Pos
	}
	out.InitState.JointPos = mergeValues(out.InitState.JointPos, d.JointPos)
	out.InitState.JointVel = mergeValues(out.InitState.JointVel, d.JointVel)

	if len(d.Actuators) > 0 && out.Actuators == nil {
		out.Actuators = make(map[string]*Actuator, len(d.Actuators))
	}
	for name, act := range d.Actuators {
		out.Actuators[name] = act.Clone()
	}

	for _, j := range d.Joints {
		replaced := false
		for i := range out.Joints {
			if out.Joints[i].Name == j.Name {
				out.Joints[i] = j
				replaced = true
				break
			}
		}
		if !replaced {
			out.Joints = append(out.Joints, j)
		}
	}
	return out
}

func mergeValues(base, overlay JointValues) JointValues {
	if len(overlay) == 0 {
		return base
	}
	out := base.clone()
	if out == nil {
		out = make(JointValues, len(overlay))
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
