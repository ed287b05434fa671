package config

import (
	"sort"
)

// Articulation is the complete configuration of one simulated legged robot.
// Records are built once and treated as immutable; use Clone or WithPrimPath
// to derive a modified copy.
type Articulation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// PrimPath is the scene path the simulator spawns the robot under. It is
	// normally left empty here and filled in by the consuming scene.
	PrimPath string `json:"prim_path,omitempty"`

	Spawn     UsdFile      `json:"spawn"`
	InitState InitialState `json:"init_state"`

	// SoftJointPosLimitFactor is the fraction of each joint's hard range used
	// as its soft limit. Must lie in (0, 1].
	SoftJointPosLimitFactor float64 `json:"soft_joint_pos_limit_factor"`

	Actuators map[string]*Actuator `json:"actuators"`

	// Joints is the joint manifest of the referenced asset. It may be empty,
	// in which case coverage checks are skipped.
	Joints []Joint `json:"joints,omitempty"`
}

// UsdFile describes how the robot is spawned from an external USD asset.
type UsdFile struct {
	USDPath                string                     `json:"usd_path"`
	ActivateContactSensors bool                       `json:"activate_contact_sensors"`
	RigidProps             RigidBodyProperties        `json:"rigid_props"`
	ArticulationProps      ArticulationRootProperties `json:"articulation_props"`
}

// RigidBodyProperties are applied to every rigid link of the articulation.
type RigidBodyProperties struct {
	DisableGravity           bool    `json:"disable_gravity"`
	RetainAccelerations      bool    `json:"retain_accelerations"`
	LinearDamping            float64 `json:"linear_damping"`
	AngularDamping           float64 `json:"angular_damping"`
	MaxLinearVelocity        float64 `json:"max_linear_velocity"`
	MaxAngularVelocity       float64 `json:"max_angular_velocity"`
	MaxDepenetrationVelocity float64 `json:"max_depenetration_velocity"`
}

// ArticulationRootProperties configure the solver for the articulation root.
type ArticulationRootProperties struct {
	EnabledSelfCollisions        bool `json:"enabled_self_collisions"`
	SolverPositionIterationCount int  `json:"solver_position_iteration_count"`
	SolverVelocityIterationCount int  `json:"solver_velocity_iteration_count"`
}

// InitialState is the pose the robot is reset to.
type InitialState struct {
	Pos      Position    `json:"pos"`
	JointPos JointValues `json:"joint_pos"`
	JointVel JointValues `json:"joint_vel"`
}

// JointValues maps a joint-name regular expression to a scalar value. Each
// expression must match the whole joint name.
type JointValues map[string]float64

// Keys returns the patterns in sorted order.
func (v JointValues) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// clone returns a copy that never aliases v. A nil map stays nil.
func (v JointValues) clone() JointValues {
	if v == nil {
		return nil
	}
	out := make(JointValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// ActuatorNames returns the actuator group names in sorted order.
func (a *Articulation) ActuatorNames() []string {
	names := make([]string, 0, len(a.Actuators))
	for name := range a.Actuators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JointNames returns the manifest joint names in manifest order.
func (a *Articulation) JointNames() []string {
	names := make([]string, len(a.Joints))
	for i, j := range a.Joints {
		names[i] = j.Name
	}
	return names
}

// Joint looks up a manifest joint by exact name.
func (a *Articulation) Joint(name string) (Joint, bool) {
	for _, j := range a.Joints {
		if j.Name == name {
			return j, true
		}
	}
	return Joint{}, false
}

// Clone returns a deep copy of the articulation.
func (a *Articulation) Clone() *Articulation {
	if a == nil {
		return nil
	}
	out := *a
	out.InitState.JointPos = a.InitState.JointPos.clone()
	out.InitState.JointVel = a.InitState.JointVel.clone()
	if a.Actuators != nil {
		out.Actuators = make(map[string]*Actuator, len(a.Actuators))
		for name, act := range a.Actuators {
			out.Actuators[name] = act.Clone()
		}
	}
	if a.Joints != nil {
		out.Joints = append([]Joint(nil), a.Joints...)
	}
	return &out
}

// WithPrimPath returns a copy of the articulation spawned under primPath.
func (a *Articulation) WithPrimPath(primPath string) *Articulation {
	out := a.Clone()
	out.PrimPath = primPath
	return out
}
