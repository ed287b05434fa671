// Package schema holds the gohcl decoding structs for robot definition files.
// They mirror the file syntax one-to-one; translation into the config model
// happens in the hcl package.
package schema

// --- Top-level Structures ---

// RobotBlockType is the type name of the top-level block that defines a
// robot. Its single label is the robot name.
const RobotBlockType = "robot"

// Robot is the body of a `robot "<name>" {}` block. Pointer fields are nil
// when the attribute was not given, so an extending robot only overrides what
// it sets.
type Robot struct {
	Extends                 *string  `hcl:"extends,optional"`
	Description             *string  `hcl:"description,optional"`
	PrimPath                *string  `hcl:"prim_path,optional"`
	SoftJointPosLimitFactor *float64 `hcl:"soft_joint_pos_limit_factor,optional"`
	// URDF is a path, relative to the defining file, of a URDF document that
	// supplies the joint manifest.
	URDF *string `hcl:"urdf,optional"`

	Spawn     *Spawn      `hcl:"spawn,block"`
	InitState *InitState  `hcl:"init_state,block"`
	Actuators []*Actuator `hcl:"actuator,block"`
	Joints    []*Joint    `hcl:"joint,block"`
}

// --- Spawn ---

// Spawn is the `spawn` block. When present it replaces the inherited spawn
// descriptor as a whole.
type Spawn struct {
	USDPath                string             `hcl:"usd_path"`
	ActivateContactSensors bool               `hcl:"activate_contact_sensors,optional"`
	RigidProps             *RigidProps        `hcl:"rigid_props,block"`
	ArticulationProps      *ArticulationProps `hcl:"articulation_props,block"`
}

// RigidProps is the `rigid_props` block inside `spawn`.
type RigidProps struct {
	DisableGravity           bool    `hcl:"disable_gravity,optional"`
	RetainAccelerations      bool    `hcl:"retain_accelerations,optional"`
	LinearDamping            float64 `hcl:"linear_damping,optional"`
	AngularDamping           float64 `hcl:"angular_damping,optional"`
	MaxLinearVelocity        float64 `hcl:"max_linear_velocity,optional"`
	MaxAngularVelocity       float64 `hcl:"max_angular_velocity,optional"`
	MaxDepenetrationVelocity float64 `hcl:"max_depenetration_velocity,optional"`
}

// ArticulationProps is the `articulation_props` block inside `spawn`.
type ArticulationProps struct {
	EnabledSelfCollisions        bool `hcl:"enabled_self_collisions,optional"`
	SolverPositionIterationCount int  `hcl:"solver_position_iteration_count,optional"`
	SolverVelocityIterationCount int  `hcl:"solver_velocity_iteration_count,optional"`
}

// --- Initial State ---

// InitState is the `init_state` block. The value maps are keyed by joint-name
// patterns and merge into the inherited maps.
type InitState struct {
	Pos      []float64          `hcl:"pos,optional"`
	JointPos map[string]float64 `hcl:"joint_pos,optional"`
	JointVel map[string]float64 `hcl:"joint_vel,optional"`
}

// --- Actuators and Joints ---

// Actuator is an `actuator "<group>" {}` block. It replaces an inherited
// group of the same name.
type Actuator struct {
	Name             string   `hcl:"name,label"`
	Model            string   `hcl:"model,optional"`
	JointNamesExpr   []string `hcl:"joint_names_expr"`
	EffortLimit      float64  `hcl:"effort_limit"`
	VelocityLimit    float64  `hcl:"velocity_limit"`
	Stiffness        float64  `hcl:"stiffness"`
	Damping          float64  `hcl:"damping"`
	Friction         float64  `hcl:"friction,optional"`
	Armature         float64  `hcl:"armature,optional"`
	SaturationEffort float64  `hcl:"saturation_effort,optional"`
	MinDelay         int      `hcl:"min_delay,optional"`
	MaxDelay         int      `hcl:"max_delay,optional"`
}

// Joint is a `joint "<name>" {}` block of the joint manifest. Lower and Upper
// must be given together.
type Joint struct {
	Name     string   `hcl:"name,label"`
	Type     string   `hcl:"type,optional"`
	Lower    *float64 `hcl:"lower,optional"`
	Upper    *float64 `hcl:"upper,optional"`
	Effort   float64  `hcl:"effort,optional"`
	Velocity float64  `hcl:"velocity,optional"`
}
