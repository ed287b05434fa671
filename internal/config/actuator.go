package config

import "fmt"

// ActuatorModel selects the simulator-side actuator dynamics for a group.
type ActuatorModel string

const (
	// DelayedPD is an explicit PD controller whose commands reach the joint
	// after a random delay of MinDelay..MaxDelay physics steps.
	DelayedPD ActuatorModel = "delayed_pd"
	// DCMotor is a PD controller whose output torque is clipped by a
	// torque-speed curve ending at SaturationEffort.
	DCMotor ActuatorModel = "dc_motor"
)

// ParseActuatorModel converts a textual model name into an ActuatorModel.
// The empty string selects DelayedPD.
func ParseActuatorModel(s string) (ActuatorModel, error) {
	switch ActuatorModel(s) {
	case "", DelayedPD:
		return DelayedPD, nil
	case DCMotor:
		return DCMotor, nil
	default:
		return "", fmt.Errorf("unknown actuator model %q: must be %q or %q", s, DelayedPD, DCMotor)
	}
}

// Actuator drives every joint matched by JointNamesExpr with the same gains
// and limits.
type Actuator struct {
	Model          ActuatorModel `json:"model" jsonschema:"enum=delayed_pd,enum=dc_motor"`
	JointNamesExpr []string      `json:"joint_names_expr"`

	EffortLimit   float64 `json:"effort_limit"`   // N·m (N for prismatic joints)
	VelocityLimit float64 `json:"velocity_limit"` // rad/s (m/s for prismatic joints)
	Stiffness     float64 `json:"stiffness"`
	Damping       float64 `json:"damping"`
	Friction      float64 `json:"friction"`
	Armature      float64 `json:"armature"`

	// SaturationEffort is only meaningful for DCMotor.
	SaturationEffort float64 `json:"saturation_effort,omitempty"`

	MinDelay int `json:"min_delay"` // physics steps
	MaxDelay int `json:"max_delay"` // physics steps
}

// Clone returns a deep copy of the actuator.
func (a *Actuator) Clone() *Actuator {
	if a == nil {
		return nil
	}
	out := *a
	out.JointNamesExpr = append([]string(nil), a.JointNamesExpr...)
	return &out
}
