package config

import "fmt"

// JointType is the kind of a physical joint.
type JointType string

const (
	Revolute   JointType = "revolute"
	Continuous JointType = "continuous"
	Prismatic  JointType = "prismatic"
)

// ParseJointType converts a textual joint type into a JointType. The empty
// string selects Revolute.
func ParseJointType(s string) (JointType, error) {
	switch JointType(s) {
	case "", Revolute:
		return Revolute, nil
	case Continuous:
		return Continuous, nil
	case Prismatic:
		return Prismatic, nil
	default:
		return "", fmt.Errorf("unknown joint type %q", s)
	}
}

// Joint is one entry of a robot's joint manifest. Limits are only checked
// when HasLimits is set; an Effort or Velocity of zero means "not specified".
type Joint struct {
	Name      string    `json:"name"`
	Type      JointType `json:"type" jsonschema:"enum=revolute,enum=continuous,enum=prismatic"`
	HasLimits bool      `json:"has_limits"`
	Lower     float64   `json:"lower,omitempty"`
	Upper     float64   `json:"upper,omitempty"`
	Effort    float64   `json:"effort,omitempty"`
	Velocity  float64   `json:"velocity,omitempty"`
}

// SoftLimits returns the soft position range for the given limit factor: the
// hard range scaled by factor about its midpoint.
func (j Joint) SoftLimits(factor float64) (lower, upper float64) {
	mid := (j.Lower + j.Upper) / 2
	half := (j.Upper - j.Lower) * factor / 2
	return mid - half, mid + half
}
