// Package m20_piper provides the M20 wheel-legged quadruped carrying an
// AgileX Piper 6-DOF arm with a two-finger prismatic gripper.
//
// The record extends the M20 one: a different USD assembly, self collisions
// enabled because the arm can reach the body, and two more actuator groups
// for the arm and the gripper.
package m20_piper

import (
	"path/filepath"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/registry"
	"github.com/vk/legcfg/modules/m20"
)

// Name is the catalog name of the robot.
const Name = "m20_piper"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds the M20+Piper record to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Config(r.AssetsDir()))
}

// Config builds the M20+Piper articulation with its USD assembly under
// assetsDir.
func Config(assetsDir string) *config.Articulation {
	cfg := m20.Config(assetsDir)
	cfg.Name = Name
	cfg.Description = "DeepRobotics M20 with an AgileX Piper arm and gripper"
	cfg.Spawn.USDPath = filepath.Join(assetsDir, "M20", "M20_usd", "M20_assemble.usd")
	cfg.Spawn.ArticulationProps.EnabledSelfCollisions = true

	// arm_joint2 and arm_joint3 rest on a hard limit at 0; they are pending
	// recalibration to 0.1 and -0.1.
	for _, j := range ArmJoints() {
		cfg.InitState.JointPos[j.Name] = 0.0
	}

	cfg.Actuators["piper_arm"] = &config.Actuator{
		Model:          config.DelayedPD,
		JointNamesExpr: []string{"arm_joint[1-6]"},
		EffortLimit:    100.0,
		VelocityLimit:  3.0,
		Stiffness:      50.0,
		Damping:        17.0,
		Friction:       0.01,
		Armature:       0.01,
		MinDelay:       0,
		MaxDelay:       5,
	}
	cfg.Actuators["piper_gripper"] = &config.Actuator{
		Model:          config.DelayedPD,
		JointNamesExpr: []string{"arm_joint[7-8]"},
		EffortLimit:    100.0,
		VelocityLimit:  1.0,
		Stiffness:      20.0,
		Damping:        1.0,
		Friction:       0.0,
		Armature:       0.0,
		MinDelay:       0,
		MaxDelay:       5,
	}

	cfg.Joints = append(cfg.Joints, ArmJoints()...)
	return cfg
}

// ArmJoints returns the Piper manifest: six revolute arm joints followed by
// the two prismatic gripper fingers, with their hard position limits.
func ArmJoints() []config.Joint {
	return []config.Joint{
		{Name: "arm_joint1", Type: config.Revolute, HasLimits: true, Lower: -2.618, Upper: 2.618},
		{Name: "arm_joint2", Type: config.Revolute, HasLimits: true, Lower: 0, Upper: 3.14},
		{Name: "arm_joint3", Type: config.Revolute, HasLimits: true, Lower: -2.697, Upper: 0},
		{Name: "arm_joint4", Type: config.Revolute, HasLimits: true, Lower: -1.832, Upper: 1.832},
		{Name: "arm_joint5", Type: config.Revolute, HasLimits: true, Lower: -1.22, Upper: 1.22},
		{Name: "arm_joint6", Type: config.Revolute, HasLimits: true, Lower: -3.14, Upper: 3.14},
		{Name: "arm_joint7", Type: config.Prismatic, HasLimits: true, Lower: 0, Upper: 0.05},
		{Name: "arm_joint8", Type: config.Prismatic, HasLimits: true, Lower: -0.05, Upper: 0},
	}
}
