// Package lite3 provides the DeepRobotics Lite3 quadruped: four legs with
// HipX, HipY and Knee joints, driven by two delayed-PD actuator groups.
package lite3

import (
	"path/filepath"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/registry"
)

// Name is the catalog name of the robot.
const Name = "lite3"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds the Lite3 record to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Config(r.AssetsDir()))
}

// Config builds the Lite3 articulation with its USD asset under assetsDir.
func Config(assetsDir string) *config.Articulation {
	return &config.Articulation{
		Name:        Name,
		Description: "DeepRobotics Lite3 quadruped",
		Spawn: config.UsdFile{
			USDPath:                filepath.Join(assetsDir, "Lite3", "Lite3_usd", "Lite3.usd"),
			ActivateContactSensors: true,
			RigidProps: config.RigidBodyProperties{
				DisableGravity:           false,
				RetainAccelerations:      false,
				LinearDamping:            0.0,
				AngularDamping:           0.0,
				MaxLinearVelocity:        1000.0,
				MaxAngularVelocity:       1000.0,
				MaxDepenetrationVelocity: 1.0,
			},
			ArticulationProps: config.ArticulationRootProperties{
				EnabledSelfCollisions:        false,
				SolverPositionIterationCount: 4,
				SolverVelocityIterationCount: 1,
			},
		},
		InitState: config.InitialState{
			Pos: config.Position{X: 0.0, Y: 0.0, Z: 0.35},
			JointPos: config.JointValues{
				".*HipX_joint": 0.0,
				".*HipY_joint": -0.8,
				".*Knee_joint": 1.6,
			},
			JointVel: config.JointValues{".*": 0.0},
		},
		SoftJointPosLimitFactor: 0.99,
		Actuators: map[string]*config.Actuator{
			"Hip": {
				Model:          config.DelayedPD,
				JointNamesExpr: []string{".*_Hip[X,Y]_joint"},
				EffortLimit:    24.0,
				VelocityLimit:  26.2,
				Stiffness:      30.0,
				Damping:        1.0,
				Friction:       0.0,
				Armature:       0.0,
				MinDelay:       0,
				MaxDelay:       5,
			},
			"Knee": {
				Model:          config.DelayedPD,
				JointNamesExpr: []string{".*_Knee_joint"},
				EffortLimit:    36.0,
				VelocityLimit:  17.3,
				Stiffness:      30.0,
				Damping:        1.0,
				Friction:       0.0,
				Armature:       0.0,
				MinDelay:       0,
				MaxDelay:       5,
			},
		},
		Joints: Joints(),
	}
}

// Joints returns the Lite3 joint manifest. Position limits live in the USD
// asset and are not duplicated here.
func Joints() []config.Joint {
	var joints []config.Joint
	for _, leg := range []string{"FL", "FR", "HL", "HR"} {
		for _, j := range []string{"HipX", "HipY", "Knee"} {
			joints = append(joints, config.Joint{Name: leg + "_" + j + "_joint", Type: config.Revolute})
		}
	}
	return joints
}
