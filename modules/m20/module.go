// Package m20 provides the DeepRobotics M20 wheel-legged quadruped. Each leg
// has hipx, hipy and knee joints plus a continuously rotating wheel; the leg
// joints share one stiff actuator group and the wheels get a separate
// velocity-driven group with zero stiffness.
package m20

import (
	"path/filepath"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/registry"
)

// Name is the catalog name of the robot.
const Name = "m20"

// Legs lists the M20 leg prefixes: front/hind, left/right.
var Legs = []string{"fl", "fr", "hl", "hr"}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds the M20 record to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Config(r.AssetsDir()))
}

// Config builds the M20 articulation with its USD asset under assetsDir.
func Config(assetsDir string) *config.Articulation {
	return &config.Articulation{
		Name:        Name,
		Description: "DeepRobotics M20 wheel-legged quadruped",
		Spawn: config.UsdFile{
			USDPath:                filepath.Join(assetsDir, "M20", "M20_usd", "M20.usd"),
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
			Pos: config.Position{X: 0.0, Y: 0.0, Z: 0.52},
			JointPos: config.JointValues{
				".*hipx_joint":      0.0,
				"f[l,r]_hipy_joint": -0.6,
				"h[l,r]_hipy_joint": 0.6,
				"f[l,r]_knee_joint": 1.0,
				"h[l,r]_knee_joint": -1.0,
				".*wheel_joint":     0.0,
			},
			JointVel: config.JointValues{".*": 0.0},
		},
		SoftJointPosLimitFactor: 0.9,
		Actuators: map[string]*config.Actuator{
			"joint": {
				Model:          config.DelayedPD,
				JointNamesExpr: []string{".*hipx_joint", ".*hipy_joint", ".*knee_joint"},
				EffortLimit:    76.4,
				VelocityLimit:  22.4,
				Stiffness:      80.0,
				Damping:        2.0,
				Friction:       0.0,
				Armature:       0.0,
				MinDelay:       0,
				MaxDelay:       5,
			},
			"wheel": {
				Model:          config.DelayedPD,
				JointNamesExpr: []string{".*_wheel_joint"},
				EffortLimit:    21.6,
				VelocityLimit:  79.3,
				Stiffness:      0.0,
				Damping:        0.6,
				Friction:       0.0,
				Armature:       0.00243216,
				MinDelay:       0,
				MaxDelay:       5,
			},
		},
		Joints: Joints(),
	}
}

// Joints returns the M20 joint manifest: three revolute joints and one
// continuous wheel joint per leg.
func Joints() []config.Joint {
	var joints []config.Joint
	for _, leg := range Legs {
		joints = append(joints,
			config.Joint{Name: leg + "_hipx_joint", Type: config.Revolute},
			config.Joint{Name: leg + "_hipy_joint", Type: config.Revolute},
			config.Joint{Name: leg + "_knee_joint", Type: config.Revolute},
			config.Joint{Name: leg + "_wheel_joint", Type: config.Continuous},
		)
	}
	return joints
}
