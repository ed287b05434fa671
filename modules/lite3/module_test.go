package lite3

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/integrity"
	"github.com/vk/legcfg/internal/jointmatch"
	"github.com/vk/legcfg/internal/registry"
)

func TestConfig_Values(t *testing.T) {
	t.Parallel()

	cfg := Config("/data")

	require.Equal(t, "/data/Lite3/Lite3_usd/Lite3.usd", cfg.Spawn.USDPath)
	require.True(t, cfg.Spawn.ActivateContactSensors)
	require.False(t, cfg.Spawn.RigidProps.DisableGravity)
	require.False(t, cfg.Spawn.ArticulationProps.EnabledSelfCollisions)
	require.Equal(t, 4, cfg.Spawn.ArticulationProps.SolverPositionIterationCount)
	require.Equal(t, 1, cfg.Spawn.ArticulationProps.SolverVelocityIterationCount)
	require.Equal(t, config.Position{Z: 0.35}, cfg.InitState.Pos)
	require.Equal(t, 0.99, cfg.SoftJointPosLimitFactor)
	require.Equal(t, []string{"Hip", "Knee"}, cfg.ActuatorNames())

	hip := cfg.Actuators["Hip"]
	require.Equal(t, config.DelayedPD, hip.Model)
	require.Equal(t, 24.0, hip.EffortLimit)
	require.Equal(t, 26.2, hip.VelocityLimit)

	knee := cfg.Actuators["Knee"]
	require.Equal(t, 36.0, knee.EffortLimit)
	require.Equal(t, 17.3, knee.VelocityLimit)
	require.Equal(t, 5, knee.MaxDelay)
}

func TestConfig_SymmetricStance(t *testing.T) {
	t.Parallel()

	cfg := Config("")
	pos, err := jointmatch.ResolveValues(cfg.InitState.JointPos, cfg.JointNames())
	require.NoError(t, err)
	require.Len(t, pos, 12)
	for _, leg := range []string{"FL", "FR", "HL", "HR"} {
		require.Equal(t, 0.0, pos[leg+"_HipX_joint"])
		require.Equal(t, -0.8, pos[leg+"_HipY_joint"])
		require.Equal(t, 1.6, pos[leg+"_Knee_joint"])
	}
}

func TestConfig_PassesIntegrityChecks(t *testing.T) {
	t.Parallel()

	report := integrity.Check(Config("/data"))
	require.NoError(t, report.Err())
	require.Empty(t, report.Warnings)
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	reg := registry.New("/data")
	(&Module{}).Register(reg)

	cfg, ok := reg.Get(Name)
	require.True(t, ok)
	require.Equal(t, "/data/Lite3/Lite3_usd/Lite3.usd", cfg.Spawn.USDPath)
}
