package integrity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/integrity"
	"github.com/vk/legcfg/modules/lite3"
	"github.com/vk/legcfg/modules/m20"
	"github.com/vk/legcfg/modules/m20_piper"
)

func errorStrings(r *integrity.Report) string {
	var parts []string
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

func TestCheck_BuiltinRobots(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*config.Articulation{
		lite3.Config("/data"),
		m20.Config("/data"),
		m20_piper.Config("/data"),
	} {
		report := integrity.Check(cfg)
		require.True(t, report.OK(), "%s: %s", cfg.Name, errorStrings(report))
		require.Equal(t, cfg.Name, report.Robot)
	}
}

func TestCheck_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(cfg *config.Articulation)
		wantErr string
	}{
		{
			name: "joint without actuator group",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Hip"].JointNamesExpr = []string{".*_HipX_joint"}
			},
			wantErr: "joints not driven by any actuator group",
		},
		{
			name: "joint driven twice",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Knee"].JointNamesExpr = []string{".*_Knee_joint", "FL_HipX_joint"}
			},
			wantErr: `joint "FL_HipX_joint" is driven by groups ["Hip", "Knee"]`,
		},
		{
			name: "actuator pattern matching nothing",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Knee"].JointNamesExpr = append(cfg.Actuators["Knee"].JointNamesExpr, ".*_Ankle_joint")
			},
			wantErr: `actuators.Knee: joint patterns match no joint: [".*_Ankle_joint"]`,
		},
		{
			name: "init state pattern matching nothing",
			mutate: func(cfg *config.Articulation) {
				cfg.InitState.JointPos["arm_joint1"] = 0
			},
			wantErr: `init_state.joint_pos: cannot resolve joint values: pattern "arm_joint1" matches no joint`,
		},
		{
			name: "initial value on undriven joint",
			mutate: func(cfg *config.Articulation) {
				cfg.Joints = append(cfg.Joints, config.Joint{Name: "tail_joint", Type: config.Revolute})
			},
			wantErr: `init_state.joint_vel: joint "tail_joint" has an initial value but no actuator group drives it`,
		},
		{
			name: "initial position beyond hard limit",
			mutate: func(cfg *config.Articulation) {
				cfg.Joints[2] = config.Joint{Name: "FL_Knee_joint", Type: config.Revolute, HasLimits: true, Lower: -1, Upper: 1}
			},
			wantErr: `joint "FL_Knee_joint" initial position 1.6 is outside its limits [-1, 1]`,
		},
		{
			name: "invalid actuator pattern",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Hip"].JointNamesExpr = []string{".*_Hip[X,Y_joint"}
			},
			wantErr: `actuators.Hip: invalid joint pattern`,
		},
		{
			name: "invalid actuator pattern with unbalanced parentheses",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Knee"].JointNamesExpr = []string{".*_Knee_joint)|(.*"}
			},
			wantErr: `actuators.Knee: invalid joint pattern ".*_Knee_joint)|(.*"`,
		},
		{
			name: "constant out of range",
			mutate: func(cfg *config.Articulation) {
				cfg.Actuators["Hip"].MinDelay = 7
			},
			wantErr: "actuators.Hip.max_delay: must be >= min_delay (7), got 5",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			cfg := lite3.Config("/data")
			tc.mutate(cfg)

			// --- Act ---
			report := integrity.Check(cfg)

			// --- Assert ---
			require.False(t, report.OK())
			require.Error(t, report.Err())
			require.Contains(t, errorStrings(report), tc.wantErr)
		})
	}
}

func TestCheck_PartitionErrorIsDetectable(t *testing.T) {
	t.Parallel()

	cfg := m20.Config("")
	delete(cfg.Actuators, "wheel")
	delete(cfg.InitState.JointPos, ".*wheel_joint")

	report := integrity.Check(cfg)
	require.True(t, integrity.IsPartitionError(report.Err()))
}

func TestCheck_LimitWarnings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := lite3.Config("/data")
	cfg.Joints[0] = config.Joint{Name: "FL_HipX_joint", Type: config.Revolute, HasLimits: true, Lower: -0.5, Upper: 0.5, Effort: 20, Velocity: 30}

	// --- Act ---
	report := integrity.Check(cfg)

	// --- Assert ---
	require.True(t, report.OK(), errorStrings(report))
	require.Equal(t, []string{
		`actuator group "Hip" effort limit 24 exceeds joint "FL_HipX_joint" limit 20`,
	}, report.Warnings)
}

func TestCheck_WithoutManifest(t *testing.T) {
	t.Parallel()

	cfg := lite3.Config("/data")
	cfg.Joints = nil
	cfg.InitState.JointPos["anything"] = 1

	report := integrity.Check(cfg)
	require.True(t, report.OK(), "coverage checks need a manifest: %s", errorStrings(report))
}
