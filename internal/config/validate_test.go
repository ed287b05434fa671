package config

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// validArticulation returns a small but complete record that passes Validate.
func validArticulation() *Articulation {
	return &Articulation{
		Name: "testbot",
		Spawn: UsdFile{
			USDPath:                "/assets/testbot.usd",
			ActivateContactSensors: true,
			RigidProps: RigidBodyProperties{
				MaxLinearVelocity:        1000,
				MaxAngularVelocity:       1000,
				MaxDepenetrationVelocity: 1,
			},
			ArticulationProps: ArticulationRootProperties{
				SolverPositionIterationCount: 4,
				SolverVelocityIterationCount: 1,
			},
		},
		InitState: InitialState{
			Pos:      Position{Z: 0.3},
			JointPos: JointValues{".*_joint": 0.1},
			JointVel: JointValues{".*": 0},
		},
		SoftJointPosLimitFactor: 0.9,
		Actuators: map[string]*Actuator{
			"legs": {
				Model:          DelayedPD,
				JointNamesExpr: []string{".*_joint"},
				EffortLimit:    10,
				VelocityLimit:  5,
				Stiffness:      20,
				Damping:        1,
				MaxDelay:       5,
			},
		},
		Joints: []Joint{
			{Name: "a_joint", Type: Revolute, HasLimits: true, Lower: -1, Upper: 1},
			{Name: "b_joint", Type: Continuous},
		},
	}
}

// fieldPaths extracts the Path of every *FieldError in err.
func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	var paths []string
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		require.True(t, errors.As(e, &fe), "expected *FieldError, got %T: %v", e, e)
		paths = append(paths, fe.Path)
	}
	return paths
}

func TestValidate_ValidRecord(t *testing.T) {
	t.Parallel()
	require.NoError(t, validArticulation().Validate("robots.testbot"))
}

func TestValidate_Violations(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(a *Articulation)
		wantPath string
	}{
		{
			name:     "missing name",
			mutate:   func(a *Articulation) { a.Name = "" },
			wantPath: "r.name",
		},
		{
			name:     "missing usd path",
			mutate:   func(a *Articulation) { a.Spawn.USDPath = "" },
			wantPath: "r.spawn.usd_path",
		},
		{
			name:     "soft limit factor zero",
			mutate:   func(a *Articulation) { a.SoftJointPosLimitFactor = 0 },
			wantPath: "r.soft_joint_pos_limit_factor",
		},
		{
			name:     "soft limit factor above one",
			mutate:   func(a *Articulation) { a.SoftJointPosLimitFactor = 1.01 },
			wantPath: "r.soft_joint_pos_limit_factor",
		},
		{
			name:     "negative effort limit",
			mutate:   func(a *Articulation) { a.Actuators["legs"].EffortLimit = -1 },
			wantPath: "r.actuators.legs.effort_limit",
		},
		{
			name:     "negative velocity limit",
			mutate:   func(a *Articulation) { a.Actuators["legs"].VelocityLimit = -0.5 },
			wantPath: "r.actuators.legs.velocity_limit",
		},
		{
			name:     "nan stiffness",
			mutate:   func(a *Articulation) { a.Actuators["legs"].Stiffness = math.NaN() },
			wantPath: "r.actuators.legs.stiffness",
		},
		{
			name:     "negative damping",
			mutate:   func(a *Articulation) { a.Actuators["legs"].Damping = -2 },
			wantPath: "r.actuators.legs.damping",
		},
		{
			name:     "min delay above max delay",
			mutate:   func(a *Articulation) { a.Actuators["legs"].MinDelay = 6 },
			wantPath: "r.actuators.legs.max_delay",
		},
		{
			name:     "negative min delay",
			mutate:   func(a *Articulation) { a.Actuators["legs"].MinDelay = -1 },
			wantPath: "r.actuators.legs.min_delay",
		},
		{
			name:     "no joint patterns",
			mutate:   func(a *Articulation) { a.Actuators["legs"].JointNamesExpr = nil },
			wantPath: "r.actuators.legs.joint_names_expr",
		},
		{
			name:     "unknown actuator model",
			mutate:   func(a *Articulation) { a.Actuators["legs"].Model = "hydraulic" },
			wantPath: "r.actuators.legs.model",
		},
		{
			name: "dc motor without saturation effort",
			mutate: func(a *Articulation) {
				a.Actuators["legs"].Model = DCMotor
			},
			wantPath: "r.actuators.legs.saturation_effort",
		},
		{
			name:     "no actuators",
			mutate:   func(a *Articulation) { a.Actuators = nil },
			wantPath: "r.actuators",
		},
		{
			name:     "zero solver position iterations",
			mutate:   func(a *Articulation) { a.Spawn.ArticulationProps.SolverPositionIterationCount = 0 },
			wantPath: "r.spawn.articulation_props.solver_position_iteration_count",
		},
		{
			name:     "infinite spawn position",
			mutate:   func(a *Articulation) { a.InitState.Pos.Z = math.Inf(1) },
			wantPath: "r.init_state.pos",
		},
		{
			name:     "inverted joint limits",
			mutate:   func(a *Articulation) { a.Joints[0].Lower = 2 },
			wantPath: "r.joints[0].limits",
		},
		{
			name:     "duplicate joint",
			mutate:   func(a *Articulation) { a.Joints[1].Name = "a_joint" },
			wantPath: "r.joints[1].name",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			a := validArticulation()
			tc.mutate(a)

			// --- Act ---
			err := a.Validate("r")

			// --- Assert ---
			require.Error(t, err)
			require.Contains(t, fieldPaths(t, err), tc.wantPath)
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	a := validArticulation()
	a.Spawn.USDPath = ""
	a.SoftJointPosLimitFactor = 2
	a.Actuators["legs"].Damping = -1

	err := a.Validate("")
	require.Len(t, multierr.Errors(err), 3)
	require.True(t, strings.Contains(err.Error(), "spawn.usd_path: is required"), err.Error())
}

func TestParseActuatorModel(t *testing.T) {
	t.Parallel()

	m, err := ParseActuatorModel("")
	require.NoError(t, err)
	require.Equal(t, DelayedPD, m)

	m, err = ParseActuatorModel("dc_motor")
	require.NoError(t, err)
	require.Equal(t, DCMotor, m)

	_, err = ParseActuatorModel("implicit")
	require.ErrorContains(t, err, `unknown actuator model "implicit"`)
}
