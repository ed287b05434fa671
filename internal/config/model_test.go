package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	orig := validArticulation()
	want := validArticulation()

	// --- Act ---
	cp := orig.Clone()
	cp.InitState.JointPos[".*_joint"] = 9
	cp.Actuators["legs"].JointNamesExpr[0] = "changed"
	cp.Actuators["extra"] = &Actuator{}
	cp.Joints[0].Upper = 42

	// --- Assert ---
	if diff := cmp.Diff(want, orig); diff != "" {
		t.Errorf("original mutated through clone (-want +got):\n%s", diff)
	}
}

func TestWithPrimPath(t *testing.T) {
	t.Parallel()

	orig := validArticulation()
	placed := orig.WithPrimPath("/World/envs/env_.*/Robot")

	require.Equal(t, "/World/envs/env_.*/Robot", placed.PrimPath)
	require.Empty(t, orig.PrimPath)
}

func TestSortedAccessors(t *testing.T) {
	t.Parallel()

	a := validArticulation()
	a.Actuators["arm"] = &Actuator{Model: DelayedPD, JointNamesExpr: []string{"x"}}

	require.Equal(t, []string{"arm", "legs"}, a.ActuatorNames())
	require.Equal(t, []string{"a_joint", "b_joint"}, a.JointNames())
	require.Equal(t, []string{"b", "c"}, JointValues{"c": 1, "b": 2}.Keys())
}

func TestSoftLimits(t *testing.T) {
	t.Parallel()

	lo, hi := Joint{Lower: 0, Upper: 3.14}.SoftLimits(0.9)
	require.InDelta(t, 0.157, lo, 1e-9)
	require.InDelta(t, 2.983, hi, 1e-9)
}

func TestApply_ExtendsBase(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := validArticulation()
	factor := 0.8
	def := &RobotDefinition{
		Name:                    "derived",
		SoftJointPosLimitFactor: &factor,
		Spawn:                   &UsdFile{USDPath: "/assets/derived.usd"},
		JointPos:                JointValues{"arm_joint1": 0.5},
		Actuators: map[string]*Actuator{
			"arm": {Model: DelayedPD, JointNamesExpr: []string{"arm_joint1"}},
		},
		Joints: []Joint{
			{Name: "b_joint", Type: Revolute},
			{Name: "arm_joint1", Type: Revolute},
		},
	}

	// --- Act ---
	got := def.Apply(base)

	// --- Assert ---
	require.Equal(t, "derived", got.Name)
	require.Equal(t, 0.8, got.SoftJointPosLimitFactor)
	require.Equal(t, "/assets/derived.usd", got.Spawn.USDPath)
	require.Equal(t, Position{Z: 0.3}, got.InitState.Pos, "pos is inherited")
	require.Equal(t, JointValues{".*_joint": 0.1, "arm_joint1": 0.5}, got.InitState.JointPos)
	require.Equal(t, []string{"arm", "legs"}, got.ActuatorNames())
	require.Equal(t, []string{"a_joint", "b_joint", "arm_joint1"}, got.JointNames())
	require.Equal(t, Revolute, got.Joints[1].Type, "b_joint is replaced in place")

	require.Equal(t, "testbot", base.Name, "base must not be modified")
	require.Len(t, base.Actuators, 1)
}

func TestApply_WithoutBase(t *testing.T) {
	t.Parallel()

	def := &RobotDefinition{Name: "solo", JointVel: JointValues{".*": 0}}
	got := def.Apply(nil)

	require.Equal(t, "solo", got.Name)
	require.Equal(t, JointValues{".*": 0}, got.InitState.JointVel)
	require.Nil(t, got.Actuators)
}
