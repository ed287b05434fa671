package urdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/legcfg/internal/config"
)

const wheelLeg = `<?xml version="1.0"?>
<robot name="m20_leg">
  <link name="base"/>
  <link name="fl_hipx"/>
  <joint name="imu_joint" type="fixed">
    <parent link="base"/><child link="imu"/>
  </joint>
  <joint name="fl_hipx_joint" type="revolute">
    <parent link="base"/><child link="fl_hipx"/>
    <limit lower="-0.49" upper="0.49" effort="76.4" velocity="22.4"/>
  </joint>
  <joint name="fl_wheel_joint" type="continuous">
    <parent link="fl_knee"/><child link="fl_wheel"/>
    <limit effort="21.6" velocity="79.3"/>
  </joint>
  <joint name="arm_joint7" type="prismatic">
    <limit lower="0" upper="0.035" effort="10" velocity="1"/>
  </joint>
</robot>`

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Act ---
	m, err := Parse([]byte(wheelLeg))

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "m20_leg", m.Robot)

	want := []config.Joint{
		{Name: "fl_hipx_joint", Type: config.Revolute, HasLimits: true, Lower: -0.49, Upper: 0.49, Effort: 76.4, Velocity: 22.4},
		{Name: "fl_wheel_joint", Type: config.Continuous, Effort: 21.6, Velocity: 79.3},
		{Name: "arm_joint7", Type: config.Prismatic, HasLimits: true, Lower: 0, Upper: 0.035, Effort: 10, Velocity: 1},
	}
	if diff := cmp.Diff(want, m.Joints); diff != "" {
		t.Errorf("joints mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed", `<robot><joint`, "failed to parse URDF"},
		{"unknown type", `<robot><joint name="j" type="ball"/></robot>`, `joint "j": unsupported joint type "ball"`},
		{"missing limit", `<robot><joint name="j" type="revolute"/></robot>`, `joint "j": revolute joint requires a <limit> element`},
		{"unnamed", `<robot><joint type="revolute"/></robot>`, "joint without a name"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.doc))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "leg"+Extension)
	require.NoError(t, os.WriteFile(path, []byte(wheelLeg), 0o600))

	m, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, m.Joints, 3)

	_, err = ParseFile(filepath.Join(dir, "missing.urdf"))
	require.ErrorContains(t, err, "failed to read URDF file")
}
