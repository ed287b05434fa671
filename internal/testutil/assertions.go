package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertRobotLoaded checks that the app started and its catalog contains
// the named robot.
func AssertRobotLoaded(t *testing.T, result *HarnessResult, name string) {
	t.Helper()

	require.NotNil(t, result.App, "app did not start: %v", result.Err)
	_, ok := result.App.Registry().Get(name)
	require.True(t, ok, "robot %q not in catalog %v", name, result.App.Registry().Names())
}
