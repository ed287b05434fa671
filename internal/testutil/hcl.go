package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes each file under a new temporary directory and returns
// the directory. Names are slash-separated relative paths; parent
// directories are created as needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	WriteFilesAt(t, root, files)
	return root
}

// WriteFilesAt is like WriteFiles but writes under an existing directory,
// replacing files that are already there.
func WriteFilesAt(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
}

// Lite3Tall is a robot file extending the built-in Lite3 with a higher
// spawn pose and stiffer knees.
const Lite3Tall = `
robot "lite3_tall" {
  extends     = "lite3"
  description = "Lite3 spawned higher"

  init_state {
    pos = [0, 0, 0.42]
  }

  actuator "Knee" {
    joint_names_expr = [".*_Knee_joint"]
    effort_limit     = 36
    velocity_limit   = 17.3
    stiffness        = 45
    damping          = 1.5
    max_delay        = 5
  }
}
`
