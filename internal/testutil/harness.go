package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/vk/legcfg/internal/app"
	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/hcl"
)

// TestAssetsDir is the asset root used by the harness unless a test sets its
// own.
const TestAssetsDir = "/assets"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewContext returns a context carrying a debug-level text logger that
// writes to the returned buffer.
func NewContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("LEGCFG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), logs
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Stdout    string
	LogOutput string
	Err       error
	App       *app.App
	// Root is the temporary directory the test files were written to.
	Root string
}

// RunApp writes files into a temporary directory, builds an App reading
// them, and runs it once. Unless the test configures its own, the config
// paths default to that directory and the asset root to TestAssetsDir.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	root := WriteFiles(t, files)
	if len(files) > 0 && len(cfg.ConfigPaths) == 0 {
		cfg.ConfigPaths = []string{root}
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = TestAssetsDir
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	result := &HarnessResult{Root: root}
	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	var stdout bytes.Buffer
	logBuffer := &SafeBuffer{}

	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		result.App = app.NewApp(&stdout, logBuffer, appConfig, hcl.NewLoader(appConfig.AssetsDir))
	}()

	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.Err = result.App.Run(context.Background())
	}

	if os.Getenv("LEGCFG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Stdout = stdout.String()
	result.LogOutput = logBuffer.String()
	return result
}
