package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/hcl"
)

func TestRelevant(t *testing.T) {
	t.Parallel()

	require.True(t, relevant(fsnotify.Event{Name: "robots/a.hcl", Op: fsnotify.Write}))
	require.True(t, relevant(fsnotify.Event{Name: "urdf/leg.urdf", Op: fsnotify.Create}))
	require.True(t, relevant(fsnotify.Event{Name: "a.hcl", Op: fsnotify.Remove}))
	require.False(t, relevant(fsnotify.Event{Name: "a.hcl", Op: fsnotify.Chmod}))
	require.False(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	robots := filepath.Join(dir, "robots.hcl")
	require.NoError(t, os.WriteFile(robots, []byte(`robot "a" { extends = "lite3" }`), 0o600))

	cfg, err := NewConfig(Config{AssetsDir: "/assets", ConfigPaths: []string{dir}, ReloadDelay: 10 * time.Millisecond})
	require.NoError(t, err)
	a := NewApp(io.Discard, io.Discard, cfg, hcl.NewLoader(cfg.AssetsDir))
	require.Equal(t, 4, a.Registry().Len())

	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), a.logger))
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// --- Act ---
	// The watcher may not be registered yet, so keep touching the file until
	// the reload shows up.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(robots, []byte(`robot "a" { extends = "lite3" }
robot "b" { extends = "m20" }`), 0o600)
		_, ok := a.Registry().Get("b")
		return ok
	}, 5*time.Second, 50*time.Millisecond)

	// --- Assert ---
	require.Equal(t, []string{"a", "b", "lite3", "m20", "m20_piper"}, a.Registry().Names())
}
