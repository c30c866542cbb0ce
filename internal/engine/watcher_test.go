package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Watch:
// - The initial check fires before any file event
// - A write to a watched .py file triggers a re-check after the
//   debounce window
// - Cancellation unblocks Watch with the context error
// - Watching a missing root is an error

func TestWatch_InitialRunAndRecheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(file, []byte("\"\"\"Fine.\"\"\"\n"), 0o644))

	e := newEngine(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- e.Watch(ctx, []string{dir}, func() {
			runs.Add(1)
		})
	}()

	// The initial run fires before any event arrives.
	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(file, []byte("\"\"\"Changed.\"\"\"\n"), 0o644))

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch_MissingRoot(t *testing.T) {
	t.Parallel()

	e := newEngine(t, testConfig())
	err := e.Watch(context.Background(), []string{filepath.Join(os.TempDir(), "doclint-no-such-root")}, func() {})
	require.Error(t, err)
}
