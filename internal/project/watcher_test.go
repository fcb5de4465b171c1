package project

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changes struct {
	mu      sync.Mutex
	paths   []string
	removed []string
}

func (c *changes) add(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, p)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		c.removed = append(c.removed, p)
	}
}

func (c *changes) wasRemoved(p string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, x := range c.removed {
		if x == p {
			return true
		}
	}
	return false
}

func (c *changes) has(p string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, x := range c.paths {
		if x == p {
			return true
		}
	}
	return false
}

func TestWatcherDetectsWritesAndRemovals(t *testing.T) {
	for _, poll := range []bool{true, false} {
		name := "native"
		if poll {
			name = "poll"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "main.vdr")
			require.NoError(t, os.WriteFile(path, []byte("imprimir 1\n"), 0o644))

			got := &changes{}
			w := NewWatcher(10*time.Millisecond, got.add, log.New(io.Discard))
			w.Poll = poll
			w.Interval = 20 * time.Millisecond
			require.NoError(t, w.Add(dir))

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			var n int64
			assert.Eventually(t, func() bool {
				i := atomic.AddInt64(&n, 1)
				_ = os.WriteFile(path, []byte("imprimir 2\n"), 0o644)
				_ = os.Chtimes(path, time.Now(), time.Now().Add(time.Duration(i)*time.Second))
				return got.has(path)
			}, 5*time.Second, 50*time.Millisecond)

			time.Sleep(100 * time.Millisecond)
			require.NoError(t, os.Remove(path))
			assert.Eventually(t, func() bool { return got.wasRemoved(path) }, 5*time.Second, 20*time.Millisecond)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("watcher did not stop")
			}
		})
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(0, nil, log.New(io.Discard))
	require.NoError(t, w.Add(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.vdr"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "c.vdr"), nil, 0o644))

	snap := w.snapshot()
	assert.Len(t, snap, 1)
	assert.Contains(t, snap, filepath.Join(dir, "a.vdr"))
}

func TestWatcherDebounce(t *testing.T) {
	var calls int64
	w := NewWatcher(50*time.Millisecond, func(string) { atomic.AddInt64(&calls, 1) }, log.New(io.Discard))
	for i := 0; i < 5; i++ {
		w.trigger("/tmp/x.vdr")
	}
	assert.Eventually(t, func() bool { return atomic.LoadInt64(&calls) == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestWatcherAddErrors(t *testing.T) {
	w := NewWatcher(0, nil, nil)
	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "falta")))

	f := filepath.Join(t.TempDir(), "x.vdr")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	assert.ErrorContains(t, w.Add(f), "not a directory")

	assert.ErrorContains(t, w.Run(context.Background()), "nothing to watch")
}
