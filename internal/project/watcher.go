package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPollInterval is used where no native file notification exists.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher calls OnChange for every .vdr file written or removed under its roots. Bursts
// of events for the same file are merged into one call after Debounce.
type Watcher struct {
	Debounce time.Duration
	Interval time.Duration
	// Poll forces polling even where inotify is available.
	Poll     bool
	OnChange func(path string)
	Logger   *log.Logger

	roots  []string
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher with no roots.
func NewWatcher(debounce time.Duration, onChange func(string), logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		Debounce: debounce,
		Interval: DefaultPollInterval,
		OnChange: onChange,
		Logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
}

// Add registers a directory to watch recursively.
func (w *Watcher) Add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	w.roots = append(w.roots, abs)
	return nil
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.roots) == 0 {
		return fmt.Errorf("nothing to watch")
	}
	defer w.stopTimers()
	if !w.Poll {
		err := w.notify(ctx)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		w.Logger.Warn("native file events unavailable, polling", "err", err)
	}
	return w.poll(ctx)
}

func (w *Watcher) poll(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	seen := w.snapshot()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := w.snapshot()
			for path, mod := range current {
				if old, ok := seen[path]; !ok || !old.Equal(mod) {
					w.trigger(path)
				}
			}
			for path := range seen {
				if _, ok := current[path]; !ok {
					w.trigger(path)
				}
			}
			seen = current
		}
	}
}

func (w *Watcher) snapshot() map[string]time.Time {
	files := make(map[string]time.Time)
	for _, root := range w.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !isSource(path) {
				return nil
			}
			if info, err := d.Info(); err == nil {
				files[path] = info.ModTime()
			}
			return nil
		})
	}
	return files
}

func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.Logger.Debug("changed", "path", path)
		if w.OnChange != nil {
			w.OnChange(path)
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

func isSource(path string) bool {
	return filepath.Ext(path) == SourceExt && !strings.HasPrefix(filepath.Base(path), ".")
}
