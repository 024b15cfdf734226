// Package watch rebuilds the documentation when source files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches Root recursively and calls Rebuild once changes settle.
// Directories in Ignore, typically the generated gallery and the build
// output, never trigger a rebuild; otherwise every build would trigger the
// next one.
type Watcher struct {
	Root     string
	Ignore   []string
	Debounce time.Duration
	Rebuild  func(ctx context.Context) error
	Logger   *slog.Logger
}

// Run blocks until ctx is done. Rebuild errors are logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context) error {
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return fmt.Errorf("resolve watch root: %w", err)
	}
	ignore := make([]string, 0, len(w.Ignore))
	for _, dir := range w.Ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve ignored dir: %w", err)
		}
		ignore = append(ignore, abs)
	}
	w.Ignore = ignore

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()
	if err := w.addRecursive(fw, root); err != nil {
		return err
	}

	d := newDebouncer(w.debounce())
	defer d.stop()
	w.logger().Info("Watching for changes", logfields.Path(root))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.addRecursive(fw, ev.Name)
				}
			}
			w.logger().Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			d.trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("Watcher error", logfields.Error(err))
		case <-d.C:
			w.logger().Info("Change detected; rebuilding")
			if err := w.Rebuild(ctx); err != nil {
				w.logger().Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.ignored(p) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.logger().Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// ignored reports whether a change at p must not trigger a rebuild.
func (w *Watcher) ignored(p string) bool {
	for _, dir := range w.Ignore {
		if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
			return true
		}
	}
	return ignoredName(filepath.Base(p))
}

// ignoredName matches hidden files and editor temporaries.
func ignoredName(base string) bool {
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce <= 0 {
		return DefaultDebounce
	}
	return w.Debounce
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

// debouncer delivers on C once trigger has not been called for delay.
// Triggers while a delivery is pending coalesce.
type debouncer struct {
	C     chan struct{}
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{C: make(chan struct{}, 1), delay: delay}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.C <- struct{}{}:
		default:
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
