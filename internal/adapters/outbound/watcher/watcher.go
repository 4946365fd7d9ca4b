// Package watcher re-triggers audits when manifest files change on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 300 * time.Millisecond

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

type Options struct {
	Extensions []string
	MaxDepth   int
	Debounce   time.Duration
}

// Watcher observes a directory tree and reports changed manifest files.
type Watcher struct {
	root   string
	opts   Options
	exts   []string
	logger *zap.Logger
}

func New(root string, opts Options, logger *zap.Logger) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = domain.DefaultExtensions
	}
	normalized := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		normalized = append(normalized, e)
	}
	return &Watcher{root: root, opts: opts, exts: normalized, logger: logging.OrNop(logger)}
}

// Run blocks until ctx is cancelled. After each burst of events settles,
// onChange is called once per changed file, in path order, on the
// calling goroutine. A MaxDepth below 1 leaves no directory to watch and
// is rejected, matching the crawler which yields nothing at that depth.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	if w.opts.MaxDepth < 1 {
		return fmt.Errorf("max depth %d leaves nothing to watch under %s", w.opts.MaxDepth, w.root)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}
	w.logger.Info("watching", zap.String("root", w.root), zap.Strings("extensions", w.exts))

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fw, ev.Name); err != nil {
						w.logger.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.matches(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					continue
				}
				onChange(p)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	for _, e := range w.exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// addRecursive watches dir and its subdirectories down to MaxDepth below root.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if w.depth(path) >= w.opts.MaxDepth {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func (w *Watcher) depth(path string) int {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}
