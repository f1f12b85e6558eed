package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sambeau/brine/pkg/brine/brine"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Re-check files whenever they change",
		Long: `Watch checks the given files, or the watched-extension files under the given
directories (default "."), and checks them again each time they are saved.
It runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			w, err := a.newWatcher(debounce)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, path := range args {
				if err := w.Add(path); err != nil {
					return err
				}
			}
			for _, path := range w.initial() {
				w.check(path)
			}
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "wait this long after a change before re-checking (default from config)")
	return cmd
}

// watcher re-checks files as they change. Each change (re)starts a timer
// for its path; when the timer fires the path is handed back to the event
// loop, so checks and their output never run concurrently.
type watcher struct {
	app      *app
	log      brine.Logger
	fs       *fsnotify.Watcher
	debounce time.Duration

	files map[string]bool // explicitly named files
	dirs  []string        // explicitly named directories

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
	done   chan struct{}
}

func (a *app) newWatcher(debounce time.Duration) (*watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{
		app:      a,
		log:      brine.PrefixLogger(a.logger, "[watch]"),
		fs:       fsWatcher,
		debounce: debounce,
		files:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		ready:    make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// Add watches a file, or a directory and its subdirectories
func (w *watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	path = filepath.Clean(path)

	if !info.IsDir() {
		w.files[path] = true
		if err := w.fs.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.log.LogLine("watching file:", path)
		return nil
	}

	w.dirs = append(w.dirs, path)
	if err := w.watchDirRecursive(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	w.log.LogLine("watching dir:", path)
	return nil
}

// watchDirRecursive adds a directory and its subdirectories to the watch list
func (w *watcher) watchDirRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// outside reports whether a path relative to a watched directory leaves it
func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// wanted reports whether a change to path should trigger a check
func (w *watcher) wanted(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.app.cfg.WatchesFile(path) {
		return false
	}
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, path)
		if err == nil && !outside(rel) {
			return true
		}
	}
	return false
}

// initial lists the files to check before waiting for changes
func (w *watcher) initial() []string {
	seen := make(map[string]bool)
	for path := range w.files {
		seen[path] = true
	}
	for _, dir := range w.dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if w.app.cfg.WatchesFile(path) {
				seen[path] = true
			}
			return nil
		})
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Run processes file system events until ctx is done
func (w *watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case path := <-w.ready:
			w.check(path)

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.app.stderr, "watcher error: %v\n", err)
		}
	}
}

func (w *watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) && isDir(path) && len(w.dirs) > 0 {
		if err := w.watchDirRecursive(path); err != nil {
			fmt.Fprintf(w.app.stderr, "watcher error: %v\n", err)
		}
		return
	}
	if !w.wanted(path) {
		return
	}
	w.log.LogLine("changed:", path)
	w.schedule(path)
}

// schedule queues a check of path once it has been quiet for the debounce
// interval. Further changes in the meantime restart the wait.
func (w *watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
	w.timers[path] = t
}

// check parses path and reports the outcome
func (w *watcher) check(path string) {
	u, err := w.app.parse(path)
	if err != nil {
		fmt.Fprintf(w.app.stderr, "%v\n", err)
		return
	}
	if err := w.app.report(u); err != nil {
		return
	}
	fmt.Fprintf(w.app.stdout, "%s: ok\n", path)
}

// Close stops the watcher and any pending timers
func (w *watcher) Close() error {
	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	close(w.done)
	return w.fs.Close()
}
