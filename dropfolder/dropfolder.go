// Package dropfolder turns a directory into a drag-and-drop source: every
// file written into it is reported once it has stopped changing.
package dropfolder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// DefaultSettle is how long a file must stay unchanged before it is reported
const DefaultSettle = 250 * time.Millisecond

// Watcher reports files dropped into a directory
type Watcher struct {
	dir    string
	ignore []glob.Glob
	settle time.Duration
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for dir. Base names matching any of the ignore
// globs are never reported.
func New(dir string, ignorePatterns []string, logger zerolog.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("drop folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("drop folder: %s is not a directory", dir)
	}

	ignore := make([]glob.Glob, 0, len(ignorePatterns))
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		ignore = append(ignore, g)
	}

	return &Watcher{
		dir:     dir,
		ignore:  ignore,
		settle:  DefaultSettle,
		logger:  logger.With().Str("component", "dropfolder").Logger(),
		pending: make(map[string]*time.Timer),
	}, nil
}

// SetSettle changes the quiet period before a file is reported
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Ignored reports whether a file name is filtered out
func (w *Watcher) Ignored(name string) bool {
	base := filepath.Base(name)
	for _, g := range w.ignore {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Run watches until ctx is cancelled, calling onFile with the path of each
// settled file. onFile may be called from several goroutines.
func (w *Watcher) Run(ctx context.Context, onFile func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	defer w.stopPending()

	w.logger.Info().Str("dir", w.dir).Msg("Watching drop folder")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if w.Ignored(event.Name) {
				w.logger.Debug().Str("path", event.Name).Msg("Ignoring file")
				continue
			}
			w.schedule(event.Name, onFile)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) schedule(path string, onFile func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		onFile(path)
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
