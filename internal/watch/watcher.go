package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/handiism/artwork-pages/internal/build"
	"github.com/handiism/artwork-pages/internal/config"
)

// RebuildFunc runs one build. Errors are reported and watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors an artworks directory and rebuilds the collection when
// its contents change.
//
// The artworks directory and every artwork folder are watched; folders
// created while watching are added. Changes are debounced so a batch of
// copied files triggers a single rebuild. Rebuilds run one at a time on the
// watching goroutine.
type Watcher struct {
	dir      string
	ignore   map[string]bool
	debounce time.Duration
	rebuild  RebuildFunc
	watcher  *fsnotify.Watcher

	onProgress func(build.ProgressEvent)
}

// NewWatcher creates a Watcher for the collection described by settings.
func NewWatcher(settings *config.Settings, rebuild RebuildFunc, onProgress func(build.ProgressEvent)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir, err := filepath.Abs(settings.ArtworksPath())
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve artworks path: %w", err)
	}

	ignore := map[string]bool{}
	for _, name := range []string{settings.ManifestFile, settings.LockFile} {
		if name != "" {
			ignore[filepath.Base(name)] = true
		}
	}

	return &Watcher{
		dir:        dir,
		ignore:     ignore,
		debounce:   time.Duration(settings.WatchDebounceMS) * time.Millisecond,
		rebuild:    rebuild,
		watcher:    fw,
		onProgress: onProgress,
	}, nil
}

// Run watches until ctx is cancelled. It returns an error only if the
// artworks directory cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch artworks directory %s: %w", w.dir, err)
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read artworks directory %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.addFolder(filepath.Join(w.dir, entry.Name()))
		}
	}

	w.progress(build.ProgressEvent{Message: fmt.Sprintf("Watching %s", w.dir), Level: build.LevelInfo})

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.progress(build.ProgressEvent{Message: fmt.Sprintf("Watcher error: %v", err), Level: build.LevelError})

		case <-fire:
			fire = nil
			w.progress(build.ProgressEvent{Message: "Change detected, rebuilding", Level: build.LevelInfo})
			if err := w.rebuild(ctx); err != nil {
				w.progress(build.ProgressEvent{Message: fmt.Sprintf("Rebuild failed: %v", err), Level: build.LevelError})
			}
		}
	}
}

// handle reacts to a single event and reports whether it should trigger a
// rebuild.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if w.Ignored(event.Name) {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.dir {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addFolder(event.Name)
		}
	}

	w.progress(build.ProgressEvent{Message: fmt.Sprintf("%s: %s", event.Op, event.Name), Level: build.LevelVerbose})
	return true
}

// Ignored reports whether a change to path is produced by the build itself.
//
// Generated pages, the manifest, the lock file and temporary files of atomic
// writes never trigger a rebuild.
func (w *Watcher) Ignored(path string) bool {
	name := filepath.Base(path)
	if w.ignore[name] {
		return true
	}
	if strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp") {
		return true
	}
	// Pages live one level below the artworks directory.
	if strings.EqualFold(filepath.Ext(name), ".html") && filepath.Dir(filepath.Dir(path)) == w.dir {
		return true
	}
	return false
}

func (w *Watcher) addFolder(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.progress(build.ProgressEvent{Message: fmt.Sprintf("Cannot watch %s: %v", path, err), Level: build.LevelWarning})
		return
	}
	w.progress(build.ProgressEvent{Message: fmt.Sprintf("Watching folder: %s", filepath.Base(path)), Level: build.LevelVerbose})
}

func (w *Watcher) progress(event build.ProgressEvent) {
	if w.onProgress != nil {
		w.onProgress(event)
	}
}
