package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/artwork-pages/internal/config"
)

func newTestWatcher(t *testing.T, rebuild RebuildFunc) (*Watcher, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "artworks", "1_First"), 0o755))

	s := config.DefaultSettings()
	s.Root = root
	s.WatchDebounceMS = 50

	if rebuild == nil {
		rebuild = func(context.Context) error { return nil }
	}
	w, err := NewWatcher(s, rebuild, nil)
	require.NoError(t, err)

	dir, err := filepath.Abs(filepath.Join(root, "artworks"))
	require.NoError(t, err)
	return w, dir
}

func TestIgnored(t *testing.T) {
	w, dir := newTestWatcher(t, nil)
	t.Cleanup(func() { w.watcher.Close() })

	tests := []struct {
		path    string
		ignored bool
	}{
		{filepath.Join(dir, "1_First", "First.html"), true},
		{filepath.Join(dir, "1_First", "Other.HTML"), true},
		{filepath.Join(dir, "1_First", ".First.html.123.tmp"), true},
		{filepath.Join(dir, "content.json"), true},
		{filepath.Join(dir, ".artworks.lock"), true},
		{filepath.Join(dir, "1_First", "1_a.jpg"), false},
		{filepath.Join(dir, "1_First", "description.txt"), false},
		{filepath.Join(dir, "1_First", "link_1_site.txt"), false},
		{filepath.Join(dir, "2_New"), false},
		{filepath.Join(dir, "index.html"), false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.ignored, w.Ignored(tt.path))
		})
	}
}

func TestRun_RebuildsOnChange(t *testing.T) {
	rebuilds := make(chan struct{}, 16)
	w, dir := newTestWatcher(t, func(context.Context) error {
		rebuilds <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_First", "1_a.jpg"), []byte("a"), 0o644))

	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after media file was added")
	}

	// A folder created while watching is watched too.
	newFolder := filepath.Join(dir, "2_Second")
	require.NoError(t, os.Mkdir(newFolder, 0o755))
	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after folder was created")
	}

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(newFolder, "description.txt"), []byte("hi"), 0o644))
	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change in new folder")
	}
}

func TestRun_IgnoresGeneratedPages(t *testing.T) {
	rebuilds := make(chan struct{}, 16)
	w, dir := newTestWatcher(t, func(context.Context) error {
		rebuilds <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_First", "First.html"), []byte("<html>"), 0o644))

	select {
	case <-rebuilds:
		t.Fatal("generated page triggered a rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	s := config.DefaultSettings()
	s.Root = t.TempDir()

	w, err := NewWatcher(s, func(context.Context) error { return nil }, nil)
	require.NoError(t, err)

	assert.Error(t, w.Run(context.Background()))
}
