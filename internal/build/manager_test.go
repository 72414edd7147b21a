package build

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/artwork-pages/internal/config"
	"github.com/handiism/artwork-pages/internal/manifest"
	"github.com/handiism/artwork-pages/internal/model"
)

// writeTree creates files below root. Keys are slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newSettings(root string) *config.Settings {
	s := config.DefaultSettings()
	s.Root = root
	return s
}

// recorder collects progress events; the scanner may report concurrently.
type recorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *recorder) record(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) byLevel(level ProgressLevel) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func scenarioTree() map[string]string {
	return map[string]string{
		"artworks/2_Untitled/1_a.jpg":         "jpg",
		"artworks/2_Untitled/2_b.mp4":         "mp4",
		"artworks/2_Untitled/thumbnail.png":   "png",
		"artworks/2_Untitled/description.txt": "Hi",
		"artworks/2_Untitled/link_1_site.txt": "https://example.com",
		"artworks/1_Plain/1_x.png":            "png",
	}
}

func TestBuild_Scenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())

	rec := &recorder{}
	m := NewManager(newSettings(root), rec.record)

	result, err := m.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Artworks, 2)
	assert.Equal(t, "1_Plain", result.Artworks[0].Folder)
	assert.Equal(t, "2_Untitled", result.Artworks[1].Folder)
	assert.Len(t, result.Pages, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, filepath.Join(root, "content.json"), result.ManifestPath)

	page, err := os.ReadFile(filepath.Join(root, "artworks", "2_Untitled", "Untitled.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `type="video/mp4"`)
	assert.Contains(t, string(page), `src="./1_a.jpg"`)

	got, err := manifest.Read(filepath.Join(root, "content.json"))
	require.NoError(t, err)
	assert.Equal(t, result.Artworks, got)
	assert.Equal(t, &model.Artwork{
		Title:     "Untitled",
		Folder:    "2_Untitled",
		Thumbnail: "thumbnail.png",
		Media:     []string{"1_a.jpg", "2_b.mp4"},
		Text:      "Hi",
		Links:     []model.Link{{Title: "site", URL: "https://example.com"}},
	}, got[1])

	scanned, written, total := m.GetProgress()
	assert.Equal(t, int32(2), scanned)
	assert.Equal(t, int32(2), written)
	assert.Equal(t, int32(2), total)
	assert.Equal(t, []string{"Plain (1 media, 0 links)", "Untitled (2 media, 1 links)"}, m.GetArtworkNames())
	assert.NotEmpty(t, rec.byLevel(LevelSuccess))
}

func TestBuild_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())

	_, err := NewManager(newSettings(root), nil).Build(context.Background())
	require.NoError(t, err)

	pagePath := filepath.Join(root, "artworks", "2_Untitled", "Untitled.html")
	firstPage, err := os.ReadFile(pagePath)
	require.NoError(t, err)
	firstManifest, err := os.ReadFile(filepath.Join(root, "content.json"))
	require.NoError(t, err)

	// The page written by the first run sits in the folder during the second.
	_, err = NewManager(newSettings(root), nil).Build(context.Background())
	require.NoError(t, err)

	secondPage, err := os.ReadFile(pagePath)
	require.NoError(t, err)
	secondManifest, err := os.ReadFile(filepath.Join(root, "content.json"))
	require.NoError(t, err)

	assert.Equal(t, firstPage, secondPage)
	assert.Equal(t, firstManifest, secondManifest)
}

func TestBuild_DuplicateTitles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"artworks/1_Show/1_a.jpg": "a",
		"artworks/3_Show/1_b.jpg": "b",
	})

	rec := &recorder{}
	_, err := NewManager(newSettings(root), rec.record).Build(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "artworks", "1_Show", "Show.html"))
	assert.FileExists(t, filepath.Join(root, "artworks", "3_Show", "Show.html"))

	warnings := rec.byLevel(LevelWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "1_Show")
	assert.Contains(t, warnings[0], "3_Show")
}

func TestBuild_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())

	s := newSettings(root)
	s.DryRun = true

	result, err := NewManager(s, nil).Build(context.Background())
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Len(t, result.Pages, 2)
	assert.Empty(t, result.ManifestPath)
	assert.NoFileExists(t, filepath.Join(root, "content.json"))
	assert.NoFileExists(t, filepath.Join(root, ".artworks.lock"))
	assert.NoFileExists(t, filepath.Join(root, "artworks", "2_Untitled", "Untitled.html"))
}

func TestBuild_SkipExisting(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())
	writeTree(t, root, map[string]string{
		"artworks/2_Untitled/Untitled.html": "hand edited",
	})

	s := newSettings(root)
	s.HTMLPolicy = config.PolicySkip

	result, err := NewManager(s, nil).Build(context.Background())
	require.NoError(t, err)

	existing := filepath.Join(root, "artworks", "2_Untitled", "Untitled.html")
	assert.Equal(t, []string{existing}, result.Skipped)
	assert.Equal(t, []string{filepath.Join(root, "artworks", "1_Plain", "Plain.html")}, result.Pages)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "hand edited", string(data))
	assert.FileExists(t, filepath.Join(root, "content.json"))
}

func TestBuild_OverwriteExisting(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())
	writeTree(t, root, map[string]string{
		"artworks/2_Untitled/Untitled.html": "stale",
	})

	_, err := NewManager(newSettings(root), nil).Build(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "artworks", "2_Untitled", "Untitled.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Untitled</h1>")
}

func TestBuild_Locked(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())

	held := flock.New(filepath.Join(root, ".artworks.lock"))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	_, err = NewManager(newSettings(root), nil).Build(context.Background())
	require.ErrorIs(t, err, ErrLocked)
	assert.NoFileExists(t, filepath.Join(root, "content.json"))
}

func TestBuild_MissingArtworksDir(t *testing.T) {
	root := t.TempDir()

	_, err := NewManager(newSettings(root), nil).Build(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "content.json"))
}

func TestBuild_EmptyCollection(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "artworks"), 0o755))

	result, err := NewManager(newSettings(root), nil).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Artworks)

	data, err := os.ReadFile(filepath.Join(root, "content.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestBuild_ScanErrorWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"artworks/1_Good/1_a.jpg":        "a",
		"artworks/2_Bad/description.txt": "\xff\xfe broken",
		"artworks/2_Bad/1_b.jpg":         "b",
	})

	_, err := NewManager(newSettings(root), nil).Build(context.Background())
	require.Error(t, err)

	assert.NoFileExists(t, filepath.Join(root, "artworks", "1_Good", "Good.html"))
	assert.NoFileExists(t, filepath.Join(root, "content.json"))
}

func TestBuild_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, scenarioTree())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManager(newSettings(root), nil).Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(root, "content.json"))
}
