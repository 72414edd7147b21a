package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"github.com/handiism/artwork-pages/internal/config"
	"github.com/handiism/artwork-pages/internal/fsutil"
	"github.com/handiism/artwork-pages/internal/manifest"
	"github.com/handiism/artwork-pages/internal/model"
	"github.com/handiism/artwork-pages/internal/render"
	"github.com/handiism/artwork-pages/internal/scanner"
)

// ErrLocked is returned when another build holds the collection lock.
var ErrLocked = errors.New("another build is running on this collection")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a build progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result summarises a finished build.
type Result struct {
	Artworks []*model.Artwork

	// Pages lists the page paths written (or, in a dry run, that would be
	// written).
	Pages []string

	// Skipped lists existing page paths left untouched by the skip policy.
	Skipped []string

	// ManifestPath is the manifest location, empty in a dry run.
	ManifestPath string

	DryRun bool
}

// Manager coordinates a build of a collection.
type Manager struct {
	settings *config.Settings
	scanner  *scanner.Scanner
	renderer *render.Renderer

	artworks     []*model.Artwork
	totalFolders int32
	scanned      int32
	written      int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new build Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		scanner:    scanner.NewDirScanner(settings.ArtworksPath(), settings.ToScanConfig()),
		renderer:   render.NewRenderer(settings.ToRenderConfig()),
		onProgress: onProgress,
	}
	m.scanner.OnFolder(func(folder string) {
		atomic.AddInt32(&m.scanned, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned: %s", folder), Level: LevelVerbose})
	})
	return m
}

// Build scans the collection, writes one page per artwork and writes the
// manifest.
//
// Nothing is written until every folder has been scanned and rendered, so a
// failing folder leaves the collection as it was. The manifest is written
// last; a page write failure means no manifest is written.
func (m *Manager) Build(ctx context.Context) (*Result, error) {
	if !m.settings.DryRun {
		unlock, err := m.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	folders, err := m.scanner.Folders()
	if err != nil {
		return nil, err
	}
	atomic.StoreInt32(&m.totalFolders, int32(len(folders)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d artwork folders in %s", len(folders), m.settings.ArtworksPath()), Level: LevelInfo})

	artworks, err := m.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	m.artworks = artworks

	pages := make([]string, len(artworks))
	for i, artwork := range artworks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := m.renderer.Render(artwork)
		if err != nil {
			return nil, err
		}
		pages[i] = doc
	}

	m.warnDuplicateTitles(artworks)

	result := &Result{
		Artworks: artworks,
		Pages:    []string{},
		Skipped:  []string{},
		DryRun:   m.settings.DryRun,
	}

	for i, artwork := range artworks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := m.pagePath(artwork)

		written, err := m.writePage(path, pages[i])
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", path, err), Level: LevelError})
			return nil, err
		}
		if written {
			result.Pages = append(result.Pages, path)
		} else {
			result.Skipped = append(result.Skipped, path)
		}
		atomic.AddInt32(&m.written, 1)
	}

	if m.settings.DryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Dry run: would write %s", m.settings.ManifestPath()), Level: LevelInfo})
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := manifest.Write(m.settings.ManifestPath(), artworks); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing manifest: %v", err), Level: LevelError})
		return nil, err
	}
	result.ManifestPath = m.settings.ManifestPath()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Built %d artworks (%d pages written, %d skipped)", len(artworks), len(result.Pages), len(result.Skipped)), Level: LevelSuccess})
	return result, nil
}

// GetProgress returns current build progress.
func (m *Manager) GetProgress() (scanned, written, total int32) {
	return atomic.LoadInt32(&m.scanned), atomic.LoadInt32(&m.written), atomic.LoadInt32(&m.totalFolders)
}

// GetArtworkNames returns "title (N media, M links)" for each scanned artwork.
func (m *Manager) GetArtworkNames() []string {
	names := make([]string, len(m.artworks))
	for i, artwork := range m.artworks {
		names[i] = fmt.Sprintf("%s (%d media, %d links)", artwork.Title, len(artwork.Media), len(artwork.Links))
	}
	return names
}

func (m *Manager) pagePath(artwork *model.Artwork) string {
	return filepath.Join(m.settings.ArtworksPath(), artwork.Folder, artwork.HTMLFileName())
}

// writePage writes a page according to the HTML policy. It reports whether
// the page was (or in a dry run, would be) written.
func (m *Manager) writePage(path, doc string) (bool, error) {
	if m.settings.SkipExisting() {
		exists, err := fsutil.Exists(path)
		if err != nil {
			return false, err
		}
		if exists {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", path), Level: LevelVerbose})
			return false, nil
		}
	}

	if m.settings.DryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Dry run: would write %s", path), Level: LevelInfo})
		return true, nil
	}

	if err := fsutil.WriteFileAtomic(path, []byte(doc), 0o644); err != nil {
		return false, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote: %s", path), Level: LevelVerbose})
	return true, nil
}

func (m *Manager) warnDuplicateTitles(artworks []*model.Artwork) {
	seen := make(map[string]string, len(artworks))
	for _, artwork := range artworks {
		if first, ok := seen[artwork.Title]; ok {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Duplicate title %q in %s and %s", artwork.Title, first, artwork.Folder),
				Level:   LevelWarning,
			})
			continue
		}
		seen[artwork.Title] = artwork.Folder
	}
}

// lock takes the collection lock and returns its release function.
func (m *Manager) lock() (func(), error) {
	path := m.settings.LockPath()
	if path == "" {
		return func() {}, nil
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return func() { _ = lock.Unlock() }, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
