package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/artwork-pages/internal/model"
)

var (
	// ErrDescriptionTooLarge is returned when description.txt exceeds the
	// configured size cap.
	ErrDescriptionTooLarge = errors.New("description file too large")

	// ErrInvalidEncoding is returned when a text file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// Scanner extracts Artwork records from a collection of artwork folders.
//
// The Scanner reads through an fs.FS rooted at the artworks directory, so the
// same code runs against the real filesystem (os.DirFS) and in-memory test
// trees (fstest.MapFS).
//
// Example usage:
//
//	s := NewScanner(os.DirFS("artworks"), &model.ScanConfig{Workers: 4})
//
//	artworks, err := s.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, a := range artworks {
//	    fmt.Printf("%s: %d media\n", a.Title, len(a.Media))
//	}
type Scanner struct {
	fsys   fs.FS
	root   string
	config *model.ScanConfig

	// onFolder is called after each folder is scanned.
	onFolder func(folder string)
}

// NewScanner creates a Scanner over fsys. If cfg is nil, defaults are used
// (no description cap, no title normalisation, one worker).
func NewScanner(fsys fs.FS, cfg *model.ScanConfig) *Scanner {
	if cfg == nil {
		cfg = &model.ScanConfig{}
	}
	return &Scanner{fsys: fsys, config: cfg}
}

// NewDirScanner creates a Scanner over the artworks directory dir. Error
// messages name files by their path under dir.
func NewDirScanner(dir string, cfg *model.ScanConfig) *Scanner {
	s := NewScanner(os.DirFS(dir), cfg)
	s.root = dir
	return s
}

// path returns the display path of name for error messages.
func (s *Scanner) path(name string) string {
	if s.root == "" {
		return name
	}
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// OnFolder registers a callback invoked once per scanned folder. With more
// than one worker the callback may be called concurrently.
func (s *Scanner) OnFolder(fn func(folder string)) {
	s.onFolder = fn
}

// Folders returns the names of the artwork folders, sorted by name.
//
// Only directories count; symbolic links are followed, so a link to a
// directory is an artwork folder too.
func (s *Scanner) Folders() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read artworks directory %s: %w", s.path("."), err)
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		isDir, err := s.isDir(entry)
		if err != nil {
			return nil, err
		}
		if isDir {
			folders = append(folders, entry.Name())
		}
	}

	sort.Strings(folders)
	return folders, nil
}

// Scan extracts one Artwork per folder, ordered by folder name.
//
// Folders are scanned by up to config.Workers goroutines. Results are stored
// by folder index, so the returned order never depends on scheduling. The
// first error cancels the remaining work and is returned; no partial result
// is returned alongside it.
func (s *Scanner) Scan(ctx context.Context) ([]*model.Artwork, error) {
	folders, err := s.Folders()
	if err != nil {
		return nil, err
	}

	workers := s.config.Workers
	if workers < 1 {
		workers = 1
	}

	artworks := make([]*model.Artwork, len(folders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, folder := range folders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			artwork, err := s.ScanFolder(folder)
			if err != nil {
				return err
			}
			artworks[i] = artwork
			if s.onFolder != nil {
				s.onFolder(folder)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return artworks, nil
}

func (s *Scanner) isDir(entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := fs.Stat(s.fsys, entry.Name())
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.path(entry.Name()), err)
	}
	return info.IsDir(), nil
}
