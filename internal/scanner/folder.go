package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/handiism/artwork-pages/internal/model"
)

// ScanFolder extracts the Artwork record of a single folder.
//
// This method performs the following steps:
//  1. Lists the folder entries (subdirectories are ignored)
//  2. Picks the thumbnail from the name-sorted candidates
//  3. Collects numbered media files in lexicographic order
//  4. Reads description.txt, if present
//  5. Reads link_<n>_<name>.txt files in name order
//
// Any read error fails the folder, and the error names the offending path.
func (s *Scanner) ScanFolder(folder string) (*model.Artwork, error) {
	entries, err := fs.ReadDir(s.fsys, folder)
	if err != nil {
		return nil, fmt.Errorf("read artwork folder %s: %w", s.path(folder), err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	artwork := model.NewArtwork(folder)
	if s.config.NormalizeTitles {
		artwork.Title = norm.NFC.String(artwork.Title)
	}

	artwork.Thumbnail = pickThumbnail(files)
	artwork.Media = selectMedia(files)

	if slices.Contains(files, model.DescriptionFile) {
		text, err := s.readDescription(path.Join(folder, model.DescriptionFile))
		if err != nil {
			return nil, err
		}
		artwork.Text = text
	}

	for _, name := range files {
		if !model.IsLinkFile(name) {
			continue
		}
		url, err := s.readText(path.Join(folder, name), 0)
		if err != nil {
			return nil, err
		}
		artwork.Links = append(artwork.Links, model.Link{
			Title: model.ParseLinkTitle(name),
			URL:   trimURL(url),
		})
	}

	return artwork, nil
}

// pickThumbnail returns the first thumbnail candidate of the sorted file list.
func pickThumbnail(files []string) string {
	for _, name := range files {
		if model.IsThumbnail(name) {
			return name
		}
	}
	return ""
}

// selectMedia returns the numbered media files sorted lexicographically.
//
// Sorting is plain byte order: "10_x.jpg" sorts before "2_x.jpg", so
// collections should use consistent-width numeric prefixes.
func selectMedia(files []string) []string {
	media := make([]string, 0, len(files))
	for _, name := range files {
		if model.IsMediaFile(name) {
			media = append(media, name)
		}
	}
	sort.Strings(media)
	return media
}

func (s *Scanner) readDescription(name string) (string, error) {
	return s.readText(name, s.config.MaxDescriptionBytes)
}

// readText reads a UTF-8 text file. A positive limit caps the size in bytes.
func (s *Scanner) readText(name string, limit int64) (string, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", s.path(name), err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path(name), err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%s exceeds %d bytes: %w", s.path(name), limit, ErrDescriptionTooLarge)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", s.path(name), ErrInvalidEncoding)
	}

	return string(data), nil
}

// trimURL trims surrounding whitespace and byte order marks.
func trimURL(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
