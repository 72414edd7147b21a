package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/handiism/artwork-pages/internal/fsutil"
	"github.com/handiism/artwork-pages/internal/model"
)

// DefaultFileName is the manifest name at the collection root.
const DefaultFileName = "content.json"

// Encode writes the artworks as an indented JSON array.
//
// The output uses two-space indentation and keeps characters such as <, >
// and & literal, so the file stays readable and diffs cleanly. A nil slice
// is written as an empty array. Write and the "build --dry-run --verbose"
// preview both go through it.
func Encode(w io.Writer, artworks []*model.Artwork) error {
	if artworks == nil {
		artworks = []*model.Artwork{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(artworks)
}

// Marshal returns the encoded manifest.
func Marshal(artworks []*model.Artwork) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, artworks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serialises the artworks to path.
//
// The file is replaced atomically, so an interrupted run never leaves a
// truncated manifest behind. An existing manifest is overwritten without
// confirmation.
func Write(path string, artworks []*model.Artwork) error {
	data, err := Marshal(artworks)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// Read loads a manifest written by Write.
func Read(path string) ([]*model.Artwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var artworks []*model.Artwork
	if err := json.Unmarshal(data, &artworks); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return artworks, nil
}
