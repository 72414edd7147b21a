// Package manifest reads and writes content.json, the JSON array of every
// artwork record in a collection.
//
//	err := manifest.Write(filepath.Join(root, manifest.DefaultFileName), artworks)
//
// Records keep the field order title, folder, thumbnail, media, text, links.
package manifest
