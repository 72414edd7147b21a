// Package fsutil provides the file writing helpers used to emit pages and
// the manifest.
//
// # File Operations
//
//	// Replace a file without exposing partial contents
//	err := fsutil.WriteFileAtomic("/collection/content.json", data, 0644)
//
//	// Write a page
//	err := fsutil.WriteFileAtomic("/collection/artworks/1_Sunrise/Sunrise.html", page, 0644)
//
//	// Check for an existing page
//	exists, err := fsutil.Exists(path)
package fsutil
