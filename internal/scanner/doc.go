// Package scanner extracts artwork metadata from a directory of artwork
// folders using filename conventions.
//
// # Collection Layout
//
//	artworks/
//	    1_Sunrise/
//	        01_sketch.jpg        numbered media
//	        02_timelapse.mp4
//	        thumbnail.png        thumbnail
//	        description.txt      description
//	        link_1_blog.txt      link (URL as file content)
//
// # Scanning
//
//	s := scanner.NewDirScanner("artworks", &model.ScanConfig{Workers: 4})
//	artworks, err := s.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Results are always ordered by folder name, regardless of the number of
// workers. Within a folder, thumbnail candidates and link files are taken in
// file name order, so repeated scans of an unchanged tree give identical
// records.
//
// # Errors
//
// Scanning stops at the first unreadable file. The returned error wraps the
// underlying cause and names the offending path. Oversized descriptions wrap
// ErrDescriptionTooLarge and text files that are not UTF-8 wrap
// ErrInvalidEncoding.
package scanner
