// Package build provides the orchestration logic for turning a collection
// of artwork folders into HTML pages and a JSON manifest.
//
// # Manager
//
// The Manager coordinates the entire build:
//
//  1. Take the collection lock (skipped in a dry run)
//  2. Scan every artwork folder
//  3. Render every page in memory
//  4. Warn about duplicate titles
//  5. Write <folder>/<title>.html for each artwork
//  6. Write the manifest
//
// # Basic Usage
//
//	manager := build.NewManager(settings, func(event build.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages written\n", len(result.Pages))
//
// # Failure Behaviour
//
// Scanning and rendering finish before anything is written, so a broken
// folder leaves pages and manifest untouched. The manifest is written last:
// when it exists after a run, every page of that run was written too.
//
// # Locking
//
// A build holds an exclusive lock on <root>/.artworks.lock. A second build
// on the same collection fails fast with ErrLocked.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Polling UIs read counters with GetProgress.
package build
