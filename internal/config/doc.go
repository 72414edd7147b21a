// Package config provides configuration management for artwork-pages.
//
// This package handles:
//   - Loading and saving settings from JSON, YAML or TOML files
//   - Default configuration values
//   - Environment overrides (ARTWORKS_*), optionally from a .env file
//   - Conversion to ScanConfig and RenderConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads ./artworks, writes ./content.json
//	// Overwrites existing pages, one scan worker
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/artworks.toml")
//	if err != nil {
//	    // Missing files give defaults; parse errors are returned
//	}
//
// # Environment
//
//	_ = config.LoadDotEnv()
//	if err := settings.ApplyEnv(); err != nil {
//	    return err
//	}
//
// ARTWORKS_ROOT, ARTWORKS_DRY_RUN, ARTWORKS_HTML_POLICY and ARTWORKS_WORKERS
// override file values. Command-line flags override both.
package config
