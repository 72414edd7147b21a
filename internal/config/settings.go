package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/handiism/artwork-pages/internal/fsutil"
	"github.com/handiism/artwork-pages/internal/manifest"
	"github.com/handiism/artwork-pages/internal/model"
)

var (
	// ErrUnknownFormat is returned for a settings file extension other than
	// .json, .yaml, .yml or .toml.
	ErrUnknownFormat = errors.New("unknown settings file format")

	// ErrInvalid is returned by Validate for out-of-range settings.
	ErrInvalid = errors.New("invalid settings")
)

// HTML page policies for pages that already exist.
const (
	PolicyOverwrite = "overwrite"
	PolicySkip      = "skip"
)

// Settings holds all configuration options.
type Settings struct {
	// Collection layout
	Root         string `json:"root" yaml:"root" toml:"root"`
	ArtworksDir  string `json:"artworks_dir" yaml:"artworks_dir" toml:"artworks_dir"`
	ManifestFile string `json:"manifest_file" yaml:"manifest_file" toml:"manifest_file"`
	LockFile     string `json:"lock_file" yaml:"lock_file" toml:"lock_file"`

	// Output
	HTMLPolicy string `json:"html_policy" yaml:"html_policy" toml:"html_policy"` // overwrite, skip
	DryRun     bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run"`

	// Scanning
	Workers             int   `json:"workers" yaml:"workers" toml:"workers"`
	MaxDescriptionBytes int64 `json:"max_description_bytes" yaml:"max_description_bytes" toml:"max_description_bytes"`
	NormalizeTitles     bool  `json:"normalize_titles" yaml:"normalize_titles" toml:"normalize_titles"`

	// Rendering
	DescriptionFormat string `json:"description_format" yaml:"description_format" toml:"description_format"` // text, markdown

	// Watch mode
	WatchDebounceMS int `json:"watch_debounce_ms" yaml:"watch_debounce_ms" toml:"watch_debounce_ms"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Root:         ".",
		ArtworksDir:  "artworks",
		ManifestFile: manifest.DefaultFileName,
		LockFile:     ".artworks.lock",

		HTMLPolicy: PolicyOverwrite,
		DryRun:     false,

		Workers:             1,
		MaxDescriptionBytes: 10 << 20,
		NormalizeTitles:     false,

		DescriptionFormat: "text",

		WatchDebounceMS: 500,
	}
}

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads settings from a JSON, YAML or TOML file, chosen by extension.
//
// Keys missing from the file keep their default values. A missing file
// yields the defaults.
func Load(path string) (*Settings, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	switch f {
	case formatJSON:
		err = json.Unmarshal(data, settings)
	case formatYAML:
		err = yaml.Unmarshal(data, settings)
	case formatTOML:
		err = toml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON, YAML or TOML file, chosen by extension.
func (s *Settings) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(s)
	case formatTOML:
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the settings can drive a build.
func (s *Settings) Validate() error {
	var problems []string

	if s.Root == "" {
		problems = append(problems, "root must not be empty")
	}
	if s.ArtworksDir == "" {
		problems = append(problems, "artworks_dir must not be empty")
	}
	if s.ManifestFile == "" {
		problems = append(problems, "manifest_file must not be empty")
	}
	if s.HTMLPolicy != PolicyOverwrite && s.HTMLPolicy != PolicySkip {
		problems = append(problems, fmt.Sprintf("html_policy %q must be %q or %q", s.HTMLPolicy, PolicyOverwrite, PolicySkip))
	}
	if s.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if s.MaxDescriptionBytes < 0 {
		problems = append(problems, "max_description_bytes must not be negative")
	}
	if s.DescriptionFormat != "text" && s.DescriptionFormat != "markdown" {
		problems = append(problems, fmt.Sprintf("description_format %q must be \"text\" or \"markdown\"", s.DescriptionFormat))
	}
	if s.WatchDebounceMS < 0 {
		problems = append(problems, "watch_debounce_ms must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ArtworksPath returns the artworks directory path.
func (s *Settings) ArtworksPath() string {
	return filepath.Join(s.Root, s.ArtworksDir)
}

// ManifestPath returns the manifest file path.
func (s *Settings) ManifestPath() string {
	return filepath.Join(s.Root, s.ManifestFile)
}

// LockPath returns the lock file path, or empty when locking is disabled.
func (s *Settings) LockPath() string {
	if s.LockFile == "" {
		return ""
	}
	return filepath.Join(s.Root, s.LockFile)
}

// SkipExisting reports whether existing pages are left untouched.
func (s *Settings) SkipExisting() bool {
	return s.HTMLPolicy == PolicySkip
}

// ToScanConfig converts settings to ScanConfig.
func (s *Settings) ToScanConfig() *model.ScanConfig {
	return &model.ScanConfig{
		MaxDescriptionBytes: s.MaxDescriptionBytes,
		NormalizeTitles:     s.NormalizeTitles,
		Workers:             s.Workers,
	}
}

// ToRenderConfig converts settings to RenderConfig.
func (s *Settings) ToRenderConfig() *model.RenderConfig {
	var df model.DescriptionFormat
	switch s.DescriptionFormat {
	case "markdown":
		df = model.DescriptionMarkdown
	default:
		df = model.DescriptionText
	}

	return &model.RenderConfig{
		DescriptionFormat: df,
	}
}
