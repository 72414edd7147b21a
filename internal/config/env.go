package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override settings file values.
const (
	EnvRoot       = "ARTWORKS_ROOT"
	EnvDryRun     = "ARTWORKS_DRY_RUN"
	EnvHTMLPolicy = "ARTWORKS_HTML_POLICY"
	EnvWorkers    = "ARTWORKS_WORKERS"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored and variables already set in the
// environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from ARTWORKS_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvRoot); ok && v != "" {
		s.Root = v
	}
	if v, ok := os.LookupEnv(EnvHTMLPolicy); ok && v != "" {
		s.HTMLPolicy = v
	}
	if v, ok := os.LookupEnv(EnvDryRun); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDryRun, err)
		}
		s.DryRun = b
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		s.Workers = n
	}
	return nil
}
