package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/config"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	root       string
	verbose    bool
}

// buildOptions holds the flags shared by the root and build commands.
type buildOptions struct {
	dryRun          bool
	skipExisting    bool
	workers         int
	markdown        bool
	normalizeTitles bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	bopts := &buildOptions{}

	rootCmd := &cobra.Command{
		Use:   "artworks",
		Short: "Build HTML pages and content.json from artwork folders",
		Long: `artworks scans <root>/artworks/<N_title>/ folders, writes <title>.html
into every folder and writes <root>/content.json listing all artworks.

Running artworks without a subcommand is the same as "artworks build".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, bopts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Settings file (.json, .yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVarP(&opts.root, "root", "r", "", "Collection root (overrides settings)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output")
	addBuildFlags(rootCmd, bopts)

	rootCmd.AddCommand(newBuildCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// loadSettings resolves settings from defaults, the settings file, the
// environment and the persistent flags, in increasing priority.
func loadSettings(cmd *cobra.Command, opts *globalOptions) (*config.Settings, error) {
	settings := config.DefaultSettings()

	if path := strings.TrimSpace(opts.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("root") {
		settings.Root = opts.root
	}

	return settings, nil
}

func addBuildFlags(cmd *cobra.Command, bopts *buildOptions) {
	cmd.Flags().BoolVarP(&bopts.dryRun, "dry-run", "n", false, "Report what would be written without writing")
	cmd.Flags().BoolVar(&bopts.skipExisting, "skip-existing", false, "Leave existing pages untouched")
	cmd.Flags().IntVarP(&bopts.workers, "workers", "w", 0, "Number of folders scanned concurrently")
	cmd.Flags().BoolVar(&bopts.markdown, "markdown", false, "Render descriptions as Markdown")
	cmd.Flags().BoolVar(&bopts.normalizeTitles, "normalize-titles", false, "NFC-normalise titles")
}

// apply overrides settings with the build flags that were set.
func (b *buildOptions) apply(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		settings.DryRun = b.dryRun
	}
	if flags.Changed("skip-existing") {
		settings.HTMLPolicy = config.PolicyOverwrite
		if b.skipExisting {
			settings.HTMLPolicy = config.PolicySkip
		}
	}
	if flags.Changed("workers") {
		settings.Workers = b.workers
	}
	if flags.Changed("markdown") {
		settings.DescriptionFormat = "text"
		if b.markdown {
			settings.DescriptionFormat = "markdown"
		}
	}
	if flags.Changed("normalize-titles") {
		settings.NormalizeTitles = b.normalizeTitles
	}
}
