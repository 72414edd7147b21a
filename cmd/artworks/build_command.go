package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/build"
	"github.com/handiism/artwork-pages/internal/manifest"
)

func newBuildCommand(opts *globalOptions) *cobra.Command {
	bopts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write every artwork page and content.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, bopts)
		},
	}

	addBuildFlags(cmd, bopts)
	return cmd
}

func runBuild(cmd *cobra.Command, opts *globalOptions, flags *buildOptions) error {
	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}
	flags.apply(cmd, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := newEventPrinter(out, opts.verbose)

	printer.header("Artwork Pages")

	manager := build.NewManager(settings, printer.print)
	result, err := manager.Build(cmd.Context())
	if err != nil {
		return err
	}

	printer.rule()
	if result.DryRun {
		fmt.Fprintf(out, "Dry run: %d artworks, %d pages would be written, %d skipped\n",
			len(result.Artworks), len(result.Pages), len(result.Skipped))
		if opts.verbose {
			fmt.Fprintf(out, "Manifest preview (%s):\n", settings.ManifestPath())
			if err := manifest.Encode(out, result.Artworks); err != nil {
				return fmt.Errorf("preview manifest: %w", err)
			}
		}
		return nil
	}
	fmt.Fprintf(out, "Complete! %d artworks, %d pages written, %d skipped\n",
		len(result.Artworks), len(result.Pages), len(result.Skipped))
	fmt.Fprintf(out, "Manifest: %s\n", result.ManifestPath)
	return nil
}
