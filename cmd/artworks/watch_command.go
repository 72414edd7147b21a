package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/build"
	"github.com/handiism/artwork-pages/internal/watch"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	bopts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever artwork folders change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			bopts.apply(cmd, settings)
			if err := settings.Validate(); err != nil {
				return err
			}

			printer := newEventPrinter(cmd.OutOrStdout(), opts.verbose)
			printer.header("Artwork Pages (watching)")

			rebuild := func(ctx context.Context) error {
				_, err := build.NewManager(settings, printer.print).Build(ctx)
				return err
			}

			if err := rebuild(cmd.Context()); err != nil {
				if cmd.Context().Err() != nil {
					return err
				}
				printer.print(build.ProgressEvent{Message: fmt.Sprintf("Initial build failed: %v", err), Level: build.LevelError})
			}

			w, err := watch.NewWatcher(settings, rebuild, printer.print)
			if err != nil {
				return err
			}
			if err := w.Run(cmd.Context()); err != nil {
				return err
			}
			return cmd.Context().Err()
		},
	}

	addBuildFlags(cmd, bopts)
	return cmd
}
