package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/config"
	"github.com/handiism/artwork-pages/internal/tui"
)

func main() {
	var configPath, root string

	cmd := &cobra.Command{
		Use:           "artworks-tui",
		Short:         "Interactive artwork page builder",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				settings = loaded
			}
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			if err := settings.ApplyEnv(); err != nil {
				return err
			}
			if cmd.Flags().Changed("root") {
				settings.Root = root
			}
			return tui.Run(settings)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Settings file (.json, .yaml, .yml or .toml)")
	cmd.Flags().StringVarP(&root, "root", "r", "", "Initial collection root")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
