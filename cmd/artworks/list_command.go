package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/scanner"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Scan the collection and list artworks without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			s := scanner.NewDirScanner(settings.ArtworksPath(), settings.ToScanConfig())
			artworks, err := s.Scan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artworks) == 0 {
				fmt.Fprintf(out, "No artworks in %s\n", settings.ArtworksPath())
				return nil
			}

			rows := make([][]string, 0, len(artworks))
			for _, a := range artworks {
				thumbnail := a.Thumbnail
				if thumbnail == "" {
					thumbnail = "-"
				}
				description := "-"
				if a.HasDescription() {
					description = humanize.Bytes(uint64(len(a.Text)))
				}
				rows = append(rows, []string{
					a.Folder,
					a.Title,
					strconv.Itoa(len(a.Media)),
					thumbnail,
					strconv.Itoa(len(a.Links)),
					description,
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Folder", "Title", "Media", "Thumbnail", "Links", "Description"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%s artworks\n", humanize.Comma(int64(len(artworks))))
			return nil
		},
	}
}
