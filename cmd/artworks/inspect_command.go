package main

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/handiism/artwork-pages/internal/imaging"
	"github.com/handiism/artwork-pages/internal/model"
	"github.com/handiism/artwork-pages/internal/scanner"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <folder>",
		Short: "Show what a single artwork folder contains",
		Long: `Scan one artwork folder and print its record plus a table of its media
files: kind, MIME type by extension, MIME type sniffed from the contents,
size and image dimensions. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			folder := filepath.Base(filepath.Clean(args[0]))
			s := scanner.NewDirScanner(settings.ArtworksPath(), settings.ToScanConfig())
			artwork, err := s.ScanFolder(folder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:       %s\n", artwork.Title)
			fmt.Fprintf(out, "Folder:      %s\n", artwork.Folder)
			fmt.Fprintf(out, "Page:        %s\n", artwork.HTMLFileName())
			fmt.Fprintf(out, "Description: %s\n", describeText(artwork))
			for _, link := range artwork.Links {
				fmt.Fprintf(out, "Link:        %s -> %s\n", link.Title, link.URL)
			}

			names := make([]string, 0, len(artwork.Media)+1)
			if artwork.HasThumbnail() {
				names = append(names, artwork.Thumbnail)
			}
			names = append(names, artwork.Media...)
			if len(names) == 0 {
				fmt.Fprintln(out, "No media files")
				return nil
			}

			svc := imaging.NewImageService()
			rows := make([][]string, 0, len(names))
			for i, name := range names {
				info, err := svc.Probe(filepath.Join(settings.ArtworksPath(), folder, name))
				if err != nil {
					return err
				}
				kind := mediaKind(name)
				if i == 0 && artwork.HasThumbnail() {
					kind = "thumbnail"
				}
				dims := "-"
				if info.HasDimensions() {
					dims = fmt.Sprintf("%dx%d", info.Width, info.Height)
				}
				rows = append(rows, []string{
					name,
					kind,
					extensionMIME(name),
					info.MIMEType,
					humanize.Bytes(uint64(info.Size)),
					dims,
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"File", "Kind", "Extension MIME", "Content MIME", "Size", "Dimensions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func describeText(artwork *model.Artwork) string {
	if !artwork.HasDescription() {
		return "none"
	}
	return humanize.Bytes(uint64(len(artwork.Text)))
}

func mediaKind(name string) string {
	if model.ClassifyMedia(name) == model.MediaVideo {
		return "video"
	}
	return "image"
}

func extensionMIME(name string) string {
	ext := model.Ext(name)
	if model.ClassifyMedia(name) == model.MediaVideo {
		return model.VideoMIMEType(ext)
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "-"
}
