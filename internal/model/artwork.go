package model

import (
	"strings"
)

// Artwork represents one artwork folder with the metadata extracted from its files.
//
// Artwork contains everything needed to render the artwork page and the
// collection manifest:
//   - Title for the page heading and the output file name
//   - Folder as the stable identifier of the source directory
//   - Thumbnail, Media, Text and Links as discovered by filename convention
//
// The JSON field order is part of the manifest format and must stay
// title, folder, thumbnail, media, text, links.
//
// Example:
//
//	artwork := NewArtwork("2_Untitled")
//	// artwork.Title  = "Untitled"
//	// artwork.Folder = "2_Untitled"
type Artwork struct {
	// Title is the folder name with its leading ordering segment removed.
	Title string `json:"title"`

	// Folder is the original directory name.
	Folder string `json:"folder"`

	// Thumbnail is the thumbnail file name, or empty when the folder has none.
	Thumbnail string `json:"thumbnail"`

	// Media holds numbered media file names in display order.
	Media []string `json:"media"`

	// Text is the raw contents of description.txt, or empty.
	Text string `json:"text"`

	// Links holds the link_<n>_<name>.txt entries in file name order.
	Links []Link `json:"links"`
}

// Link is a titled URL read from a link_<n>_<name>.txt file.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewArtwork creates an Artwork for the given folder with its title derived
// and all collections initialised to empty (never nil) slices.
func NewArtwork(folder string) *Artwork {
	return &Artwork{
		Title:  ParseTitle(folder),
		Folder: folder,
		Media:  []string{},
		Links:  []Link{},
	}
}

// HasThumbnail reports whether a thumbnail file was found.
func (a *Artwork) HasThumbnail() bool {
	return a.Thumbnail != ""
}

// HasDescription reports whether the description block should be rendered.
func (a *Artwork) HasDescription() bool {
	return a.Text != ""
}

// HTMLFileName returns the name of the page written into the artwork folder.
//
// Two folders that share a title both get the same file name, but each page
// lives in its own folder so they never overwrite each other.
func (a *Artwork) HTMLFileName() string {
	return a.Title + ".html"
}

// ParseTitle derives a display title from a folder name by dropping the first
// underscore-delimited segment.
//
//	ParseTitle("1_title")        // "title"
//	ParseTitle("03_my_artwork")  // "my_artwork"
//	ParseTitle("untitled")       // ""
func ParseTitle(folder string) string {
	_, rest, found := strings.Cut(folder, "_")
	if !found {
		return ""
	}
	return rest
}

// ParseLinkTitle derives a link title from a link_<n>_<name>.txt file name.
//
//	ParseLinkTitle("link_1_site.txt")       // "site"
//	ParseLinkTitle("link_2_my_blog.txt")    // "my_blog"
//	ParseLinkTitle("link_portfolio.txt")    // ""
func ParseLinkTitle(fileName string) string {
	name := strings.TrimPrefix(fileName, LinkPrefix)
	name = strings.TrimSuffix(name, LinkSuffix)
	return ParseTitle(name)
}

// IsLinkFile reports whether a file name follows the link_<n>_<name>.txt convention.
func IsLinkFile(fileName string) bool {
	return strings.HasPrefix(fileName, LinkPrefix) && strings.HasSuffix(fileName, LinkSuffix)
}

// ScanConfig holds the settings that influence metadata extraction.
type ScanConfig struct {
	// MaxDescriptionBytes caps the size of description.txt. Zero disables the cap.
	MaxDescriptionBytes int64

	// NormalizeTitles applies Unicode NFC normalisation to derived titles.
	NormalizeTitles bool

	// Workers is the number of folders scanned concurrently.
	Workers int
}

// DescriptionFormat selects how description text is rendered.
type DescriptionFormat int

const (
	// DescriptionText renders the description as escaped preformatted text.
	DescriptionText DescriptionFormat = iota

	// DescriptionMarkdown renders the description as Markdown.
	DescriptionMarkdown
)

// String returns the configuration name of the format.
func (f DescriptionFormat) String() string {
	switch f {
	case DescriptionMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

// RenderConfig holds page rendering settings.
type RenderConfig struct {
	DescriptionFormat DescriptionFormat
}
