package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/handiism/artwork-pages/internal/model"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// Renderer generates the static HTML page of an artwork.
//
// The page layout and stylesheet are fixed. Every media element references
// its file relative to the page ("./<file>"), because the page is written
// into the artwork folder next to the media.
//
// Example:
//
//	r := NewRenderer(&model.RenderConfig{})
//	doc, err := r.Render(artwork)
//	os.WriteFile(filepath.Join(dir, artwork.HTMLFileName()), []byte(doc), 0644)
type Renderer struct {
	config   *model.RenderConfig
	markdown goldmark.Markdown
}

// NewRenderer creates a new Renderer. If cfg is nil, descriptions are
// rendered as plain text.
func NewRenderer(cfg *model.RenderConfig) *Renderer {
	if cfg == nil {
		cfg = &model.RenderConfig{}
	}
	return &Renderer{
		config:   cfg,
		markdown: goldmark.New(),
	}
}

// pageData is the template view of an artwork.
type pageData struct {
	Title            string
	ThumbnailComment template.HTML
	Description      any
	DescriptionHTML  bool
	Media            []mediaItem
	Links            []linkItem
}

type linkItem struct {
	Title string
	URL   any
}

type mediaItem struct {
	Name     string
	Src      string
	Video    bool
	MIMEType string
}

// Render generates the HTML document for an artwork.
//
// The document contains:
//   - the title heading
//   - the thumbnail image, kept inside an HTML comment so it is not displayed
//   - the description block, only when the description is non-empty
//   - the media section with one <video> or <img> element per media file
//   - the links section, only when the artwork has links
//
// All values taken from file names and file contents are escaped for their
// HTML context.
func (r *Renderer) Render(artwork *model.Artwork) (string, error) {
	data := pageData{
		Title:            artwork.Title,
		ThumbnailComment: thumbnailComment(artwork.Thumbnail),
	}

	data.Links = make([]linkItem, 0, len(artwork.Links))
	for _, l := range artwork.Links {
		data.Links = append(data.Links, linkItem{Title: l.Title, URL: linkURL(l.URL)})
	}

	if artwork.HasDescription() {
		desc, err := r.description(artwork.Text)
		if err != nil {
			return "", fmt.Errorf("render description of %s: %w", artwork.Folder, err)
		}
		data.Description = desc
		_, data.DescriptionHTML = desc.(template.HTML)
	}

	data.Media = make([]mediaItem, 0, len(artwork.Media))
	for _, name := range artwork.Media {
		item := mediaItem{Name: name, Src: mediaSrc(name)}
		if model.ClassifyMedia(name) == model.MediaVideo {
			item.Video = true
			item.MIMEType = model.VideoMIMEType(model.Ext(name))
		}
		data.Media = append(data.Media, item)
	}

	var sb strings.Builder
	if err := page.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render page of %s: %w", artwork.Folder, err)
	}

	return sb.String(), nil
}

// mediaSrc returns the page-relative reference to a file in the artwork
// folder. The name is path-escaped so "#", "?" and "%" stay part of it.
func mediaSrc(name string) string {
	return "./" + url.PathEscape(name)
}

// linkURL returns the href value of a link file. Any scheme is kept except
// the ones goldmark treats as dangerous (javascript:, vbscript:, file: and
// non-image data:); those are returned as plain strings so html/template
// replaces them.
func linkURL(raw string) any {
	// Browsers ignore leading controls and spaces and drop tabs and
	// newlines anywhere in the URL.
	normalized := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, raw)
	normalized = strings.ToLower(strings.TrimLeftFunc(normalized, func(r rune) bool { return r <= ' ' }))

	if gmhtml.IsDangerousURL([]byte(normalized)) {
		return raw
	}
	return template.URL(raw)
}

// description returns the description as escaped text, or as rendered HTML
// when the Markdown format is configured.
func (r *Renderer) description(text string) (any, error) {
	if r.config.DescriptionFormat != model.DescriptionMarkdown {
		return text, nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return nil, err
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// thumbnailComment builds the commented-out thumbnail element.
//
// html/template drops comments written in the template itself, so the
// comment is assembled here. "--" is escaped so a file name cannot close the
// comment early.
func thumbnailComment(thumbnail string) template.HTML {
	var element string
	if thumbnail != "" {
		src := html.EscapeString("./" + thumbnail)
		src = strings.ReplaceAll(src, "--", "&#45;&#45;")
		element = fmt.Sprintf(`<img src="%s" alt="썸네일" style="max-width: 300px; margin-bottom: 20px;">`, src)
	}
	return template.HTML("<!-- " + element + " -->")
}
