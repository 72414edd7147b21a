// Package render generates the static HTML page for an artwork.
//
// # Page Rendering
//
//	r := render.NewRenderer(&model.RenderConfig{})
//	doc, err := r.Render(artwork)
//	if err != nil {
//	    return err
//	}
//
// The page is written next to the media it references, so media sources are
// relative ("./01_sketch.jpg"). Video files get a <video> element with a
// typed <source>; everything else becomes an <img>.
//
// # Description Formats
//
// Descriptions are rendered as escaped text by default, keeping line breaks
// through the stylesheet's pre-wrap. With model.DescriptionMarkdown they are
// converted with goldmark; raw HTML inside the Markdown is not passed through,
// and the block gets white-space: normal so newlines between goldmark's blocks
// do not show as blank lines.
//
// # Links
//
// Link hrefs keep any scheme (ftp:, tel:, protocol-relative) except the ones
// goldmark's IsDangerousURL rejects, which html/template replaces with
// "#ZgotmplZ".
package render
