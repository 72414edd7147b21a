// Package model defines the core data structures used throughout
// artwork-pages.
//
// # Artwork
//
// Artwork is the record extracted from one artwork folder:
//
//	artwork := model.NewArtwork("1_Sunrise")
//	fmt.Println(artwork.Title)          // "Sunrise"
//	fmt.Println(artwork.HTMLFileName()) // "Sunrise.html"
//
// # Filename conventions
//
// Inside an artwork folder:
//
//	<seq>_<name>.<ext>     numbered media, ext in the media extension set
//	*thumbnail*.<img>      thumbnail ("thumnail" also accepted)
//	description.txt        free text description
//	link_<seq>_<name>.txt  one URL per file
//
// IsMediaFile, IsThumbnail, IsLinkFile and ParseLinkTitle implement these
// predicates. ClassifyMedia and VideoMIMEType decide how a media file is
// rendered.
package model
