package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// File naming conventions inside an artwork folder.
const (
	DescriptionFile = "description.txt"
	LinkPrefix      = "link_"
	LinkSuffix      = ".txt"
)

// MediaKind tells the renderer which element to emit for a media file.
type MediaKind int

const (
	// MediaImage is rendered as an <img> element.
	MediaImage MediaKind = iota

	// MediaVideo is rendered as a <video> element with a typed <source>.
	MediaVideo
)

// DefaultVideoMIMEType is used for a video extension without a known type.
const DefaultVideoMIMEType = "video/mp4"

var (
	imageExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
	}

	mediaExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
		".mp4": {}, ".mov": {}, ".webm": {}, ".avi": {}, ".mkv": {},
		".bmp": {}, ".tiff": {}, ".svg": {},
	}

	videoMIMETypes = map[string]string{
		".mp4":  "video/mp4",
		".mov":  "video/quicktime",
		".webm": "video/webm",
		".avi":  "video/x-msvideo",
		".mkv":  "video/x-matroska",
	}

	numberedPattern = regexp.MustCompile(`^\d+_`)

	thumbnailMarkers = []string{"thumbnail", "thumnail"}
)

// Ext returns the lowercased extension of a file name, including the dot.
//
// A leading dot alone does not start an extension, so ".png" has none.
func Ext(name string) string {
	if strings.LastIndex(name, ".") <= 0 {
		return ""
	}
	return strings.ToLower(filepath.Ext(name))
}

// IsNumbered reports whether the file name without its extension starts with
// one or more digits followed by an underscore.
func IsNumbered(name string) bool {
	return numberedPattern.MatchString(strings.TrimSuffix(name, filepath.Ext(name)))
}

// IsMediaFile reports whether name is a numbered file with a media extension.
func IsMediaFile(name string) bool {
	if _, ok := mediaExtensions[Ext(name)]; !ok {
		return false
	}
	return IsNumbered(name)
}

// IsImageExt reports whether ext (lowercase, with dot) is a thumbnail image extension.
func IsImageExt(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

// IsThumbnail reports whether name looks like a thumbnail image. The common
// "thumnail" misspelling is accepted.
func IsThumbnail(name string) bool {
	if !IsImageExt(Ext(name)) {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range thumbnailMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ClassifyMedia returns how a media file should be rendered.
func ClassifyMedia(name string) MediaKind {
	if _, ok := videoMIMETypes[Ext(name)]; ok {
		return MediaVideo
	}
	return MediaImage
}

// VideoMIMEType returns the MIME type for a video extension, falling back to
// DefaultVideoMIMEType.
func VideoMIMEType(ext string) string {
	if mime, ok := videoMIMETypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return DefaultVideoMIMEType
}
