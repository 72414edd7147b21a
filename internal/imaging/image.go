package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Info describes a media file as seen on disk.
type Info struct {
	// Format is the decoder name ("jpeg", "png", "webp", ...), empty when
	// the file is not a decodable raster image.
	Format string

	// Width and Height are the pixel dimensions, zero when unknown.
	Width  int
	Height int

	// MIMEType is the content type sniffed from the file contents.
	MIMEType string

	// Size is the file size in bytes.
	Size int64
}

// HasDimensions reports whether the pixel dimensions are known.
func (i Info) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

// ImageService inspects media files of an artwork folder.
//
// ImageService is used to:
//   - Read raster image dimensions without decoding the full image
//   - Detect the real content type of a file, independent of its extension
//
// Videos and SVG files have no raster decoder; Probe reports their sniffed
// type and size and leaves the dimensions empty.
//
// Example usage:
//
//	svc := NewImageService()
//
//	info, err := svc.Probe("artworks/1_Sunrise/01_sketch.webp")
//	fmt.Printf("%s %dx%d\n", info.MIMEType, info.Width, info.Height)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Probe returns what can be learned about the file at path.
//
// Returns an error only if the file cannot be opened or read. A file whose
// image header cannot be decoded is not an error.
func (s *ImageService) Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return Info{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	info := Info{
		MIMEType: mime.String(),
		Size:     stat.Size(),
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek %s: %w", path, err)
	}
	if cfg, format, err := image.DecodeConfig(f); err == nil {
		info.Format = format
		info.Width = cfg.Width
		info.Height = cfg.Height
	}

	return info, nil
}
