// Package imaging inspects artwork media files on disk.
//
// The ImageService reports sniffed content types and, for raster images,
// pixel dimensions. JPEG, PNG and GIF decoders come from the standard
// library; WebP, BMP and TIFF decoders from golang.org/x/image.
//
//	svc := imaging.NewImageService()
//	info, err := svc.Probe(path)
//	if err != nil {
//	    return err
//	}
//	if info.HasDimensions() {
//	    fmt.Printf("%dx%d\n", info.Width, info.Height)
//	}
//
// Inspection never changes build output; it backs the inspect command.
package imaging
