package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestProbe_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1_a.png")
	writePNG(t, path, 3, 2)

	info, err := NewImageService().Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 3, info.Width)
	assert.Equal(t, 2, info.Height)
	assert.Equal(t, "image/png", info.MIMEType)
	assert.True(t, info.HasDimensions())
	assert.Positive(t, info.Size)
}

func TestProbe_MisnamedFile(t *testing.T) {
	// A PNG saved with a .jpg extension is reported by its contents.
	path := filepath.Join(t.TempDir(), "1_a.jpg")
	writePNG(t, path, 4, 4)

	info, err := NewImageService().Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "image/png", info.MIMEType)
}

func TestProbe_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2_b.mp4")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a video"), 0o644))

	info, err := NewImageService().Probe(path)
	require.NoError(t, err)

	assert.Empty(t, info.Format)
	assert.False(t, info.HasDimensions())
	assert.Contains(t, info.MIMEType, "text/plain")
	assert.Equal(t, int64(23), info.Size)
}

func TestProbe_MissingFile(t *testing.T) {
	_, err := NewImageService().Probe(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
