package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"1_title", "title"},
		{"2_Untitled", "Untitled"},
		{"03_my_artwork", "my_artwork"},
		{"untitled", ""},
		{"_leading", "leading"},
		{"4_", ""},
		{"5_작품", "작품"},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTitle(tt.folder))
		})
	}
}

func TestParseLinkTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"link_1_site.txt", "site"},
		{"link_2_my_blog.txt", "my_blog"},
		{"link_portfolio.txt", ""},
		{"link_10_instagram.txt", "instagram"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLinkTitle(tt.input))
		})
	}
}

func TestIsLinkFile(t *testing.T) {
	assert.True(t, IsLinkFile("link_1_site.txt"))
	assert.False(t, IsLinkFile("link_1_site.md"))
	assert.False(t, IsLinkFile("1_link_site.txt"))
	assert.False(t, IsLinkFile("Link_1_site.txt"))
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"1_a.jpg", true},
		{"2_b.mp4", true},
		{"10_x.PNG", true},
		{"001_intro.webm", true},
		{"3_vector.svg", true},
		{"4_scan.tiff", true},
		{"a_1.jpg", false},
		{"1a_b.jpg", false},
		{"1-b.jpg", false},
		{"1_notes.txt", false},
		{"thumbnail.png", false},
		{"1_archive.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMediaFile(tt.name))
		})
	}
}

func TestIsThumbnail(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"thumbnail.png", true},
		{"Thumbnail.JPG", true},
		{"thumnail.webp", true},
		{"my_thumbnail_v2.jpeg", true},
		{"thumbnail.mp4", false},
		{"thumbnail.bmp", false},
		{"cover.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsThumbnail(tt.name))
		})
	}
}

func TestClassifyMedia(t *testing.T) {
	assert.Equal(t, MediaVideo, ClassifyMedia("2_b.mp4"))
	assert.Equal(t, MediaVideo, ClassifyMedia("3_c.MOV"))
	assert.Equal(t, MediaImage, ClassifyMedia("1_a.jpg"))
	assert.Equal(t, MediaImage, ClassifyMedia("4_d.svg"))
}

func TestVideoMIMEType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", "video/mp4"},
		{".mov", "video/quicktime"},
		{".webm", "video/webm"},
		{".avi", "video/x-msvideo"},
		{".mkv", "video/x-matroska"},
		{".MKV", "video/x-matroska"},
		{".flv", DefaultVideoMIMEType},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, VideoMIMEType(tt.ext))
		})
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".jpg", Ext("1_a.JPG"))
	assert.Equal(t, "", Ext(".png"))
	assert.Equal(t, "", Ext("README"))
}

func TestArtwork_JSONFieldOrder(t *testing.T) {
	artwork := NewArtwork("2_Untitled")

	data, err := json.Marshal(artwork)
	require.NoError(t, err)

	assert.Equal(t,
		`{"title":"Untitled","folder":"2_Untitled","thumbnail":"","media":[],"text":"","links":[]}`,
		string(data))
}

func TestArtwork_HTMLFileName(t *testing.T) {
	assert.Equal(t, "Show.html", NewArtwork("1_Show").HTMLFileName())
	assert.Equal(t, "Show.html", NewArtwork("3_Show").HTMLFileName())
}
