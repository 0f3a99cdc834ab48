package services

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeImageKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1024, 512))

	out := ResizeImage(src, 512)
	assert.Equal(t, 512, out.Bounds().Dx())
	assert.Equal(t, 256, out.Bounds().Dy())
}

func TestResizeImageSkipsNarrowImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 256, 256))

	out := ResizeImage(src, 512)
	assert.Equal(t, 256, out.Bounds().Dx())
	assert.Equal(t, 256, out.Bounds().Dy())
}

func TestSanitizeUploadName(t *testing.T) {
	name, ok := SanitizeUploadName("9f3b2a.png")
	assert.True(t, ok)
	assert.Equal(t, "9f3b2a.png", name)

	_, ok = SanitizeUploadName("../settings.toml")
	assert.False(t, ok)

	_, ok = SanitizeUploadName(".hidden")
	assert.False(t, ok)

	_, ok = SanitizeUploadName("a/b.png")
	assert.False(t, ok)
}
