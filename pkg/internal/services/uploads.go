package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/image/draw"
)

type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

var allowedUploadTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func uploadDir() string {
	dir := viper.GetString("paths.uploads")
	if len(dir) == 0 {
		dir = "uploads"
	}
	return dir
}

func maxUploadSize() int64 {
	size := viper.GetInt64("uploads.max_size_mb")
	if size <= 0 {
		size = 16
	}
	return size << 20
}

func thumbnailBound() int {
	bound := viper.GetInt("uploads.thumbnail_width")
	if bound <= 0 {
		bound = 512
	}
	return bound
}

// UploadFile sniffs the real content type, writes the file under a random
// name, and produces a resized thumbnail for wide images. The returned URLs
// are served by the static uploads route.
func UploadFile(header *multipart.FileHeader) (UploadResult, error) {
	var result UploadResult

	if header.Size > maxUploadSize() {
		return result, ErrUploadTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return result, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize()+1))
	if err != nil {
		return result, err
	}
	if int64(len(data)) > maxUploadSize() {
		return result, ErrUploadTooLarge
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedUploadTypes[mime.String()]
	if !ok {
		return result, ErrUnsupportedMedia
	}

	if err := os.MkdirAll(uploadDir(), 0o755); err != nil {
		return result, err
	}

	name := uuid.NewString()
	if err := os.WriteFile(filepath.Join(uploadDir(), name+ext), data, 0o644); err != nil {
		return result, err
	}
	result.URL = "/api/uploads/" + name + ext

	if thumbName, err := writeThumbnail(name, data); err != nil {
		log.Warn().Err(err).Str("file", name+ext).Msg("An error occurred when building thumbnail...")
	} else if len(thumbName) > 0 {
		result.ThumbnailURL = "/api/uploads/" + thumbName
	}

	return result, nil
}

func writeThumbnail(name string, data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if src.Bounds().Dx() <= thumbnailBound() {
		return "", nil
	}

	thumb := ResizeImage(src, thumbnailBound())

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}

	thumbName := name + ".thumb.jpg"
	if err := os.WriteFile(filepath.Join(uploadDir(), thumbName), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return thumbName, nil
}

// ResizeImage scales the image down to the given width, keeping aspect.
func ResizeImage(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= width {
		return src
	}

	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// SanitizeUploadName guards the static file route against path traversal.
func SanitizeUploadName(name string) (string, bool) {
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned != name || strings.HasPrefix(cleaned, ".") {
		return "", false
	}
	return cleaned, true
}
