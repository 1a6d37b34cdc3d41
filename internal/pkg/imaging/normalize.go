// Package imaging normalizes uploaded ID-proof images: decoded,
// bounded in size, and re-encoded as JPEG so the stored artifact has a
// predictable format regardless of what the client sent.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"

	// Registered decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Config for image normalization
type Config struct {
	MaxWidth  int // max width of the stored image (default 2000)
	MaxHeight int // max height of the stored image (default 2000)
	Quality   int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns the default normalization config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  2000,
		MaxHeight: 2000,
		Quality:   85,
	}
}

// Normalizer decodes and re-encodes uploaded images
type Normalizer struct {
	config Config
}

// NewNormalizer creates an image normalizer
func NewNormalizer(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize reads an uploaded image, downscales it if it exceeds the
// configured bounds, and returns JPEG bytes plus the content type.
func (n *Normalizer) Normalize(reader io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > n.config.MaxWidth || img.Bounds().Dy() > n.config.MaxHeight {
		img = imaging.Fit(img, n.config.MaxWidth, n.config.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(n.config.Quality)); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
