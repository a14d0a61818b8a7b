package imgutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

// ============================================================================
// Pure Image Utility Functions
// ============================================================================
//
// Domain-agnostic helpers shared by the pipeline: byte/image conversion,
// content hashing, and data-URL handling for inline model payloads.
// ============================================================================

// Decode decodes raw image bytes into an image.Image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG encodes an image as JPEG bytes at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentHash returns the hex SHA-256 of the raw image bytes. Used as
// the cache key component for face locks.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Crop returns the sub-image covered by the rectangle, clamped to the
// source bounds.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	return imaging.Crop(img, rect.Intersect(img.Bounds()))
}

// SniffMime returns the MIME type for raw image bytes, defaulting to
// image/jpeg when the format is unrecognized.
func SniffMime(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "image/jpeg"
	}
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// ToBase64 encodes bytes for inline transport to the model APIs.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes inline model payload data, tolerating a data-URL
// prefix.
func FromBase64(value string) ([]byte, error) {
	value = StripDataURLPrefix(value)
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return data, nil
}

// StripDataURLPrefix removes a leading "data:<mime>;base64," marker.
func StripDataURLPrefix(value string) string {
	if !strings.HasPrefix(value, "data:") {
		return value
	}
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		return value[idx+1:]
	}
	return value
}
