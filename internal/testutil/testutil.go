// Package testutil provides shared fixtures for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"ladle/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens an in-memory SQLite database with the full schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// tinyWebP is a hand-assembled 1x1 lossless (VP8L) WebP image. The standard
// library cannot encode WebP, so the fixture is a byte literal: RIFF/WEBP
// container, VP8L header for a 1x1 opaque image, then one simple huffman code
// per channel carrying the single pixel.
var tinyWebP = []byte{
	0x52, 0x49, 0x46, 0x46, 0x18, 0x00, 0x00, 0x00, // RIFF, size 24
	0x57, 0x45, 0x42, 0x50, 0x56, 0x50, 0x38, 0x4c, // WEBP, VP8L
	0x0c, 0x00, 0x00, 0x00, 0x2f, 0x00, 0x00, 0x00, // chunk size 12, signature, 1x1
	0x00, 0xa8, 0x50, 0x21, 0x0a, 0xd2, 0xff, 0x00, // coded pixel data
}

// TinyWebP returns an in-memory 1x1 WebP byte slice.
func TinyWebP(t *testing.T) []byte {
	t.Helper()
	out := make([]byte, len(tinyWebP))
	copy(out, tinyWebP)
	return out
}

// TinyJPEG returns an in-memory JPEG byte slice with the requested dimensions.
func TinyJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}
