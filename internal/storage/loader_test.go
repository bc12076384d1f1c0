package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "go-skin-analyzer/internal/errors"
)

// encodePNG renders a solid-color image to PNG bytes.
func encodePNG(t *testing.T, width, height int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRaster_ValidPNG(t *testing.T) {
	data := encodePNG(t, 4, 3, color.RGBA{10, 20, 30, 255})

	r, err := DecodeRaster(data)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if r.Width != 4 || r.Height != 3 {
		t.Errorf("Expected 4×3 raster, got %d×%d", r.Width, r.Height)
	}
	if c0, c1, c2 := r.At(0, 0); c0 != 10 || c1 != 20 || c2 != 30 {
		t.Errorf("Expected (10,20,30), got (%d,%d,%d)", c0, c1, c2)
	}
}

func TestDecodeRaster_CorruptBytes(t *testing.T) {
	_, err := DecodeRaster([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Expected an error for corrupt bytes")
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeDecode {
		t.Errorf("Expected a decode error, got %v", apperrors.TypeOf(err))
	}
}

func TestDecodeRaster_Empty(t *testing.T) {
	_, err := DecodeRaster(nil)
	if err == nil {
		t.Fatal("Expected an error for an empty payload")
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeDecode {
		t.Errorf("Expected a decode error, got %v", apperrors.TypeOf(err))
	}
}

func TestDecodeRaster_TruncatedPNG(t *testing.T) {
	data := encodePNG(t, 8, 8, color.RGBA{100, 100, 100, 255})
	_, err := DecodeRaster(data[:20])
	if err == nil {
		t.Fatal("Expected an error for a truncated stream")
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeDecode {
		t.Errorf("Expected a decode error, got %v", apperrors.TypeOf(err))
	}
}

func TestLoadRaster_MissingFile(t *testing.T) {
	_, err := LoadRaster("/nonexistent/path/image.png")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeDecode {
		t.Errorf("Expected a decode error, got %v", apperrors.TypeOf(err))
	}
}
