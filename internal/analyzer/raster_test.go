package analyzer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// uniformRaster builds a width×height raster filled with one RGB color.
func uniformRaster(width, height int, r, g, b uint8) *Raster {
	pix := make([]uint8, width*height*Channels)
	for i := 0; i < len(pix); i += Channels {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
	}
	return &Raster{Width: width, Height: height, Pix: pix}
}

// halfSplitRaster builds a raster whose left half is one color and right
// half another, split at width/2.
func halfSplitRaster(width, height int, left, right [3]uint8) *Raster {
	pix := make([]uint8, width*height*Channels)
	half := width / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := left
			if x >= half {
				c = right
			}
			i := (y*width + x) * Channels
			pix[i] = c[0]
			pix[i+1] = c[1]
			pix[i+2] = c[2]
		}
	}
	return &Raster{Width: width, Height: height, Pix: pix}
}

func TestNewRaster_Valid(t *testing.T) {
	r, err := NewRaster(4, 3, make([]uint8, 4*3*Channels))
	if err != nil {
		t.Fatalf("Failed to create raster: %v", err)
	}
	if r.Width != 4 || r.Height != 3 {
		t.Errorf("Expected 4×3, got %d×%d", r.Width, r.Height)
	}
}

func TestNewRaster_ZeroDimensions(t *testing.T) {
	if _, err := NewRaster(0, 3, nil); !errors.Is(err, ErrMalformedDimensions) {
		t.Errorf("Expected ErrMalformedDimensions for zero width, got %v", err)
	}
	if _, err := NewRaster(4, 0, nil); !errors.Is(err, ErrMalformedDimensions) {
		t.Errorf("Expected ErrMalformedDimensions for zero height, got %v", err)
	}
}

func TestNewRaster_BufferMismatch(t *testing.T) {
	if _, err := NewRaster(4, 3, make([]uint8, 5)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize, got %v", err)
	}
}

func TestFromImage_DropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{10, 20, 30, 255})
	img.Set(1, 0, color.RGBA{40, 50, 60, 255})
	img.Set(0, 1, color.RGBA{70, 80, 90, 255})
	img.Set(1, 1, color.RGBA{100, 110, 120, 255})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("Failed to convert image: %v", err)
	}
	if r.Width != 2 || r.Height != 2 {
		t.Fatalf("Expected 2×2, got %d×%d", r.Width, r.Height)
	}
	if c0, c1, c2 := r.At(0, 0); c0 != 10 || c1 != 20 || c2 != 30 {
		t.Errorf("Expected (10,20,30) at (0,0), got (%d,%d,%d)", c0, c1, c2)
	}
	if c0, c1, c2 := r.At(1, 1); c0 != 100 || c1 != 110 || c2 != 120 {
		t.Errorf("Expected (100,110,120) at (1,1), got (%d,%d,%d)", c0, c1, c2)
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 7, 8, 9))
	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("Failed to convert image: %v", err)
	}
	if r.Width != 3 || r.Height != 2 {
		t.Errorf("Expected 3×2, got %d×%d", r.Width, r.Height)
	}
}

func TestFromImage_EmptyBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(img); !errors.Is(err, ErrMalformedDimensions) {
		t.Errorf("Expected ErrMalformedDimensions, got %v", err)
	}
}

func TestLuminance_Extremes(t *testing.T) {
	black := uniformRaster(3, 3, 0, 0, 0)
	for _, v := range black.Luminance() {
		if v != 0 {
			t.Fatalf("Expected luminance 0 for black, got %d", v)
		}
	}

	white := uniformRaster(3, 3, 255, 255, 255)
	for _, v := range white.Luminance() {
		if v != 255 {
			t.Fatalf("Expected luminance 255 for white, got %d", v)
		}
	}
}

func TestLuminance_Gray(t *testing.T) {
	gray := uniformRaster(2, 2, 128, 128, 128)
	for _, v := range gray.Luminance() {
		if v != 128 {
			t.Fatalf("Expected luminance 128 for mid gray, got %d", v)
		}
	}
}

func TestLuma8_Weights(t *testing.T) {
	// (299*255 + 500) / 1000 = 76 for pure red
	if got := luma8(255, 0, 0); got != 76 {
		t.Errorf("Expected 76 for pure red, got %d", got)
	}
	// (587*255 + 500) / 1000 = 150 for pure green
	if got := luma8(0, 255, 0); got != 150 {
		t.Errorf("Expected 150 for pure green, got %d", got)
	}
	// (114*255 + 500) / 1000 = 29 for pure blue
	if got := luma8(0, 0, 255); got != 29 {
		t.Errorf("Expected 29 for pure blue, got %d", got)
	}
}
