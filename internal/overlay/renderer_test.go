package overlay

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"go-skin-analyzer/internal/analyzer"
	"go-skin-analyzer/pkg/models"
)

func testRaster(t *testing.T) *analyzer.Raster {
	t.Helper()
	r, err := analyzer.NewRaster(4, 3, make([]uint8, 4*3*analyzer.Channels))
	if err != nil {
		t.Fatalf("Failed to create raster: %v", err)
	}
	for i := range r.Pix {
		r.Pix[i] = 100
	}
	return r
}

func testMask(width, height int, set ...[2]int) *analyzer.SkinMask {
	m := analyzer.NewMask(width, height)
	for _, p := range set {
		m.Set(p[0], p[1])
	}
	return &analyzer.SkinMask{Mask: m, SkinPixels: len(set)}
}

func TestRender_ProducesDecodablePNG(t *testing.T) {
	re := NewRenderer()
	r := testRaster(t)
	mask := testMask(4, 3, [2]int{0, 0}, [2]int{1, 1})

	out, err := re.Render(r, mask, models.RiskHigh)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if out.Width != 4 || out.Height != 3 {
		t.Errorf("Expected 4×3 overlay, got %d×%d", out.Width, out.Height)
	}
	if out.MimeType != "image/png" {
		t.Errorf("Expected image/png, got %q", out.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(out.ImageBase64)
	if err != nil {
		t.Fatalf("Overlay is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Overlay is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 4×3 PNG, got %v", img.Bounds())
	}
}

func TestRender_MaskedPixelsTinted(t *testing.T) {
	re := NewRenderer()
	r := testRaster(t)
	mask := testMask(4, 3, [2]int{0, 0})

	out, err := re.Render(r, mask, models.RiskHigh)
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	data, _ := base64.StdEncoding.DecodeString(out.ImageBase64)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode overlay: %v", err)
	}

	tr, tg, tb, _ := img.At(0, 0).RGBA()
	ur, ug, ub, _ := img.At(1, 0).RGBA()
	if tr == ur && tg == ug && tb == ub {
		t.Error("Expected the masked pixel to differ from the untinted pixel")
	}
	// Untinted pixel keeps the source color
	if ur>>8 != 100 || ug>>8 != 100 || ub>>8 != 100 {
		t.Errorf("Expected untinted pixel (100,100,100), got (%d,%d,%d)", ur>>8, ug>>8, ub>>8)
	}
}

func TestRender_DimensionMismatch(t *testing.T) {
	re := NewRenderer()
	r := testRaster(t)
	mask := testMask(2, 2)

	if _, err := re.Render(r, mask, models.RiskLow); err == nil {
		t.Fatal("Expected an error for a mask/raster dimension mismatch")
	}
}

func TestRender_NilInputs(t *testing.T) {
	re := NewRenderer()
	if _, err := re.Render(nil, nil, models.RiskLow); err == nil {
		t.Fatal("Expected an error for nil inputs")
	}
}
