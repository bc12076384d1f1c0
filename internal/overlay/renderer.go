package overlay

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/pkg/models"
)

// Tier highlight colors, matching the risk badge palette.
var tierColors = map[models.RiskTier]string{
	models.RiskLow:      "#2AA876",
	models.RiskModerate: "#FFC107",
	models.RiskHigh:     "#DC3545",
}

const blendWeight = 0.45

// Renderer produces a presentation image with the detected skin region
// tinted in the risk tier's color.
type Renderer struct{}

// NewRenderer creates an overlay renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render blends the tier color into every masked pixel and returns the
// result as a base64-encoded PNG.
func (re *Renderer) Render(r *analyzer.Raster, mask *analyzer.SkinMask, tier models.RiskTier) (*models.OverlayResult, error) {
	if r == nil || mask == nil || mask.Mask == nil {
		return nil, apperrors.NewInternalError("overlay requires a raster and a mask", nil)
	}
	if mask.Mask.Width != r.Width || mask.Mask.Height != r.Height {
		return nil, apperrors.NewInternalError("mask dimensions do not match raster", nil)
	}

	hex, ok := tierColors[tier]
	if !ok {
		hex = tierColors[models.RiskLow]
	}
	tint, err := colorful.Hex(hex)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid tier color", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			cr, cg, cb := r.At(x, y)
			if mask.Mask.At(x, y) {
				base := colorful.Color{
					R: float64(cr) / 255.0,
					G: float64(cg) / 255.0,
					B: float64(cb) / 255.0,
				}
				blended := base.BlendRgb(tint, blendWeight).Clamped()
				br, bg, bb := blended.RGB255()
				out.SetRGBA(x, y, color.RGBA{R: br, G: bg, B: bb, A: 255})
			} else {
				out.SetRGBA(x, y, color.RGBA{R: cr, G: cg, B: cb, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, apperrors.NewInternalError("overlay encode failed", err)
	}

	return &models.OverlayResult{
		Width:       r.Width,
		Height:      r.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
