package analyzer

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// Channels is the number of channels per pixel in a Raster.
const Channels = 3

var (
	// ErrMalformedDimensions reports a raster with zero width or height.
	ErrMalformedDimensions = errors.New("raster has zero width or height")
	// ErrBufferSize reports a pixel buffer that does not match the
	// declared dimensions.
	ErrBufferSize = errors.New("pixel buffer length does not match dimensions")
)

// Raster is an owned 8-bit three-channel pixel buffer in row-major order.
// For source images the channels are R, G, B; ToYCrCb reinterprets them as
// Y, Cr, Cb. The buffer is treated as immutable once constructed: every
// pipeline stage that needs different contents allocates a new Raster.
//
// Invariant: len(Pix) == Width*Height*Channels, Width > 0, Height > 0.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster validates dimensions and buffer length and wraps them in a
// Raster. The buffer is taken over, not copied.
func NewRaster(width, height int, pix []uint8) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrMalformedDimensions
	}
	if len(pix) != width*height*Channels {
		return nil, ErrBufferSize
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts a decoded image into an RGB Raster, dropping alpha.
func FromImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrMalformedDimensions
	}

	rgba := clone.AsRGBA(img)
	pix := make([]uint8, width*height*Channels)
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		dst := pix[y*width*Channels:]
		for x := 0; x < width; x++ {
			dst[x*Channels+0] = src[x*4+0]
			dst[x*Channels+1] = src[x*4+1]
			dst[x*Channels+2] = src[x*4+2]
		}
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// At returns the three channel values at (x, y). Callers are expected to
// stay in bounds; the pipeline only indexes coordinates it derived from
// Width and Height.
func (r *Raster) At(x, y int) (c0, c1, c2 uint8) {
	i := (y*r.Width + x) * Channels
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Luminance converts the raster to a single-channel BT.601 luminance plane.
// Integer arithmetic keeps the extremes exact: (0,0,0) maps to 0 and
// (255,255,255) maps to 255.
func (r *Raster) Luminance() []uint8 {
	lum := make([]uint8, r.Width*r.Height)
	for i := 0; i < len(lum); i++ {
		p := i * Channels
		lum[i] = luma8(r.Pix[p], r.Pix[p+1], r.Pix[p+2])
	}
	return lum
}

func luma8(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}
