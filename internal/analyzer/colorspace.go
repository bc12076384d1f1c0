package analyzer

import "math"

// ToYCrCb converts an RGB raster into full-range BT.601 YCrCb, the color
// space the skin interval is defined in. The output is a new buffer with
// the same dimensions; channel order is Y, Cr, Cb.
//
// The conversion is a fixed linear combination:
//
//	Y  = 0.299*R + 0.587*G + 0.114*B
//	Cr = (R - Y) * 0.713 + 128
//	Cb = (B - Y) * 0.564 + 128
//
// It is total over any well-formed raster; values are rounded and clamped
// to [0,255].
func ToYCrCb(src *Raster) *Raster {
	pix := make([]uint8, len(src.Pix))
	for i := 0; i < len(src.Pix); i += Channels {
		r := float64(src.Pix[i])
		g := float64(src.Pix[i+1])
		b := float64(src.Pix[i+2])

		y := 0.299*r + 0.587*g + 0.114*b
		cr := (r-y)*0.713 + 128
		cb := (b-y)*0.564 + 128

		pix[i] = clampU8(y)
		pix[i+1] = clampU8(cr)
		pix[i+2] = clampU8(cb)
	}
	return &Raster{Width: src.Width, Height: src.Height, Pix: pix}
}

func clampU8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
