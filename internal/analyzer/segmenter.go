package analyzer

import "github.com/anthonynsimon/bild/parallel"

// ChannelBounds is a closed interval [Low, High] for one channel.
type ChannelBounds struct {
	Low  uint8
	High uint8
}

func (b ChannelBounds) contains(v uint8) bool {
	return v >= b.Low && v <= b.High
}

// SkinMask is the segmenter output: the cleaned binary mask plus the
// derived coverage statistics. It is ephemeral per analysis call.
type SkinMask struct {
	Mask       *Mask
	SkinPixels int
	Ratio      float64
}

// skinSegmenter thresholds a YCrCb raster into a binary skin mask and
// applies morphological cleanup.
type skinSegmenter struct {
	bounds [Channels]ChannelBounds
	kernel []offset
}

// NewSegmenter builds a segmenter from the skin interval and kernel radius
// carried by the options.
func NewSegmenter(opts Options) Segmenter {
	var bounds [Channels]ChannelBounds
	for i := 0; i < Channels; i++ {
		bounds[i] = ChannelBounds{Low: opts.SkinLower[i], High: opts.SkinUpper[i]}
	}
	return &skinSegmenter{
		bounds: bounds,
		kernel: diskKernel(opts.KernelRadius),
	}
}

// Segment marks a pixel as skin iff each of its three channel values falls
// within its per-channel interval, then runs opening followed by closing.
// Opening must come first: closing a noisy mask would fuse salt noise into
// the main region before it can be removed.
//
// An image entirely outside the interval yields Ratio == 0, a valid result.
func (s *skinSegmenter) Segment(ycrcb *Raster) *SkinMask {
	mask := NewMask(ycrcb.Width, ycrcb.Height)

	parallel.Line(ycrcb.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * ycrcb.Width
			for x := 0; x < ycrcb.Width; x++ {
				i := (row + x) * Channels
				if s.bounds[0].contains(ycrcb.Pix[i]) &&
					s.bounds[1].contains(ycrcb.Pix[i+1]) &&
					s.bounds[2].contains(ycrcb.Pix[i+2]) {
					mask.Bits[row+x] = 1
				}
			}
		}
	})

	cleaned := Close(Open(mask, s.kernel), s.kernel)

	count := cleaned.CountNonzero()
	return &SkinMask{
		Mask:       cleaned,
		SkinPixels: count,
		Ratio:      float64(count) / float64(ycrcb.Width*ycrcb.Height),
	}
}
