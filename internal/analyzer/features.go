package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"go-skin-analyzer/pkg/models"
)

// featureExtractor computes the bilateral asymmetry and per-channel color
// dispersion features on the untransformed RGB raster.
type featureExtractor struct{}

// NewFeatureExtractor returns the canonical feature extractor.
func NewFeatureExtractor() FeatureExtractor {
	return &featureExtractor{}
}

// Extract derives the feature vector:
//
//   - asymmetry = |mean(left) - mean(right)| / 255 over the BT.601
//     luminance plane, split at the integer column floor(width/2); the left
//     half gets the floor, the right half the remainder.
//   - colorVariation = the mean of the three per-channel population
//     standard deviations, each normalized by 255.
//
// Both values land in [0,1] by construction.
func (e *featureExtractor) Extract(r *Raster) models.FeatureVector {
	return models.FeatureVector{
		Asymmetry:      e.asymmetry(r),
		ColorVariation: e.colorVariation(r),
	}
}

func (e *featureExtractor) asymmetry(r *Raster) float64 {
	half := r.Width / 2
	if half == 0 {
		// A one-column frame has no left half to compare.
		return 0
	}

	lum := r.Luminance()
	var leftSum, rightSum float64
	for y := 0; y < r.Height; y++ {
		row := y * r.Width
		for x := 0; x < half; x++ {
			leftSum += float64(lum[row+x])
		}
		for x := half; x < r.Width; x++ {
			rightSum += float64(lum[row+x])
		}
	}

	leftMean := leftSum / float64(half*r.Height)
	rightMean := rightSum / float64((r.Width-half)*r.Height)
	return math.Abs(leftMean-rightMean) / 255.0
}

func (e *featureExtractor) colorVariation(r *Raster) float64 {
	n := r.Width * r.Height
	channels := [Channels][]float64{
		make([]float64, n),
		make([]float64, n),
		make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p := i * Channels
		channels[0][i] = float64(r.Pix[p])
		channels[1][i] = float64(r.Pix[p+1])
		channels[2][i] = float64(r.Pix[p+2])
	}

	var total float64
	for c := 0; c < Channels; c++ {
		total += stat.PopStdDev(channels[c], nil) / 255.0
	}
	return total / Channels
}
