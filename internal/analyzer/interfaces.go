package analyzer

import "go-skin-analyzer/pkg/models"

// SkinAnalyzer is the pipeline entry point. Every call is independent; the
// analyzer holds no state across calls beyond its worker pool.
type SkinAnalyzer interface {
	Analyze(r *Raster) models.AnalysisResult
	AnalyzeWithOptions(r *Raster, opts Options) models.AnalysisResult

	// AnalyzeFull also returns the skin mask for presentation layers.
	AnalyzeFull(r *Raster, opts Options) (models.AnalysisResult, *SkinMask)

	Close() error
}

// Segmenter thresholds a YCrCb raster into a cleaned binary skin mask.
type Segmenter interface {
	Segment(ycrcb *Raster) *SkinMask
}

// FeatureExtractor computes the lesion feature vector on the source raster.
type FeatureExtractor interface {
	Extract(r *Raster) models.FeatureVector
}

// Classifier maps a feature vector to the bounded risk classification.
type Classifier interface {
	Classify(f models.FeatureVector) Classification
}
