package analyzer

import (
	"go-skin-analyzer/pkg/models"
	"go-skin-analyzer/pkg/validation"
)

// coreAnalyzer sequences the pipeline stages. The segmentation branch and
// the feature branch read the same immutable raster and write to disjoint
// outputs, so they run concurrently on the worker pool; sequential
// execution produces an identical result.
type coreAnalyzer struct {
	pool *WorkerPool
}

// NewSkinAnalyzer creates the canonical pipeline orchestrator.
func NewSkinAnalyzer() (SkinAnalyzer, error) {
	pool := NewWorkerPool(0)
	pool.Start()
	return &coreAnalyzer{pool: pool}, nil
}

// Analyze runs the pipeline with the canonical constants.
func (ca *coreAnalyzer) Analyze(r *Raster) models.AnalysisResult {
	return ca.AnalyzeWithOptions(r, DefaultOptions())
}

// AnalyzeWithOptions runs the pipeline with explicit constants.
func (ca *coreAnalyzer) AnalyzeWithOptions(r *Raster, opts Options) models.AnalysisResult {
	result, _ := ca.AnalyzeFull(r, opts)
	return result
}

// AnalyzeFull runs the pipeline and additionally returns the skin mask for
// callers that render it (the overlay layer). The mask is derived state;
// the result alone is the pipeline contract.
func (ca *coreAnalyzer) AnalyzeFull(r *Raster, opts Options) (models.AnalysisResult, *SkinMask) {
	segmenter := NewSegmenter(opts)
	extractor := NewFeatureExtractor()
	classifier := NewClassifier(opts.DetectionThreshold)

	var (
		skin     *SkinMask
		features models.FeatureVector
	)

	segment := func() { skin = segmenter.Segment(ToYCrCb(r)) }
	extract := func() { features = extractor.Extract(r) }

	if opts.Sequential {
		segment()
		extract()
	} else {
		ca.pool.RunAll(segment, extract)
	}

	cls := classifier.Classify(features)

	result := models.AnalysisResult{
		SkinRatio:         skin.Ratio,
		CancerProbability: cls.Probability,
		CancerDetected:    cls.Detected,
		RiskTier:          cls.Tier,
		LesionType:        cls.Lesion,
		Prevalence:        cls.Prevalence,
		Advice:            cls.Advice,
		Features:          features,
	}

	validator := validation.NewResultValidator(validation.Thresholds{
		DetectionThreshold: opts.DetectionThreshold,
	})
	result.Errors = validator.Messages(validator.Check(result))

	return result, skin
}

// Close releases the worker pool.
func (ca *coreAnalyzer) Close() error {
	ca.pool.Close()
	return nil
}
