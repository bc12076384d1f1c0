package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/observer"
	"go-skin-analyzer/internal/overlay"
	"go-skin-analyzer/internal/repository"
	"go-skin-analyzer/pkg/models"
)

// SkinAnalysisService is the application-facing API: it fetches or accepts
// an image, runs the pipeline, stamps the result envelope, and optionally
// renders the skin overlay.
type SkinAnalysisService interface {
	AnalyzeURL(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResponse, error)
	AnalyzeBytes(ctx context.Context, data []byte, includeOverlay bool, threshold *float64) (*models.AnalysisResponse, error)
	ValidateImageURL(imageURL string) error
}

// Settings carries the operator-configured analysis defaults. Zero values
// fall back to the pipeline defaults / no deadline.
type Settings struct {
	// DetectionThreshold is the default probability cutoff; a per-request
	// override still takes precedence.
	DetectionThreshold float64

	// AnalysisTimeout bounds one pipeline run, fetch excluded.
	AnalysisTimeout time.Duration
}

type skinAnalysisService struct {
	imageRepo repository.ImageRepository
	analyzer  analyzer.SkinAnalyzer
	renderer  *overlay.Renderer
	publisher observer.Subject
	decode    func([]byte) (*analyzer.Raster, error)
	settings  Settings
}

// NewSkinAnalysisService creates the service. publisher may be nil when no
// observers are wired.
func NewSkinAnalysisService(
	imageRepository repository.ImageRepository,
	skinAnalyzer analyzer.SkinAnalyzer,
	renderer *overlay.Renderer,
	publisher observer.Subject,
	decode func([]byte) (*analyzer.Raster, error),
	settings Settings,
) SkinAnalysisService {
	return &skinAnalysisService{
		imageRepo: imageRepository,
		analyzer:  skinAnalyzer,
		renderer:  renderer,
		publisher: publisher,
		decode:    decode,
		settings:  settings,
	}
}

// AnalyzeURL fetches the image behind the URL and analyzes it.
func (s *skinAnalysisService) AnalyzeURL(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResponse, error) {
	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		ImageURL:  request.URL,
	})

	r, err := s.imageRepo.FetchRaster(ctx, request.URL)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.ImageFetchFailed,
			Timestamp:    time.Now(),
			ImageURL:     request.URL,
			ErrorMessage: err.Error(),
		})
		s.publishFailed(ctx, request.URL, start, err)
		return nil, err
	}
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.ImageFetched,
		Timestamp: time.Now(),
		ImageURL:  request.URL,
		Success:   true,
		Metadata: map[string]interface{}{
			"width":  r.Width,
			"height": r.Height,
		},
	})

	return s.analyze(ctx, r, request.URL, request.IncludeOverlay, request.DetectionThreshold, start)
}

// AnalyzeBytes analyzes an image supplied directly by the caller, such as
// a multipart upload.
func (s *skinAnalysisService) AnalyzeBytes(ctx context.Context, data []byte, includeOverlay bool, threshold *float64) (*models.AnalysisResponse, error) {
	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
	})

	r, err := s.decode(data)
	if err != nil {
		s.publishFailed(ctx, "", start, err)
		return nil, err
	}

	return s.analyze(ctx, r, "", includeOverlay, threshold, start)
}

// ValidateImageURL checks the URL without fetching it.
func (s *skinAnalysisService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

func (s *skinAnalysisService) analyze(ctx context.Context, r *analyzer.Raster, imageURL string, includeOverlay bool, threshold *float64, start time.Time) (*models.AnalysisResponse, error) {
	opts := analyzer.DefaultOptions()
	if s.settings.DetectionThreshold > 0 {
		opts = opts.WithDetectionThreshold(s.settings.DetectionThreshold)
	}
	if threshold != nil {
		opts = opts.WithDetectionThreshold(*threshold)
	}

	result, mask, err := s.runAnalysis(ctx, r, opts)
	if err != nil {
		s.publishFailed(ctx, imageURL, start, err)
		return nil, err
	}

	result.ID = uuid.NewString()
	result.ImageURL = imageURL
	result.Timestamp = time.Now().UTC()
	result.ProcessingTimeSec = time.Since(start).Seconds()

	response := &models.AnalysisResponse{Result: result}

	if includeOverlay {
		ov, err := s.renderer.Render(r, mask, result.RiskTier)
		if err != nil {
			s.publishFailed(ctx, imageURL, start, err)
			return nil, err
		}
		response.Overlay = ov
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		ImageURL:       imageURL,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"analysis_id":        result.ID,
			"skin_ratio":         result.SkinRatio,
			"cancer_probability": result.CancerProbability,
			"risk_tier":          string(result.RiskTier),
		},
	})
	if result.CancerDetected {
		s.publish(ctx, observer.AnalysisEvent{
			EventType: observer.RiskDetected,
			Timestamp: time.Now(),
			ImageURL:  imageURL,
			Success:   true,
			Metadata: map[string]interface{}{
				"analysis_id":        result.ID,
				"cancer_probability": result.CancerProbability,
				"lesion_type":        string(result.LesionType),
			},
		})
	}

	return response, nil
}

// runAnalysis executes one pipeline run under the configured deadline. The
// pipeline itself is synchronous CPU work, so the deadline is enforced
// around it rather than inside it.
func (s *skinAnalysisService) runAnalysis(ctx context.Context, r *analyzer.Raster, opts analyzer.Options) (models.AnalysisResult, *analyzer.SkinMask, error) {
	if s.settings.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.AnalysisTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return models.AnalysisResult{}, nil, apperrors.NewTimeoutError("analysis deadline exceeded", err)
	}

	type outcome struct {
		result models.AnalysisResult
		mask   *analyzer.SkinMask
	}
	done := make(chan outcome, 1)
	go func() {
		result, mask := s.analyzer.AnalyzeFull(r, opts)
		done <- outcome{result: result, mask: mask}
	}()

	select {
	case out := <-done:
		return out.result, out.mask, nil
	case <-ctx.Done():
		return models.AnalysisResult{}, nil, apperrors.NewTimeoutError("analysis deadline exceeded", ctx.Err())
	}
}

func (s *skinAnalysisService) publishFailed(ctx context.Context, imageURL string, start time.Time, err error) {
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Timestamp:      time.Now(),
		ImageURL:       imageURL,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
}

func (s *skinAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}
