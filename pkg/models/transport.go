package models

// AnalysisRequest is the JSON body accepted by POST /analyze.
type AnalysisRequest struct {
	URL            string `json:"url" binding:"required,url"`
	IncludeOverlay bool   `json:"include_overlay,omitempty"`

	// Optional threshold overrides. Nil means pipeline defaults.
	DetectionThreshold *float64 `json:"detection_threshold,omitempty"`
}

// AnalysisResponse wraps the pipeline output for the HTTP boundary.
type AnalysisResponse struct {
	Result  AnalysisResult `json:"result"`
	Overlay *OverlayResult `json:"overlay,omitempty"`
}

// ErrorResponse is the uniform error body returned by the HTTP boundary.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
