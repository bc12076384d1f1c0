package models

import "time"

// RiskTier is the ordinal risk classification derived from the cancer
// probability.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
)

// LesionType identifies the lesion category mapped from the cancer
// probability. The set is fixed; no free-form values are produced.
type LesionType string

const (
	LesionNoneDetected          LesionType = "none_detected"
	LesionBasalCellCarcinoma    LesionType = "basal_cell_carcinoma"
	LesionSquamousCellCarcinoma LesionType = "squamous_cell_carcinoma"
	LesionMelanoma              LesionType = "melanoma"
	LesionMerkelCellCarcinoma   LesionType = "merkel_cell_carcinoma"
)

// FeatureVector holds the two scalar lesion features extracted from the
// source raster. Both values are normalized to [0,1].
type FeatureVector struct {
	Asymmetry      float64 `json:"asymmetry"`
	ColorVariation float64 `json:"color_variation"`
}

// AnalysisResult is the complete output of one skin analysis.
//
// The pipeline fills only the deterministic fields (SkinRatio through
// Features): two runs over byte-identical input produce identical values
// there. The envelope fields (ID, ImageURL, Timestamp, ProcessingTimeSec)
// are stamped by the service layer per request.
type AnalysisResult struct {
	ID                string    `json:"id,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec,omitempty"`

	SkinRatio         float64    `json:"skin_ratio"`
	CancerProbability float64    `json:"cancer_probability"`
	CancerDetected    bool       `json:"cancer_detected"`
	RiskTier          RiskTier   `json:"risk_tier"`
	LesionType        LesionType `json:"lesion_type"`
	Prevalence        string     `json:"prevalence"`
	Advice            string     `json:"advice"`

	Features FeatureVector `json:"features"`

	// Errors carries invariant-validation messages, never pipeline
	// failures; those are returned as errors, not results.
	Errors []string `json:"errors,omitempty"`
}

// OverlayResult is an optional annotated rendering of the analyzed image:
// skin pixels tinted in the risk-tier color, encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}
