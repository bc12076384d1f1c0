package validation

import (
	"fmt"
	"math"

	"go-skin-analyzer/pkg/models"
)

// Thresholds carries the configurable values the invariants depend on.
type Thresholds struct {
	DetectionThreshold float64
}

// DefaultThresholds returns the canonical detection cutoff.
func DefaultThresholds() Thresholds {
	return Thresholds{DetectionThreshold: 0.3}
}

// Issue describes one violated result invariant.
type Issue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	ActualValue float64 `json:"actual_value,omitempty"`
}

// ResultValidator checks an AnalysisResult against the output contract:
// every numeric field is a finite value in [0,1], the detection flag agrees
// with the threshold, and the tier matches the lesion type. Downstream
// consumers (persistence, reporting) rely on these guarantees and never
// see NaN, Infinity, or out-of-range values.
type ResultValidator struct {
	thresholds Thresholds
}

// NewResultValidator creates a validator with the given thresholds.
func NewResultValidator(thresholds Thresholds) *ResultValidator {
	return &ResultValidator{thresholds: thresholds}
}

// tierByLesion is the fixed lesion→tier pairing of the classification table.
var tierByLesion = map[models.LesionType]models.RiskTier{
	models.LesionNoneDetected:          models.RiskLow,
	models.LesionBasalCellCarcinoma:    models.RiskLow,
	models.LesionSquamousCellCarcinoma: models.RiskModerate,
	models.LesionMelanoma:              models.RiskHigh,
	models.LesionMerkelCellCarcinoma:   models.RiskHigh,
}

// Check returns every violated invariant; an empty slice means the result
// satisfies the output contract.
func (v *ResultValidator) Check(result models.AnalysisResult) []Issue {
	var issues []Issue

	issues = appendRangeIssue(issues, "skin_ratio", result.SkinRatio)
	issues = appendRangeIssue(issues, "cancer_probability", result.CancerProbability)
	issues = appendRangeIssue(issues, "asymmetry", result.Features.Asymmetry)
	issues = appendRangeIssue(issues, "color_variation", result.Features.ColorVariation)

	wantDetected := result.CancerProbability >= v.thresholds.DetectionThreshold
	if result.CancerDetected != wantDetected {
		issues = append(issues, Issue{
			Type: "detection_flag",
			Message: fmt.Sprintf("cancer_detected=%v disagrees with probability %.4f at threshold %.2f",
				result.CancerDetected, result.CancerProbability, v.thresholds.DetectionThreshold),
			ActualValue: result.CancerProbability,
		})
	}

	if tier, ok := tierByLesion[result.LesionType]; !ok {
		issues = append(issues, Issue{
			Type:    "lesion_type",
			Message: fmt.Sprintf("unknown lesion type %q", result.LesionType),
		})
	} else if tier != result.RiskTier {
		issues = append(issues, Issue{
			Type:    "risk_tier",
			Message: fmt.Sprintf("risk tier %q does not match lesion type %q", result.RiskTier, result.LesionType),
		})
	}

	return issues
}

// Messages flattens issues into the plain strings carried on the result.
func (v *ResultValidator) Messages(issues []Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, issue.Message)
	}
	return msgs
}

func appendRangeIssue(issues []Issue, field string, value float64) []Issue {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return append(issues, Issue{
			Type:    "non_finite",
			Message: fmt.Sprintf("%s is not a finite number", field),
		})
	}
	if value < 0 || value > 1 {
		return append(issues, Issue{
			Type:        "out_of_range",
			Message:     fmt.Sprintf("%s=%.6f outside [0,1]", field, value),
			ActualValue: value,
		})
	}
	return issues
}
