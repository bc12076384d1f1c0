package analyzer

import (
	"go-skin-analyzer/pkg/models"
)

// Probability boundaries of the lesion table. Upper bounds are inclusive;
// rows are evaluated in ascending order and the first match wins. These are
// fixed heuristic constants carried over from the original calibration, kept
// in one place so they can be revisited.
const (
	// DefaultDetectionThreshold is the probability at or above which the
	// detection flag is raised. It coincides with the upper bound of the
	// none-detected row.
	DefaultDetectionThreshold = 0.3

	tierNoneUpper     = 0.3
	tierBasalUpper    = 0.5
	tierSquamousUpper = 0.7
	tierMelanomaUpper = 0.9
)

// adviceDisclaimer is appended to every advisory text, verbatim.
const adviceDisclaimer = "Note: this automated analysis must be reviewed by a qualified professional."

type lesionRow struct {
	upper      float64
	lesion     models.LesionType
	tier       models.RiskTier
	prevalence string
	advice     string
}

// lesionTable maps probability ranges to lesion type, tier, prevalence and
// advisory text. The last row has no upper bound.
var lesionTable = []lesionRow{
	{
		upper:      tierNoneUpper,
		lesion:     models.LesionNoneDetected,
		tier:       models.RiskLow,
		prevalence: "N/A",
		advice:     "No signs of malignancy. Continue with annual skin checks.",
	},
	{
		upper:      tierBasalUpper,
		lesion:     models.LesionBasalCellCarcinoma,
		tier:       models.RiskLow,
		prevalence: "~80% of skin cancers",
		advice:     "Basal Cell Carcinoma detected. Common but less severe. Consult a dermatologist for removal options.",
	},
	{
		upper:      tierSquamousUpper,
		lesion:     models.LesionSquamousCellCarcinoma,
		tier:       models.RiskModerate,
		prevalence: "~16% of skin cancers",
		advice:     "Squamous Cell Carcinoma detected. Moderate risk. See a dermatologist soon for a possible biopsy.",
	},
	{
		upper:      tierMelanomaUpper,
		lesion:     models.LesionMelanoma,
		tier:       models.RiskHigh,
		prevalence: "~4% of skin cancers",
		advice:     "Melanoma detected. High risk. Urgently consult an oncologist within 48 hours.",
	},
	{
		upper:      1.0,
		lesion:     models.LesionMerkelCellCarcinoma,
		tier:       models.RiskHigh,
		prevalence: "<1% of skin cancers",
		advice:     "Merkel Cell Carcinoma detected. Rare and aggressive. Seek immediate medical attention.",
	},
}

// Classification is the classifier output: a bounded probability plus the
// table row it landed in.
type Classification struct {
	Probability float64
	Detected    bool
	Tier        models.RiskTier
	Lesion      models.LesionType
	Prevalence  string
	Advice      string
}

type riskClassifier struct {
	detectionThreshold float64
}

// NewClassifier builds a classifier with the given detection threshold.
func NewClassifier(detectionThreshold float64) Classifier {
	return &riskClassifier{detectionThreshold: detectionThreshold}
}

// Classify maps the feature vector to the bounded probability and the
// lesion table row.
//
//	probability = clamp((asymmetry + colorVariation) / 2, 0, 1)
//	detected    = probability >= detectionThreshold
//
// At probability exactly equal to the threshold the flag is raised while
// the table still yields the none-detected row; both follow their own rule.
func (c *riskClassifier) Classify(f models.FeatureVector) Classification {
	p := clamp01((f.Asymmetry + f.ColorVariation) / 2)

	row := lesionTable[len(lesionTable)-1]
	for _, r := range lesionTable[:len(lesionTable)-1] {
		if p <= r.upper {
			row = r
			break
		}
	}

	return Classification{
		Probability: p,
		Detected:    p >= c.detectionThreshold,
		Tier:        row.tier,
		Lesion:      row.lesion,
		Prevalence:  row.prevalence,
		Advice:      row.advice + "\n\n" + adviceDisclaimer,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
