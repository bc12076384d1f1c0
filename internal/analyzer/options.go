package analyzer

// Options carries every tunable constant of the pipeline. The defaults are
// the canonical calibration; none of the values is derived, so they are
// surfaced here rather than buried in the stages that consume them.
type Options struct {
	// SkinLower and SkinUpper define the closed per-channel skin interval
	// in YCrCb order. A pixel is skin iff all three channels fall inside
	// their interval independently.
	SkinLower [Channels]uint8
	SkinUpper [Channels]uint8

	// KernelRadius is the disk structuring element radius used by the
	// morphological cleanup. Radius 2 spans a 5×5 neighborhood.
	KernelRadius int

	// DetectionThreshold is the probability at or above which the
	// detection flag is raised.
	DetectionThreshold float64

	// Sequential disables the concurrent execution of the segmentation
	// and feature branches. Output is identical either way.
	Sequential bool
}

// DefaultOptions returns the canonical pipeline constants.
func DefaultOptions() Options {
	return Options{
		SkinLower:          [Channels]uint8{0, 133, 77},
		SkinUpper:          [Channels]uint8{255, 173, 127},
		KernelRadius:       2,
		DetectionThreshold: DefaultDetectionThreshold,
	}
}

// WithSkinInterval overrides the per-channel skin bounds.
func (o Options) WithSkinInterval(lower, upper [Channels]uint8) Options {
	o.SkinLower = lower
	o.SkinUpper = upper
	return o
}

// WithDetectionThreshold overrides the detection cutoff.
func (o Options) WithDetectionThreshold(t float64) Options {
	o.DetectionThreshold = t
	return o
}

// WithSequential forces single-threaded branch execution.
func (o Options) WithSequential() Options {
	o.Sequential = true
	return o
}
