package discovery

// contiguitySlack is the fixed tolerance for the narrow-phase
// contiguity gate: a window is admitted if (last - first of its sorted
// global indices) <= windowSize + contiguitySlack. It is deliberately a
// build-time constant, not a Params field, since it tunes an internal
// search heuristic rather than a result-shaping knob callers should
// adjust at runtime.
const contiguitySlack = 5

// Params configures FindOverlappingSegments. Values are set via
// NewParams and overridden with the fluent setters, mirroring
// geometry.NewShapeGenerator()'s defaulting-constructor style.
type Params struct {
	MaxLengthM       float64
	TolM             float64
	WindowStep       int
	MinRuns          int
	PrefilterMarginM float64
	DedupOverlapFrac float64
}

// NewParams returns Params populated with reasonable defaults.
func NewParams() Params {
	return Params{
		MaxLengthM:       500,
		TolM:             5,
		WindowStep:       1,
		MinRuns:          2,
		PrefilterMarginM: 5,
		DedupOverlapFrac: 0.8,
	}
}

// WithMaxLengthM sets the target minimum candidate length in meters.
func (p Params) WithMaxLengthM(v float64) Params { p.MaxLengthM = v; return p }

// WithTolM sets the Fréchet acceptance tolerance in meters.
func (p Params) WithTolM(v float64) Params { p.TolM = v; return p }

// WithWindowStep sets the stride between candidate starts on the reference.
func (p Params) WithWindowStep(v int) Params { p.WindowStep = v; return p }

// WithMinRuns sets the minimum number of supporting tracks per segment.
func (p Params) WithMinRuns(v int) Params { p.MinRuns = v; return p }

// WithPrefilterMarginM sets the broad-phase bounding-box expansion in meters.
func (p Params) WithPrefilterMarginM(v float64) Params { p.PrefilterMarginM = v; return p }

// WithDedupOverlapFrac sets the Jaccard-like dedup threshold in [0,1].
func (p Params) WithDedupOverlapFrac(v float64) Params { p.DedupOverlapFrac = v; return p }

// normalize clamps min_runs < 1 up to 1, a recoverable default; other
// invalid values (non-positive window_step, dedup_overlap_frac outside
// [0,1]) are not recoverable and are rejected by validateParams instead.
func (p Params) normalize() Params {
	if p.MinRuns < 1 {
		p.MinRuns = 1
	}
	return p
}
