package ecg

import "math"

// TemplateDuration is the span of one beat template in seconds.
const TemplateDuration = 0.35

type deflection struct {
	mu    float64 // center, seconds from cycle start
	sigma float64 // width, seconds
	amp   float64 // relative amplitude
}

// Q, R, S and T deflections of a single cardiac cycle. The P wave is
// omitted; at display scale it is lost in the baseline wander.
var deflections = []deflection{
	{mu: 0.06, sigma: 0.008, amp: -0.08},
	{mu: 0.10, sigma: 0.006, amp: 1.00},
	{mu: 0.12, sigma: 0.007, amp: -0.25},
	{mu: 0.22, sigma: 0.030, amp: 0.25},
}

// BeatTemplate holds one cardiac cycle sampled at a fixed rate and
// normalized so the largest absolute value is 1. It is immutable after
// construction and safe to share between readers.
type BeatTemplate struct {
	samples      []float64
	samplingRate float64
}

// NewBeatTemplate builds the template for the given sampling rate. The
// result is a pure function of the rate: same input, identical samples.
func NewBeatTemplate(samplingRate float64) *BeatTemplate {
	n := int(math.Ceil(TemplateDuration * samplingRate))
	if n < 0 {
		n = 0
	}
	samples := make([]float64, n)

	maxAbs := 0.0
	for i := range samples {
		t := float64(i) / float64(n) * TemplateDuration
		v := 0.0
		for _, d := range deflections {
			z := (t - d.mu) / d.sigma
			v += d.amp * math.Exp(-0.5*z*z)
		}
		samples[i] = v
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	// A degenerate template stays all-zero rather than dividing by zero.
	if maxAbs > 0 {
		for i := range samples {
			samples[i] /= maxAbs
		}
	}

	return &BeatTemplate{samples: samples, samplingRate: samplingRate}
}

// Len returns the number of samples in the template.
func (t *BeatTemplate) Len() int { return len(t.samples) }

// Duration returns the template window length in seconds at the rate the
// template was built for.
func (t *BeatTemplate) Duration() float64 {
	if t.samplingRate <= 0 {
		return 0
	}
	return float64(len(t.samples)) / t.samplingRate
}

// At returns the template value at index i. The index is clamped to valid
// bounds so floating-point rounding at the window edges cannot read out of
// range. An empty template reads as zero.
func (t *BeatTemplate) At(i int) float64 {
	if len(t.samples) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(t.samples) {
		i = len(t.samples) - 1
	}
	return t.samples[i]
}
