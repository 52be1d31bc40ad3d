// Package analysis extracts beat timing from a recorded or streaming
// voltage trace: R-peak detection, RR intervals and heart-rate
// statistics.
package analysis

import "math"

const (
	// DefaultThreshold sits between the unit R peak and everything else
	// in the synthetic signal (T wave tops out around 0.25 mV).
	DefaultThreshold = 0.5

	// DefaultRefractory suppresses re-triggering inside one QRS complex.
	// 250 ms corresponds to 240 bpm, far above anything the generator
	// produces.
	DefaultRefractory = 0.25
)

// PeakDetector finds R peaks in a streaming signal by rising threshold
// crossings with a refractory period. Feed it samples in time order.
type PeakDetector struct {
	Threshold  float64 // millivolts
	Refractory float64 // seconds

	lastValue float64
	lastPeak  float64
	primed    bool
	hasPeak   bool
}

// NewPeakDetector returns a detector with the default threshold and
// refractory period.
func NewPeakDetector() *PeakDetector {
	return &PeakDetector{Threshold: DefaultThreshold, Refractory: DefaultRefractory}
}

// Reset forgets all stream state.
func (d *PeakDetector) Reset() {
	d.lastValue = 0
	d.lastPeak = 0
	d.primed = false
	d.hasPeak = false
}

// Process feeds one sample. It reports a beat on each rising crossing of
// the threshold outside the refractory window, along with the
// instantaneous BPM derived from the previous beat (zero for the first).
func (d *PeakDetector) Process(value, t float64) (bpm float64, beat bool) {
	if !d.primed {
		d.primed = true
		d.lastValue = value
		return 0, false
	}

	crossed := d.lastValue < d.Threshold && value >= d.Threshold
	d.lastValue = value
	if !crossed {
		return 0, false
	}
	if d.hasPeak && t-d.lastPeak < d.Refractory {
		return 0, false
	}

	if d.hasPeak {
		if rr := t - d.lastPeak; rr > 0 {
			bpm = 60.0 / rr
		}
	}
	d.lastPeak = t
	d.hasPeak = true
	return bpm, true
}

// Peaks runs a fresh detector over a full trace and returns the R-peak
// times.
func Peaks(values, times []float64) []float64 {
	d := NewPeakDetector()
	var peaks []float64
	for i := range values {
		if _, beat := d.Process(values[i], times[i]); beat {
			peaks = append(peaks, times[i])
		}
	}
	return peaks
}

// Intervals returns the RR intervals between successive peaks.
func Intervals(peaks []float64) []float64 {
	if len(peaks) < 2 {
		return nil
	}
	out := make([]float64, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		out[i-1] = peaks[i] - peaks[i-1]
	}
	return out
}

// Stats summarizes beat timing over a trace.
type Stats struct {
	Beats   int
	MeanRR  float64 // seconds
	MeanBPM float64
	MinBPM  float64
	MaxBPM  float64
}

// Analyze detects peaks in a trace and computes rate statistics. Traces
// with fewer than two beats yield zero-valued rate fields.
func Analyze(values, times []float64) Stats {
	peaks := Peaks(values, times)
	st := Stats{Beats: len(peaks)}

	intervals := Intervals(peaks)
	if len(intervals) == 0 {
		return st
	}

	sum := 0.0
	minBPM, maxBPM := math.Inf(1), math.Inf(-1)
	for _, rr := range intervals {
		sum += rr
		bpm := 60.0 / rr
		minBPM = math.Min(minBPM, bpm)
		maxBPM = math.Max(maxBPM, bpm)
	}

	st.MeanRR = sum / float64(len(intervals))
	st.MeanBPM = 60.0 / st.MeanRR
	st.MinBPM = minBPM
	st.MaxBPM = maxBPM
	return st
}
