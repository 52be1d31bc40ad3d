// Package metrics provides named scalar accumulators over the sample
// stream, reported alongside a saved run.
package metrics

import (
	"math"

	"github.com/san-kum/ecgsim/internal/analysis"
	"github.com/san-kum/ecgsim/internal/ecg"
)

// BeatCount counts detected R peaks.
type BeatCount struct {
	det   *analysis.PeakDetector
	beats int
}

func NewBeatCount() *BeatCount {
	return &BeatCount{det: analysis.NewPeakDetector()}
}

func (b *BeatCount) Name() string { return "beats" }

func (b *BeatCount) Observe(s ecg.Sample, t float64) {
	if _, beat := b.det.Process(s.Value, t); beat {
		b.beats++
	}
}

func (b *BeatCount) Value() float64 { return float64(b.beats) }

func (b *BeatCount) Reset() {
	b.det.Reset()
	b.beats = 0
}

// MeasuredHeartRate reports the mean BPM over all detected beats.
type MeasuredHeartRate struct {
	det       *analysis.PeakDetector
	beats     int
	firstPeak float64
	lastPeak  float64
}

func NewMeasuredHeartRate() *MeasuredHeartRate {
	return &MeasuredHeartRate{det: analysis.NewPeakDetector()}
}

func (m *MeasuredHeartRate) Name() string { return "measured_bpm" }

func (m *MeasuredHeartRate) Observe(s ecg.Sample, t float64) {
	if _, beat := m.det.Process(s.Value, t); beat {
		if m.beats == 0 {
			m.firstPeak = t
		}
		m.lastPeak = t
		m.beats++
	}
}

func (m *MeasuredHeartRate) Value() float64 {
	if m.beats < 2 || m.lastPeak <= m.firstPeak {
		return 0
	}
	return float64(m.beats-1) / (m.lastPeak - m.firstPeak) * 60.0
}

func (m *MeasuredHeartRate) Reset() {
	m.det.Reset()
	m.beats = 0
	m.firstPeak = 0
	m.lastPeak = 0
}

// PeakAmplitude tracks the largest absolute excursion in millivolts.
type PeakAmplitude struct {
	peak float64
}

func NewPeakAmplitude() *PeakAmplitude { return &PeakAmplitude{} }

func (p *PeakAmplitude) Name() string { return "peak_mv" }

func (p *PeakAmplitude) Observe(s ecg.Sample, t float64) {
	if a := math.Abs(s.Value); a > p.peak {
		p.peak = a
	}
}

func (p *PeakAmplitude) Value() float64 { return p.peak }

func (p *PeakAmplitude) Reset() { p.peak = 0 }
