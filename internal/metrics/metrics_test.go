package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ecgsim/internal/ecg"
)

// spikeTrain feeds m a flat signal with unit spikes at the given times.
func spikeTrain(m interface {
	Observe(ecg.Sample, float64)
}, spikes []float64, until float64) {
	isSpike := make(map[int]bool, len(spikes))
	for _, ts := range spikes {
		isSpike[int(ts/0.002)] = true
	}
	for i := 0; float64(i)*0.002 < until; i++ {
		t := float64(i) * 0.002
		v := 0.0
		if isSpike[i] {
			v = 1.0
		}
		m.Observe(ecg.Sample{Value: v, Time: t}, t)
	}
}

func TestBeatCount(t *testing.T) {
	m := NewBeatCount()
	spikeTrain(m, []float64{0.5, 1.5, 2.5, 3.5}, 4.0)

	if m.Value() != 4 {
		t.Errorf("expected 4 beats, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestMeasuredHeartRate(t *testing.T) {
	m := NewMeasuredHeartRate()
	// Beats one second apart: 60 bpm.
	spikeTrain(m, []float64{0.5, 1.5, 2.5, 3.5, 4.5}, 5.0)

	if got := m.Value(); math.Abs(got-60.0) > 0.5 {
		t.Errorf("expected ~60 bpm, got %v", got)
	}
}

func TestMeasuredHeartRateNeedsTwoBeats(t *testing.T) {
	m := NewMeasuredHeartRate()
	spikeTrain(m, []float64{0.5}, 1.0)

	if m.Value() != 0 {
		t.Errorf("expected 0 with a single beat, got %v", m.Value())
	}
}

func TestPeakAmplitude(t *testing.T) {
	m := NewPeakAmplitude()
	for _, v := range []float64{0.1, -0.9, 0.5, 0.3} {
		m.Observe(ecg.Sample{Value: v}, 0)
	}

	if m.Value() != 0.9 {
		t.Errorf("expected 0.9, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}
