package session

import "github.com/san-kum/ecgsim/internal/ecg"

// Observer receives the samples freshly emitted by a tick. Observers run
// on the tick goroutine; they must not block.
type Observer interface {
	OnSamples(fresh []ecg.Sample, t float64)
}

// Metric accumulates a named scalar over the sample stream.
type Metric interface {
	Name() string
	Observe(s ecg.Sample, t float64)
	Value() float64
	Reset()
}

// Recorder is an Observer that keeps every sample of a run, for
// persistence and offline analysis.
type Recorder struct {
	Samples []ecg.Sample
}

func (r *Recorder) OnSamples(fresh []ecg.Sample, t float64) {
	r.Samples = append(r.Samples, fresh...)
}

// Values returns the recorded amplitudes.
func (r *Recorder) Values() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Value
	}
	return out
}

// Times returns the recorded timestamps.
func (r *Recorder) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}
