package ecg

import "fmt"

const (
	// MinHeartRate is the floor applied to the configured heart rate so
	// the derived beat interval cannot blow up.
	MinHeartRate = 20.0

	// MinBufferCapacity bounds the rolling window from below even for
	// tiny sampling-rate/window combinations.
	MinBufferCapacity = 64
)

// Params holds the generator configuration.
type Params struct {
	HeartRate      float64 // beats per minute, floored at MinHeartRate
	SamplingRate   float64 // samples per second, must be > 0
	DisplaySeconds float64 // rolling window length, must be > 0
}

// Validate rejects parameter combinations that would produce NaN or Inf
// derived constants. Heart rate is not rejected here; it is clamped.
func (p Params) Validate() error {
	if p.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %f", p.SamplingRate)
	}
	if p.DisplaySeconds <= 0 {
		return fmt.Errorf("display window must be positive, got %f", p.DisplaySeconds)
	}
	return nil
}

// TimePerSample returns the simulated seconds covered by one sample.
func (p Params) TimePerSample() float64 { return 1.0 / p.SamplingRate }

// BeatInterval returns the nominal seconds between beats, with the heart
// rate floored at MinHeartRate.
func (p Params) BeatInterval() float64 {
	hr := p.HeartRate
	if hr < MinHeartRate {
		hr = MinHeartRate
	}
	return 60.0 / hr
}

// BeatJitter returns the timing jitter span, 5% of the beat interval.
func (p Params) BeatJitter() float64 { return 0.05 * p.BeatInterval() }

// BufferCapacity returns the rolling-buffer size for the configured rate
// and window.
func (p Params) BufferCapacity() int {
	n := int(p.SamplingRate * p.DisplaySeconds)
	if n < MinBufferCapacity {
		n = MinBufferCapacity
	}
	return n
}
