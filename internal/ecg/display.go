package ecg

// The display spans four millivolts top to bottom at unit gain, the R peak
// sitting a quarter height above center.
const millivoltSpan = 4.0

// PixelsPerMillivolt returns the vertical display scale for a display of
// the given pixel height.
func PixelsPerMillivolt(height float64) float64 { return height / millivoltSpan }

// Display maps generator output (millivolts, seconds) onto pixel
// coordinates. It is stateless; all methods are pure.
type Display struct {
	Width          float64
	Height         float64
	DisplaySeconds float64
	Gain           float64
}

// Center returns the vertical pixel position of zero millivolts.
func (d Display) Center() float64 { return d.Height / 2 }

// Y maps an amplitude to a vertical pixel position. Positive amplitudes
// deflect upward (smaller y), scaled by the gain.
func (d Display) Y(amplitude float64) float64 {
	return d.Center() - amplitude*PixelsPerMillivolt(d.Height)*d.Gain
}

// X maps a sample timestamp to a horizontal pixel position, placing the
// newest timestamp at the right edge and the start of the visible window
// at the left.
func (d Display) X(timestamp, newest float64) float64 {
	if d.DisplaySeconds <= 0 {
		return 0
	}
	age := newest - timestamp
	return d.Width - age/d.DisplaySeconds*d.Width
}
