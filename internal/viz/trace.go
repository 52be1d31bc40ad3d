package viz

import "github.com/san-kum/ecgsim/internal/ecg"

// DrawTrace renders a sample window onto the canvas through the display
// mapping, newest sample at the right edge. The display geometry is
// overridden with the canvas sub-pixel extent so the caller's configured
// window length and gain apply at terminal resolution.
func DrawTrace(c *Canvas, samples []ecg.Sample, d ecg.Display) {
	if len(samples) == 0 {
		return
	}

	d.Width = float64(c.PixelWidth())
	d.Height = float64(c.PixelHeight())
	newest := samples[len(samples)-1].Time

	prevSet := false
	var prevX, prevY int
	for _, s := range samples {
		x := int(d.X(s.Time, newest))
		y := int(d.Y(s.Value))
		if x < 0 {
			prevSet = false
			continue // older than the visible window
		}
		if x >= c.PixelWidth() {
			x = c.PixelWidth() - 1
		}
		if prevSet {
			c.Line(prevX, prevY, x, y)
		} else {
			c.Set(x, y)
		}
		prevX, prevY = x, y
		prevSet = true
	}
}

// DrawBaseline draws the zero-millivolt line across the canvas.
func DrawBaseline(c *Canvas, d ecg.Display) {
	d.Height = float64(c.PixelHeight())
	y := int(d.Center())
	for x := 0; x < c.PixelWidth(); x += 3 {
		c.Set(x, y)
	}
}
