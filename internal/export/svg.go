// Package export writes sample windows as standalone SVG strips with a
// clinical-paper background grid.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ecgsim/internal/ecg"
)

const (
	backgroundColor = "#0a0a0a"
	minorGridColor  = "#1d3a1d"
	majorGridColor  = "#2f5a2f"
	traceColor      = "#00ff00"

	// Clinical strip conventions: minor divisions every 40 ms and
	// 0.1 mV, a major line every fifth minor.
	minorSeconds    = 0.04
	minorMillivolts = 0.1
	majorEvery      = 5
)

// TraceSVG renders the sample window as an SVG document: background,
// minor and major grid, then the trace as a single polyline path. The
// newest sample sits at the right edge.
func TraceSVG(samples []ecg.Sample, d ecg.Display) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, d.Width, d.Height, d.Width, d.Height, backgroundColor)

	writeGrid(&b, d)
	writeTrace(&b, samples, d)

	b.WriteString("</svg>\n")
	return b.String()
}

func writeGrid(b *strings.Builder, d ecg.Display) {
	if d.DisplaySeconds <= 0 || d.Height <= 0 {
		return
	}
	stepX := d.Width / d.DisplaySeconds * minorSeconds
	stepY := ecg.PixelsPerMillivolt(d.Height) * minorMillivolts
	if stepX <= 0 || stepY <= 0 {
		return
	}

	var minor, major strings.Builder
	for i := 0; ; i++ {
		x := float64(i) * stepX
		if x > d.Width {
			break
		}
		target := &minor
		if i%majorEvery == 0 {
			target = &major
		}
		fmt.Fprintf(target, "M%.1f 0V%.0f", x, d.Height)
	}
	// Horizontal lines mirror out from the center so the baseline always
	// falls on a major division.
	center := d.Center()
	for i := 0; ; i++ {
		off := float64(i) * stepY
		if off > center && off > d.Height-center {
			break
		}
		target := &minor
		if i%majorEvery == 0 {
			target = &major
		}
		if y := center - off; y >= 0 {
			fmt.Fprintf(target, "M0 %.1fH%.0f", y, d.Width)
		}
		if y := center + off; i > 0 && y <= d.Height {
			fmt.Fprintf(target, "M0 %.1fH%.0f", y, d.Width)
		}
	}

	fmt.Fprintf(b, "<path stroke=\"%s\" stroke-width=\"0.5\" fill=\"none\" d=\"%s\"/>\n", minorGridColor, minor.String())
	fmt.Fprintf(b, "<path stroke=\"%s\" stroke-width=\"1\" fill=\"none\" d=\"%s\"/>\n", majorGridColor, major.String())
}

func writeTrace(b *strings.Builder, samples []ecg.Sample, d ecg.Display) {
	if len(samples) < 2 {
		return
	}
	newest := samples[len(samples)-1].Time

	fmt.Fprintf(b, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", traceColor)
	started := false
	for _, s := range samples {
		x := d.X(s.Time, newest)
		if x < 0 {
			continue
		}
		y := d.Y(s.Value)
		if !started {
			fmt.Fprintf(b, "M%.1f,%.1f", x, y)
			started = true
		} else {
			fmt.Fprintf(b, " L%.1f,%.1f", x, y)
		}
	}
	b.WriteString("\"/>\n")
}
