package ecg

import (
	"math"
	"testing"
)

func TestTemplateDeterministic(t *testing.T) {
	a := NewBeatTemplate(500)
	b := NewBeatTemplate(500)

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("sample %d differs: %v vs %v", i, a.At(i), b.At(i))
		}
	}
}

func TestTemplateLength(t *testing.T) {
	tests := []struct {
		rate     float64
		expected int
	}{
		{500, 175},
		{250, 88},
		{100, 35},
		{1000, 350},
	}

	for _, tt := range tests {
		tmpl := NewBeatTemplate(tt.rate)
		if tmpl.Len() != tt.expected {
			t.Errorf("rate %.0f: expected %d samples, got %d", tt.rate, tt.expected, tmpl.Len())
		}
	}
}

func TestTemplateNormalized(t *testing.T) {
	tmpl := NewBeatTemplate(500)

	maxAbs := 0.0
	for i := 0; i < tmpl.Len(); i++ {
		v := tmpl.At(i)
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of [-1,1]: %v", i, v)
		}
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	if math.Abs(maxAbs-1.0) > 1e-12 {
		t.Errorf("expected unit peak, got %v", maxAbs)
	}
}

func TestTemplateRPeakDominates(t *testing.T) {
	tmpl := NewBeatTemplate(500)

	// The R deflection centers at 0.10s; the peak sample must sit there.
	peakIdx := 0
	for i := 1; i < tmpl.Len(); i++ {
		if tmpl.At(i) > tmpl.At(peakIdx) {
			peakIdx = i
		}
	}

	peakTime := float64(peakIdx) / float64(tmpl.Len()) * TemplateDuration
	if math.Abs(peakTime-0.10) > 0.01 {
		t.Errorf("R peak at %.3fs, expected near 0.10s", peakTime)
	}
	if tmpl.At(peakIdx) != 1.0 {
		t.Errorf("R peak value %v, expected 1.0", tmpl.At(peakIdx))
	}
}

func TestTemplateDuration(t *testing.T) {
	tmpl := NewBeatTemplate(500)
	// ceil rounds the sample count up, so duration is >= the nominal span.
	if d := tmpl.Duration(); d < TemplateDuration || d > TemplateDuration+1.0/500 {
		t.Errorf("duration %v outside expected range", d)
	}
}

func TestTemplateDegenerate(t *testing.T) {
	tmpl := NewBeatTemplate(0)

	if tmpl.Len() != 0 {
		t.Fatalf("expected empty template, got %d samples", tmpl.Len())
	}
	if v := tmpl.At(0); v != 0 {
		t.Errorf("empty template should read zero, got %v", v)
	}
	if d := tmpl.Duration(); d != 0 {
		t.Errorf("empty template duration should be zero, got %v", d)
	}
}

func TestTemplateIndexClamped(t *testing.T) {
	tmpl := NewBeatTemplate(500)

	if tmpl.At(-1) != tmpl.At(0) {
		t.Error("negative index should clamp to first sample")
	}
	if tmpl.At(tmpl.Len()+10) != tmpl.At(tmpl.Len()-1) {
		t.Error("overflow index should clamp to last sample")
	}
}
