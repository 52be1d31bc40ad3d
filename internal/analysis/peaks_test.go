package analysis_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecgsim/internal/analysis"
	"github.com/san-kum/ecgsim/internal/ecg"
)

// generateTrace runs the signal engine for simSeconds and returns the
// full trace as value/time slices.
func generateTrace(heartRate, simSeconds float64, seed int64) ([]float64, []float64) {
	p := ecg.Params{HeartRate: heartRate, SamplingRate: 500, DisplaySeconds: simSeconds + 1}
	gen, err := ecg.NewGenerator(p, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())

	for gen.Time() < simSeconds {
		gen.Tick(0.016)
	}

	snap := gen.Buffer().Snapshot()
	values := make([]float64, 0, len(snap))
	times := make([]float64, 0, len(snap))
	for _, s := range snap {
		if s.Time == 0 && s.Value == 0 {
			continue // zero-filled prefix
		}
		values = append(values, s.Value)
		times = append(times, s.Time)
	}
	return values, times
}

var _ = Describe("PeakDetector", func() {
	var d *analysis.PeakDetector

	BeforeEach(func() {
		d = analysis.NewPeakDetector()
	})

	It("reports no beat before the threshold is crossed", func() {
		for i := 0; i < 100; i++ {
			_, beat := d.Process(0.05, float64(i)*0.002)
			Expect(beat).To(BeFalse())
		}
	})

	It("detects a rising crossing as one beat", func() {
		beats := 0
		trace := []float64{0, 0.1, 0.4, 0.9, 1.0, 0.8, 0.3, 0}
		for i, v := range trace {
			if _, beat := d.Process(v, float64(i)*0.002); beat {
				beats++
			}
		}
		Expect(beats).To(Equal(1))
	})

	It("suppresses re-triggering inside the refractory period", func() {
		beats := 0
		// Two spikes 100ms apart, inside the 250ms refractory window.
		for i := 0; i < 200; i++ {
			t := float64(i) * 0.002
			v := 0.0
			if i == 20 || i == 70 {
				v = 1.0
			}
			if _, beat := d.Process(v, t); beat {
				beats++
			}
		}
		Expect(beats).To(Equal(1))
	})

	It("reports instantaneous BPM from the second beat on", func() {
		var bpms []float64
		// Spikes exactly one second apart.
		for i := 0; i < 1500; i++ {
			t := float64(i) * 0.002
			v := 0.0
			if i%500 == 250 {
				v = 1.0
			}
			if bpm, beat := d.Process(v, t); beat && bpm > 0 {
				bpms = append(bpms, bpm)
			}
		}
		Expect(bpms).To(HaveLen(2))
		for _, bpm := range bpms {
			Expect(bpm).To(BeNumerically("~", 60.0, 0.5))
		}
	})

	It("resets cleanly", func() {
		d.Process(1.0, 0.1)
		d.Reset()
		_, beat := d.Process(1.0, 0.2)
		// First sample after reset only primes the detector.
		Expect(beat).To(BeFalse())
	})
})

var _ = Describe("Analyze", func() {
	It("returns zero stats for an empty trace", func() {
		st := analysis.Analyze(nil, nil)
		Expect(st.Beats).To(BeZero())
		Expect(st.MeanBPM).To(BeZero())
	})

	It("recovers the configured heart rate from a generated trace", func() {
		values, times := generateTrace(72, 60, 21)
		st := analysis.Analyze(values, times)

		// 72 bpm for ~60s is about 72 beats.
		Expect(st.Beats).To(BeNumerically(">", 60))
		Expect(st.MeanBPM).To(BeNumerically("~", 72, 72*0.025))
		Expect(st.MeanRR).To(BeNumerically("~", 60.0/72.0, 0.025))
	})

	It("keeps min and max BPM within the jitter band", func() {
		values, times := generateTrace(60, 60, 34)
		st := analysis.Analyze(values, times)

		// Timing jitter is +-2.5% of the interval per beat, so the spread
		// of instantaneous rates stays within roughly twice that.
		Expect(st.MinBPM).To(BeNumerically(">", 60*0.93))
		Expect(st.MaxBPM).To(BeNumerically("<", 60*1.07))
	})

	It("tracks a tachycardic rate", func() {
		values, times := generateTrace(150, 30, 8)
		st := analysis.Analyze(values, times)
		Expect(st.MeanBPM).To(BeNumerically("~", 150, 150*0.03))
	})
})

var _ = Describe("Intervals", func() {
	It("returns nil for fewer than two peaks", func() {
		Expect(analysis.Intervals(nil)).To(BeNil())
		Expect(analysis.Intervals([]float64{1.0})).To(BeNil())
	})

	It("returns successive differences", func() {
		Expect(analysis.Intervals([]float64{1, 2.5, 3})).To(Equal([]float64{1.5, 0.5}))
	})
})
