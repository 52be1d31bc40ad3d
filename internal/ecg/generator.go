package ecg

import (
	"math"
	"math/rand"
)

const (
	// MaxTickCatchUp caps the simulated time one tick may cover. A frame
	// arriving seconds late (tab stall, suspended host) generates at most
	// this much signal; the rest of the backlog is dropped.
	MaxTickCatchUp = 0.25

	baselinePhaseRate = 0.5  // phase advance per simulated second
	baselineAmplitude = 0.08 // 0.1 * 0.8, millivolts
	noiseAmplitude    = 0.01 // uniform noise half-range, millivolts
	beatAmpJitter     = 0.05 // multiplicative jitter span on beat amplitude

	// First beat lands at beatInterval * uniform(firstBeatMin, firstBeatMax)
	// so a fresh trace starts flat instead of mid-complex.
	firstBeatMin = 0.2
	firstBeatMax = 0.8
)

// Generator produces the synthetic voltage trace sample by sample. It is
// driven by Tick with real elapsed time and advances simulated time in
// fixed increments of one sample period, so the emitted sample rate is
// independent of the frame cadence of the caller.
//
// A Generator has exactly one logical writer; it is not safe for
// concurrent use.
type Generator struct {
	params   Params
	template *BeatTemplate
	buffer   *SampleBuffer
	rng      *rand.Rand

	timeSinceStart float64
	pending        float64
	basePhase      float64
	nextBeatTime   float64
	beatInterval   float64
	beatJitter     float64
	beats          int
}

// NewGenerator validates params and returns a reset generator. The rand
// source is injected so callers can replay a run from a seed.
func NewGenerator(p Params, rng *rand.Rand) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		params:   p,
		template: NewBeatTemplate(p.SamplingRate),
		buffer:   NewSampleBuffer(p.BufferCapacity()),
		rng:      rng,
	}
	g.Reset()
	return g, nil
}

// Reset zero-fills the buffer, rewinds the simulated clock, randomizes the
// baseline phase and schedules the first beat.
func (g *Generator) Reset() {
	g.buffer.Fill(Sample{})
	g.timeSinceStart = 0
	g.pending = 0
	g.basePhase = g.rng.Float64() * 2 * math.Pi
	g.beatInterval = g.params.BeatInterval()
	g.beatJitter = g.params.BeatJitter()
	g.nextBeatTime = g.beatInterval * (firstBeatMin + g.rng.Float64()*(firstBeatMax-firstBeatMin))
	g.beats = 0
}

// Tick consumes elapsed real seconds and emits exactly one sample per
// full sample period accumulated, so a late frame emits several samples
// in one call and a short frame's leftover time carries into the next.
// Elapsed time beyond MaxTickCatchUp is dropped. A zero or negative
// elapsed emits nothing and leaves all state untouched. Returns the
// number of samples emitted.
func (g *Generator) Tick(elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	if elapsed > MaxTickCatchUp {
		elapsed = MaxTickCatchUp
	}

	timePerSample := g.params.TimePerSample()
	window := g.template.Duration()
	emitted := 0

	g.pending += elapsed
	for g.pending >= timePerSample {
		g.pending -= timePerSample
		dt := timePerSample
		g.timeSinceStart += dt
		tNow := g.timeSinceStart

		g.basePhase += dt * baselinePhaseRate
		baseline := baselineAmplitude * math.Sin(g.basePhase)
		noise := (g.rng.Float64()*2 - 1) * noiseAmplitude

		beat := 0.0
		if tNow >= g.nextBeatTime && tNow < g.nextBeatTime+window {
			idx := int((tNow - g.nextBeatTime) / timePerSample)
			beat = g.template.At(idx) * (1 + (g.rng.Float64()-0.5)*beatAmpJitter)
		}

		// The window-end check runs every iteration, after the template
		// read, whether or not a beat value was taken above. nextBeatTime
		// only ever increases.
		if tNow >= g.nextBeatTime+window {
			g.nextBeatTime += g.beatInterval + (g.rng.Float64()-0.5)*g.beatJitter
			g.beats++
		}

		g.buffer.Push(Sample{Value: baseline + noise + beat, Time: tNow})
		emitted++
	}

	return emitted
}

// Params returns the generator configuration.
func (g *Generator) Params() Params { return g.params }

// Template returns the shared beat template.
func (g *Generator) Template() *BeatTemplate { return g.template }

// Buffer returns the rolling sample window. The caller must treat it as
// read-only; use Snapshot for a stable copy.
func (g *Generator) Buffer() *SampleBuffer { return g.buffer }

// Time returns simulated seconds since the last reset.
func (g *Generator) Time() float64 { return g.timeSinceStart }

// NextBeatTime returns the scheduled start of the pending beat window.
func (g *Generator) NextBeatTime() float64 { return g.nextBeatTime }

// Beats returns the number of beat windows completed since reset.
func (g *Generator) Beats() int { return g.beats }
