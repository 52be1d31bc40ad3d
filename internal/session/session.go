// Package session drives the ECG generator from recurring real-time frame
// callbacks and owns the run lifecycle: reset, tick, observers, metrics,
// clean cancellation.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/san-kum/ecgsim/internal/ecg"
)

// Session wires a generator to its frame clock. Tick is the single writer
// of generator state; renderers read snapshots only, so no locking is
// needed.
type Session struct {
	gen       *ecg.Generator
	seed      int64
	observers []Observer
	metrics   []Metric
	lastFrame time.Time
}

// New creates a session for the given params, seeding the generator's
// random source so the run can be replayed.
func New(p ecg.Params, seed int64) (*Session, error) {
	gen, err := ecg.NewGenerator(p, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return &Session{gen: gen, seed: seed}, nil
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

// Generator exposes the underlying engine for read-only inspection.
func (s *Session) Generator() *ecg.Generator { return s.gen }

// Seed returns the random seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// Reset rewinds the generator, clears metrics and forgets the previous
// frame timestamp, so the next tick is treated as the first.
func (s *Session) Reset() {
	s.gen.Reset()
	s.lastFrame = time.Time{}
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick advances the session to the given wall-clock instant. The first
// call after New or Reset establishes the frame baseline and emits
// nothing, avoiding a spurious burst. Returns the number of samples
// emitted.
func (s *Session) Tick(now time.Time) int {
	var elapsed float64
	if !s.lastFrame.IsZero() {
		elapsed = now.Sub(s.lastFrame).Seconds()
	}
	s.lastFrame = now

	n := s.gen.Tick(elapsed)
	if n == 0 {
		return 0
	}

	fresh := s.gen.Buffer().Tail(n)
	for _, m := range s.metrics {
		for _, sm := range fresh {
			m.Observe(sm, sm.Time)
		}
	}
	for _, o := range s.observers {
		o.OnSamples(fresh, s.gen.Time())
	}
	return n
}

// Touch moves the frame baseline to now without generating. Used while
// paused so resuming does not replay the pause as elapsed time.
func (s *Session) Touch(now time.Time) { s.lastFrame = now }

// Snapshot returns the current rolling window in chronological order.
func (s *Session) Snapshot() []ecg.Sample { return s.gen.Buffer().Snapshot() }

// Results collects the current metric values by name.
func (s *Session) Results() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Run drives the session with a synthetic frame clock until simSeconds of
// simulated time have elapsed, honoring ctx cancellation. Each frame
// advances the synthetic wall clock by frameSeconds; the generator still
// decides how many samples each frame owes, exactly as under a real
// clock.
func (s *Session) Run(ctx context.Context, simSeconds, frameSeconds float64) error {
	if frameSeconds <= 0 {
		frameSeconds = 1.0 / 60.0
	}
	base := time.Now()
	step := time.Duration(frameSeconds * float64(time.Second))

	for frame := 0; s.gen.Time() < simSeconds; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Tick(base.Add(time.Duration(frame) * step))
	}
	return nil
}
