package ecg

// Sample is one amplitude reading, in millivolts, at a simulated time
// instant in seconds since session start.
type Sample struct {
	Value float64
	Time  float64
}

// SampleBuffer is a fixed-capacity circular buffer of recent samples.
// Once full, Push overwrites the oldest entry, so the visible window
// length stays constant.
type SampleBuffer struct {
	buf   []Sample
	pos   int
	count int
}

// NewSampleBuffer creates a buffer with the given capacity (minimum 1).
func NewSampleBuffer(capacity int) *SampleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleBuffer{buf: make([]Sample, capacity)}
}

// Push appends a sample, evicting the oldest entry when full.
func (b *SampleBuffer) Push(s Sample) {
	b.buf[b.pos] = s
	b.pos = (b.pos + 1) % len(b.buf)
	if b.count < len(b.buf) {
		b.count++
	}
}

// Fill sets every slot to s. Used on session reset so the buffer length
// equals its capacity from the first frame.
func (b *SampleBuffer) Fill(s Sample) {
	for i := range b.buf {
		b.buf[i] = s
	}
	b.pos = 0
	b.count = len(b.buf)
}

// Len returns the number of stored samples.
func (b *SampleBuffer) Len() int { return b.count }

// Cap returns the buffer capacity.
func (b *SampleBuffer) Cap() int { return len(b.buf) }

// Last returns the most recently pushed sample, or false if empty.
func (b *SampleBuffer) Last() (Sample, bool) {
	if b.count == 0 {
		return Sample{}, false
	}
	idx := (b.pos - 1 + len(b.buf)) % len(b.buf)
	return b.buf[idx], true
}

// Snapshot returns all stored samples in chronological order. The result
// is a copy; the caller may hold it across ticks.
func (b *SampleBuffer) Snapshot() []Sample {
	if b.count == 0 {
		return nil
	}
	out := make([]Sample, b.count)
	if b.count < len(b.buf) {
		copy(out, b.buf[:b.count])
	} else {
		n := copy(out, b.buf[b.pos:])
		copy(out[n:], b.buf[:b.pos])
	}
	return out
}

// Tail returns the n most recent samples in chronological order, fewer if
// the buffer holds fewer.
func (b *SampleBuffer) Tail(n int) []Sample {
	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]Sample, n)
	start := (b.pos - n + len(b.buf)) % len(b.buf)
	for i := 0; i < n; i++ {
		out[i] = b.buf[(start+i)%len(b.buf)]
	}
	return out
}
