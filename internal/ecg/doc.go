// Package ecg implements the synthetic electrocardiogram signal engine.
//
// The engine combines three ingredients per sample: a slow sinusoidal
// baseline wander, uniform measurement noise, and a parametric heartbeat
// template ([BeatTemplate]) built from Gaussian Q/R/S/T deflections and
// normalized to unit peak. Samples land in a fixed-capacity rolling
// window ([SampleBuffer]) that a renderer reads as a snapshot.
//
// [Generator.Tick] is the core loop. It is driven by wall-clock frame
// callbacks of arbitrary length but advances simulated time in fixed
// increments of one sample period, so the sample rate stays locked to the
// configured value regardless of the caller's frame rate. Beats are
// scheduled one ahead with a small randomized jitter on both timing and
// amplitude; randomness comes from an injected rand source so a run can
// be replayed from its seed.
//
// The model is a display toy, not clinical: shapes and constants were
// picked to look right on a monitor strip.
package ecg
