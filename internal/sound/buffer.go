package sound

import (
	"time"

	"github.com/gopxl/beep"
)

// Buffer is an immutable block of mono samples for one effect. Copies share
// the underlying array, which is never written after synthesis.
type Buffer struct {
	effect  Effect
	rate    int
	samples []float64
}

// Effect returns the effect the buffer was synthesized for.
func (b Buffer) Effect() Effect {
	return b.effect
}

// SampleRate returns the rate the samples were generated at.
func (b Buffer) SampleRate() int {
	return b.rate
}

// Len returns the number of samples.
func (b Buffer) Len() int {
	return len(b.samples)
}

// At returns sample i.
func (b Buffer) At(i int) float64 {
	return b.samples[i]
}

// Samples returns a copy of the samples.
func (b Buffer) Samples() []float64 {
	out := make([]float64, len(b.samples))
	copy(out, b.samples)
	return out
}

// Duration returns the play length.
func (b Buffer) Duration() time.Duration {
	if b.rate <= 0 {
		return 0
	}
	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.rate)
}

// Streamer returns a fresh beep.Streamer that plays the buffer once on both
// channels.
func (b Buffer) Streamer() beep.Streamer {
	return &bufferStreamer{samples: b.samples}
}

type bufferStreamer struct {
	samples []float64
	pos     int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.samples) {
			break
		}
		v := s.samples[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }
