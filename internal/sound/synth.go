package sound

import (
	"fmt"
	"math"
	"sync"
)

// DefaultSampleRate is the synthesis rate in Hz.
const DefaultSampleRate = 44100

// AttackSamples is the length of the linear fade-in that removes the click
// at the start of every effect.
const AttackSamples = 32

// Synthesize renders a recipe into mono samples in [-1, 1].
// The result depends only on its arguments.
func Synthesize(r Recipe, sampleRate int) []float64 {
	n := int(math.Round(r.Duration.Seconds() * float64(sampleRate)))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	rate := float64(sampleRate)

	for i := range out {
		t := float64(i) / rate
		var v float64
		for _, p := range r.Partials {
			v += p.Amp * math.Sin(2*math.Pi*p.Freq*t) * math.Exp(-p.Decay*t)
		}
		if i < AttackSamples {
			v *= float64(i) / AttackSamples
		}
		v *= r.Gain
		out[i] = math.Max(-1, math.Min(1, v))
	}
	return out
}

// Synth is the process-scoped buffer cache. Buffers are generated on first
// request and never evicted; the effect set is small and fixed.
type Synth struct {
	rate  int
	mu    sync.RWMutex
	cache map[Effect]Buffer
}

// NewSynth creates an empty cache. A non-positive rate selects
// DefaultSampleRate.
func NewSynth(sampleRate int) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		rate:  sampleRate,
		cache: make(map[Effect]Buffer, len(allEffects)),
	}
}

// SampleRate returns the synthesis rate.
func (s *Synth) SampleRate() int {
	return s.rate
}

// Buffer returns the cached buffer for e, synthesizing it on first use.
func (s *Synth) Buffer(e Effect) (Buffer, error) {
	s.mu.RLock()
	buf, ok := s.cache[e]
	s.mu.RUnlock()
	if ok {
		return buf, nil
	}

	r, ok := recipes[e]
	if !ok {
		return Buffer{}, fmt.Errorf("%w: %q", ErrUnknownEffect, string(e))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have filled it while we waited.
	if buf, ok := s.cache[e]; ok {
		return buf, nil
	}
	buf = Buffer{effect: e, rate: s.rate, samples: Synthesize(r, s.rate)}
	s.cache[e] = buf
	return buf, nil
}

// Preload synthesizes the given effects, or all of them when none are given.
func (s *Synth) Preload(effects ...Effect) error {
	if len(effects) == 0 {
		effects = allEffects
	}
	for _, e := range effects {
		if _, err := s.Buffer(e); err != nil {
			return err
		}
	}
	return nil
}

// Cached returns how many buffers have been synthesized.
func (s *Synth) Cached() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
