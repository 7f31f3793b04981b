// Package tilt turns raw device-orientation samples into smoothed tilt
// scalars that the toys read every frame.
//
// A single Adapter owns the smoothed state. It is the only writer; any
// number of readers call State and always observe a complete X/Y pair.
// When no orientation source is available the adapter simply stays at rest.
package tilt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultAlpha is the smoothing factor of the exponential moving average.
const DefaultAlpha = 0.15

// DefaultSampleRate is how often the adapter polls its source, in Hz.
const DefaultSampleRate = 60.0

// ErrSourceUnavailable is returned by a Source that cannot be opened.
var ErrSourceUnavailable = errors.New("tilt: source unavailable")

// State is one immutable snapshot of the smoothed tilt.
type State struct {
	X, Y         float64 // Gravity projection, each in [-1, 1]
	ReduceMotion bool    // Consumers render their static rest values when set
}

// Config holds the adapter tuning.
type Config struct {
	Alpha      float64 // Smoothing factor in (0, 1]
	SampleRate float64 // Source polling rate in Hz
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Alpha:      DefaultAlpha,
		SampleRate: DefaultSampleRate,
	}
}

// Source produces raw orientation samples.
type Source interface {
	// Open prepares the source. An error means tilt stays at rest.
	Open(ctx context.Context) error
	// Read returns the most recent raw sample; ok is false when none is
	// available yet.
	Read() (x, y float64, ok bool)
	Close() error
}

func discardLogger(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
