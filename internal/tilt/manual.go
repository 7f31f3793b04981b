package tilt

import (
	"context"
	"sync"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// ManualSource is a keyboard-driven source: the host nudges a target tilt
// and the adapter eases toward it.
type ManualSource struct {
	mu   sync.Mutex
	x, y float64
}

// NewManualSource creates a level source.
func NewManualSource() *ManualSource {
	return &ManualSource{}
}

// Open implements Source.
func (m *ManualSource) Open(context.Context) error {
	return nil
}

// Read implements Source. A manual source always has a sample.
func (m *ManualSource) Read() (x, y float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.x, m.y, true
}

// Close implements Source.
func (m *ManualSource) Close() error {
	return nil
}

// Nudge moves the target tilt, clamped to [-1, 1] per axis.
func (m *ManualSource) Nudge(dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.x = core.ClampUnit(m.x + dx)
	m.y = core.ClampUnit(m.y + dy)
}

// Set places the target tilt directly.
func (m *ManualSource) Set(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.x = core.ClampUnit(x)
	m.y = core.ClampUnit(y)
}

// Level returns the target to rest.
func (m *ManualSource) Level() {
	m.Set(0, 0)
}

// Target returns the current target tilt.
func (m *ManualSource) Target() (x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.x, m.y
}
