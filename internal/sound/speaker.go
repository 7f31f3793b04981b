package sound

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// DefaultBufferDuration is the speaker buffer length. Short enough that a
// click lands within a frame of its trigger.
const DefaultBufferDuration = 20 * time.Millisecond

var errSpeakerNotReady = errors.New("sound: speaker not initialized")

// SpeakerEngine plays buffers on the default audio device. All plays feed
// one mixer, so overlapping effects layer.
type SpeakerEngine struct {
	bufferDuration time.Duration

	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	active atomic.Int32
}

// NewSpeakerEngine creates an engine; nothing is opened until Init.
func NewSpeakerEngine(bufferDuration time.Duration) *SpeakerEngine {
	if bufferDuration <= 0 {
		bufferDuration = DefaultBufferDuration
	}
	return &SpeakerEngine{bufferDuration: bufferDuration}
}

// Init opens the audio device and starts the mixer.
func (e *SpeakerEngine) Init(sampleRate int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(e.bufferDuration)); err != nil {
		return fmt.Errorf("sound: init speaker: %w", err)
	}
	e.mixer = &beep.Mixer{}
	speaker.Play(e.mixer)
	e.ready = true
	return nil
}

// Play adds buf to the mixer at the given volume.
func (e *SpeakerEngine) Play(buf Buffer, volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return errSpeakerNotReady
	}
	e.active.Add(1)
	s := beep.Seq(withVolume(buf.Streamer(), volume), beep.Callback(func() {
		e.active.Add(-1)
	}))

	speaker.Lock()
	e.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Active returns the number of effects still sounding.
func (e *SpeakerEngine) Active() int {
	return int(e.active.Load())
}

// Close silences the mixer and releases the device.
func (e *SpeakerEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return nil
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	e.active.Store(0)
	e.ready = false
	return nil
}

// withVolume scales s linearly; log2(0) is -Inf, so zero volume is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
