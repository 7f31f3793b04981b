package sound

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes buf as a 16-bit mono WAV file.
func WriteWAV(w io.WriteSeeker, buf Buffer) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(buf.SampleRate()),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(w, buf.Streamer(), format); err != nil {
		return fmt.Errorf("sound: encode %s: %w", buf.Effect(), err)
	}
	return nil
}
