package wavetable

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/audio"
	"github.com/cwbudde/algo-analysis/dsp/signal"
)

// SavePeak is the peak amplitude of a saved stack.
const SavePeak = 0.9

// Render flattens the stack and scales it to SavePeak. Silent stacks stay
// silent.
func Render(s Stack) ([]float64, error) {
	flat := s.Flatten()
	if len(flat) == 0 {
		return nil, fmt.Errorf("wavetable: empty stack")
	}

	if err := signal.NormalizeInPlace(flat, SavePeak); err != nil {
		return nil, err
	}
	return flat, nil
}

// Save writes the stack as a mono PCM WAV file using cfg.SampleRate and
// cfg.BitDepth. The file appears only once fully written.
func Save(path string, s Stack, cfg Config) error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", cfg.SampleRate)
	}
	if cfg.BitDepth != 16 && cfg.BitDepth != 24 {
		return fmt.Errorf("bit depth must be 16 or 24: %d", cfg.BitDepth)
	}

	flat, err := Render(s)
	if err != nil {
		return err
	}

	if err := audio.WriteWAV(path, audio.Buffer{Samples: flat, SampleRate: cfg.SampleRate}, cfg.BitDepth); err != nil {
		return fmt.Errorf("save wavetable: %w", err)
	}
	return nil
}
