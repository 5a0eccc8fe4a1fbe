package wavetable

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/dsp/spectrum"
	"github.com/cwbudde/algo-analysis/dsp/window"
)

// FromAudio analyses samples with a centred periodic-Hann STFT and returns a
// stack of cfg.NumTables tables sampled evenly across the recording.
func FromAudio(samples []float64, cfg Config) (Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	spec, err := spectrum.STFT(samples, spectrum.STFTConfig{
		FFTSize: cfg.FFTSize,
		HopSize: cfg.Hop(),
		Window:  window.TypeHann,
		Center:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("wavetable stft: %w", err)
	}

	return FromFrames(spec.Magnitude(), cfg.NumTables, cfg.TableSize)
}
