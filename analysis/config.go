package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/analysis/hpss"
	"github.com/cwbudde/algo-analysis/analysis/onset"
	"github.com/cwbudde/algo-analysis/analysis/pitch"
	"github.com/cwbudde/algo-analysis/dsp/core"
	"github.com/cwbudde/algo-analysis/dsp/window"
	frequencystats "github.com/cwbudde/algo-analysis/stats/frequency"
)

// Config holds every analysis parameter.
type Config struct {
	FFTSize int
	HopSize int
	Window  window.Type

	NumMels        int
	RolloffPercent float64
	Contrast       frequencystats.ContrastConfig
	CENSSmoothing  int

	Beat  onset.BeatConfig
	HPSS  hpss.Config
	Pitch pitch.Config
}

// DefaultConfig returns the librosa-compatible defaults.
func DefaultConfig() Config {
	base := core.DefaultAnalysisConfig()
	return Config{
		FFTSize:        base.FFTSize,
		HopSize:        base.HopSize,
		Window:         window.TypeHann,
		NumMels:        128,
		RolloffPercent: 0.85,
		Contrast:       frequencystats.DefaultContrastConfig(),
		CENSSmoothing:  41,
		Beat:           onset.DefaultBeatConfig(),
		HPSS:           hpss.DefaultConfig(),
		Pitch:          pitch.DefaultConfig(),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.FFTSize < 2:
		return fmt.Errorf("analysis fft size must be >= 2: %d", c.FFTSize)
	case c.HopSize <= 0:
		return fmt.Errorf("analysis hop size must be > 0: %d", c.HopSize)
	case c.NumMels <= 0:
		return fmt.Errorf("analysis mel band count must be > 0: %d", c.NumMels)
	case c.RolloffPercent <= 0 || c.RolloffPercent > 1:
		return fmt.Errorf("analysis rolloff percent must be in (0, 1]: %v", c.RolloffPercent)
	case c.CENSSmoothing < 1:
		return fmt.Errorf("analysis cens smoothing must be >= 1: %d", c.CENSSmoothing)
	}
	return c.HPSS.Validate()
}

// Option mutates a Config.
type Option func(*Config)

// WithFFTSize sets the frame length.
func WithFFTSize(n int) Option {
	return func(c *Config) { c.FFTSize = n }
}

// WithHopSize sets the hop between frames.
func WithHopSize(n int) Option {
	return func(c *Config) { c.HopSize = n }
}

// WithMels sets the number of mel bands.
func WithMels(n int) Option {
	return func(c *Config) { c.NumMels = n }
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
