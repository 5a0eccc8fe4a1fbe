package core

// AnalysisConfig defines the short-time analysis settings shared by the
// spectral, temporal and wavetable components.
type AnalysisConfig struct {
	SampleRate int
	FFTSize    int
	HopSize    int
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the offline analysis defaults: 22.05 kHz,
// 2048-point frames and a quarter-frame hop.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate: 22050,
		FFTSize:    2048,
		HopSize:    512,
	}
}

// WithSampleRate sets the analysis sample rate.
func WithSampleRate(sampleRate int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the frame length. The hop follows at FFTSize/4 unless
// WithHopSize is applied afterwards.
func WithFFTSize(fftSize int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if fftSize > 0 {
			cfg.FFTSize = fftSize
			cfg.HopSize = max(fftSize/4, 1)
		}
	}
}

// WithHopSize sets the hop between successive frames.
func WithHopSize(hopSize int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BinFrequency returns the centre frequency in Hz of FFT bin k.
func (c AnalysisConfig) BinFrequency(k int) float64 {
	if c.FFTSize <= 0 {
		return 0
	}
	return float64(k) * float64(c.SampleRate) / float64(c.FFTSize)
}

// FrameSeconds converts a frame index to seconds using the hop size.
func (c AnalysisConfig) FrameSeconds(frame int) float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(frame*c.HopSize) / float64(c.SampleRate)
}
