package wavetable

import "fmt"

// Config controls audio-to-wavetable extraction and serialization.
type Config struct {
	// NumTables is the number of tables in an extracted stack.
	NumTables int
	// TableSize is the number of samples per table. It is independent of
	// FFTSize: spectra are truncated or zero-padded to TableSize/2 bins.
	TableSize int
	// FFTSize is the STFT frame length used to analyse source audio.
	FFTSize int
	// HopSize is the STFT hop. Zero selects FFTSize/4.
	HopSize int
	// SampleRate is written to the WAV header by Save.
	SampleRate int
	// BitDepth is the PCM sample size used by Save (16 or 24).
	BitDepth int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 64 tables of 2048 samples analysed with a 2048-point
// STFT and saved as 16-bit audio at 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		NumTables:  64,
		TableSize:  2048,
		FFTSize:    2048,
		SampleRate: 44100,
		BitDepth:   16,
	}
}

// WithNumTables sets the stack length.
func WithNumTables(n int) Option { return func(c *Config) { c.NumTables = n } }

// WithTableSize sets the samples per table.
func WithTableSize(n int) Option { return func(c *Config) { c.TableSize = n } }

// WithFFTSize sets the analysis frame length.
func WithFFTSize(n int) Option { return func(c *Config) { c.FFTSize = n } }

// WithHopSize sets the analysis hop.
func WithHopSize(n int) Option { return func(c *Config) { c.HopSize = n } }

// WithSampleRate sets the output sample rate.
func WithSampleRate(sr int) Option { return func(c *Config) { c.SampleRate = sr } }

// WithBitDepth sets the output PCM bit depth.
func WithBitDepth(bits int) Option { return func(c *Config) { c.BitDepth = bits } }

// NewConfig applies opts to DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg, cfg.Validate()
}

// Hop returns the effective STFT hop.
func (c Config) Hop() int {
	if c.HopSize > 0 {
		return c.HopSize
	}
	return max(c.FFTSize/4, 1)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.NumTables <= 0:
		return fmt.Errorf("num tables must be > 0: %d", c.NumTables)
	case c.TableSize <= 0:
		return fmt.Errorf("table size must be > 0: %d", c.TableSize)
	case c.FFTSize <= 0:
		return fmt.Errorf("fft size must be > 0: %d", c.FFTSize)
	case c.HopSize < 0:
		return fmt.Errorf("hop size must be >= 0: %d", c.HopSize)
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate must be > 0: %d", c.SampleRate)
	case c.BitDepth != 16 && c.BitDepth != 24:
		return fmt.Errorf("bit depth must be 16 or 24: %d", c.BitDepth)
	}
	return nil
}
