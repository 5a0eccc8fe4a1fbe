package hpss

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-analysis/dsp/spectrum"
)

const tiny = 1e-300

// Config controls the separation.
type Config struct {
	// KernelHarmonic is the median length along time, in frames.
	KernelHarmonic int
	// KernelPercussive is the median length along frequency, in bins.
	KernelPercussive int
	// Power is the soft mask exponent.
	Power float64
	// Margin scales the competing component; values above 1 leave a
	// residual that belongs to neither output.
	Margin float64
}

// DefaultConfig uses 31-point median filters, power 2 masks and no margin.
func DefaultConfig() Config {
	return Config{KernelHarmonic: 31, KernelPercussive: 31, Power: 2, Margin: 1}
}

// Validate checks kernel sizes, power and margin.
func (c Config) Validate() error {
	if c.KernelHarmonic < 1 || c.KernelHarmonic%2 == 0 {
		return fmt.Errorf("hpss harmonic kernel must be odd and >= 1: %d", c.KernelHarmonic)
	}
	if c.KernelPercussive < 1 || c.KernelPercussive%2 == 0 {
		return fmt.Errorf("hpss percussive kernel must be odd and >= 1: %d", c.KernelPercussive)
	}
	if c.Power <= 0 {
		return fmt.Errorf("hpss mask power must be > 0: %v", c.Power)
	}
	if c.Margin < 1 {
		return fmt.Errorf("hpss margin must be >= 1: %v", c.Margin)
	}
	return nil
}

// Masks computes harmonic and percussive soft masks for a frames x bins
// magnitude spectrogram.
func Masks(mag [][]float64, cfg Config) (harmonic, percussive [][]float64, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if len(mag) == 0 || len(mag[0]) == 0 {
		return nil, nil, fmt.Errorf("hpss: empty spectrogram")
	}

	harm := filterTime(mag, cfg.KernelHarmonic)
	perc := filterFreq(mag, cfg.KernelPercussive)
	split := cfg.Margin == 1

	harmonic = make([][]float64, len(mag))
	percussive = make([][]float64, len(mag))
	for t := range mag {
		harmonic[t] = make([]float64, len(mag[t]))
		percussive[t] = make([]float64, len(mag[t]))
		for k := range mag[t] {
			harmonic[t][k] = softMask(harm[t][k], perc[t][k]*cfg.Margin, cfg.Power, split)
			percussive[t][k] = softMask(perc[t][k], harm[t][k]*cfg.Margin, cfg.Power, split)
		}
	}
	return harmonic, percussive, nil
}

// softMask returns x^p / (x^p + ref^p), or 0.5 (split) or 0 when both are
// negligible.
func softMask(x, ref, power float64, split bool) float64 {
	z := math.Max(x, ref)
	if z < tiny {
		if split {
			return 0.5
		}
		return 0
	}
	m := math.Pow(x/z, power)
	r := math.Pow(ref/z, power)
	return m / (m + r)
}

// Decompose applies the masks to a complex spectrogram, keeping the phase.
func Decompose(spec *spectrum.Spectrogram, cfg Config) (harmonic, percussive *spectrum.Spectrogram, err error) {
	if spec == nil || spec.NumFrames() == 0 {
		return nil, nil, fmt.Errorf("hpss: empty spectrogram")
	}

	mh, mp, err := Masks(spec.Magnitude(), cfg)
	if err != nil {
		return nil, nil, err
	}

	harmonic = &spectrum.Spectrogram{FFTSize: spec.FFTSize, HopSize: spec.HopSize, Frames: make([][]complex128, len(spec.Frames))}
	percussive = &spectrum.Spectrogram{FFTSize: spec.FFTSize, HopSize: spec.HopSize, Frames: make([][]complex128, len(spec.Frames))}
	for t, frame := range spec.Frames {
		harmonic.Frames[t] = make([]complex128, len(frame))
		percussive.Frames[t] = make([]complex128, len(frame))
		for k, c := range frame {
			harmonic.Frames[t][k] = c * complex(mh[t][k], 0)
			percussive.Frames[t][k] = c * complex(mp[t][k], 0)
		}
	}
	return harmonic, percussive, nil
}

// Separate splits x into harmonic and percussive signals of the same length.
func Separate(x []float64, stft spectrum.STFTConfig, cfg Config) (harmonic, percussive []float64, err error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("hpss: empty signal")
	}

	spec, err := spectrum.STFT(x, stft)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss: %w", err)
	}

	hs, ps, err := Decompose(spec, cfg)
	if err != nil {
		return nil, nil, err
	}

	if harmonic, err = spectrum.ISTFT(hs, stft, len(x)); err != nil {
		return nil, nil, fmt.Errorf("hpss harmonic: %w", err)
	}
	if percussive, err = spectrum.ISTFT(ps, stft, len(x)); err != nil {
		return nil, nil, fmt.Errorf("hpss percussive: %w", err)
	}
	return harmonic, percussive, nil
}
