package onset

import (
	"fmt"
	"math"
)

// StrengthConfig controls the onset strength envelope.
type StrengthConfig struct {
	// Lag is the frame distance used for the spectral difference.
	Lag int
	// Pad is the number of leading zeros inserted so envelope frames line
	// up with centred analysis frames.
	Pad int
}

// DefaultStrengthConfig aligns the envelope with centred STFT frames of the
// given size and hop.
func DefaultStrengthConfig(fftSize, hopSize int) StrengthConfig {
	return StrengthConfig{Lag: 1, Pad: 1 + fftSize/(2*max(hopSize, 1))}
}

// Strength computes positive spectral flux from a bands x frames log-power
// spectrogram, averaged across bands. The result has one value per frame.
func Strength(logSpec [][]float64, cfg StrengthConfig) ([]float64, error) {
	if cfg.Lag < 1 {
		return nil, fmt.Errorf("onset lag must be >= 1: %d", cfg.Lag)
	}
	if cfg.Pad < 0 {
		return nil, fmt.Errorf("onset pad must be >= 0: %d", cfg.Pad)
	}
	if len(logSpec) == 0 {
		return nil, fmt.Errorf("onset: empty spectrogram")
	}

	frames := len(logSpec[0])
	flux := make([]float64, max(frames-cfg.Lag, 0))
	for _, row := range logSpec {
		for t := range flux {
			flux[t] += math.Max(0, row[t+cfg.Lag]-row[t])
		}
	}
	for t := range flux {
		flux[t] /= float64(len(logSpec))
	}

	env := make([]float64, frames)
	for t := range env {
		if src := t - cfg.Pad; src >= 0 && src < len(flux) {
			env[t] = flux[src]
		}
	}
	return env, nil
}

// Normalize shifts env to a minimum of zero and scales it to a maximum of
// one. A constant envelope becomes all zeros.
func Normalize(env []float64) []float64 {
	out := make([]float64, len(env))
	if len(env) == 0 {
		return out
	}

	lo, hi := env[0], env[0]
	for _, v := range env {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span <= 0 {
		return out
	}
	for i, v := range env {
		out[i] = (v - lo) / span
	}
	return out
}
