// Package pitch tracks sinusoidal peaks in a magnitude spectrogram using
// parabolic interpolation.
package pitch

import (
	"fmt"
	"math"
)

const tiny = 1e-300

// Config bounds the search range and the peak threshold.
type Config struct {
	FMin float64
	FMax float64
	// Threshold is relative to the largest magnitude in each frame.
	Threshold float64
}

// DefaultConfig searches 150 Hz to 4 kHz with a threshold of 0.1.
func DefaultConfig() Config {
	return Config{FMin: 150, FMax: 4000, Threshold: 0.1}
}

// Track finds local spectral maxima above the threshold in a frames x bins
// magnitude spectrogram and refines each with a parabola through its
// neighbours. The returned matrices are bins x frames; entries without a
// peak are zero.
func Track(mag [][]float64, sampleRate, fftSize int, cfg Config) (pitches, mags [][]float64, err error) {
	if sampleRate <= 0 || fftSize <= 0 {
		return nil, nil, fmt.Errorf("pitch sample rate and fft size must be > 0: %d, %d", sampleRate, fftSize)
	}
	if cfg.FMin < 0 || cfg.Threshold < 0 {
		return nil, nil, fmt.Errorf("pitch fmin and threshold must be >= 0: %+v", cfg)
	}
	if len(mag) == 0 {
		return nil, nil, fmt.Errorf("pitch: empty spectrogram")
	}

	bins := fftSize/2 + 1
	if len(mag[0]) != bins {
		return nil, nil, fmt.Errorf("pitch: spectrogram has %d bins, want %d", len(mag[0]), bins)
	}

	fmax := math.Min(cfg.FMax, float64(sampleRate)/2)
	if cfg.FMax <= 0 {
		fmax = float64(sampleRate) / 2
	}
	binHz := float64(sampleRate) / float64(fftSize)

	frames := len(mag)
	pitches = make([][]float64, bins)
	mags = make([][]float64, bins)
	for k := range pitches {
		pitches[k] = make([]float64, frames)
		mags[k] = make([]float64, frames)
	}

	gated := make([]float64, bins)
	for t, s := range mag {
		ref := 0.0
		for _, v := range s {
			ref = math.Max(ref, v)
		}
		ref *= cfg.Threshold
		for k, v := range s {
			gated[k] = 0
			if v > ref {
				gated[k] = v
			}
		}

		for k := 1; k < bins-1; k++ {
			f := float64(k) * binHz
			if f < cfg.FMin || f >= fmax {
				continue
			}
			if !(gated[k] > gated[k-1] && gated[k] >= gated[k+1]) {
				continue
			}

			avg := 0.5 * (s[k+1] - s[k-1])
			curv := 2*s[k] - s[k+1] - s[k-1]
			if math.Abs(curv) < tiny {
				curv++
			}
			shift := avg / curv

			pitches[k][t] = (float64(k) + shift) * binHz
			mags[k][t] = s[k] + 0.5*avg*shift
		}
	}
	return pitches, mags, nil
}

// Dominant returns, for every frame, the pitch of the bin with the largest
// tracked magnitude, or 0 when the frame has no peak.
func Dominant(pitches, mags [][]float64) []float64 {
	if len(mags) == 0 {
		return nil
	}

	out := make([]float64, len(mags[0]))
	for t := range out {
		best := 0
		for k := range mags {
			if mags[k][t] > mags[best][t] {
				best = k
			}
		}
		out[t] = pitches[best][t]
	}
	return out
}
