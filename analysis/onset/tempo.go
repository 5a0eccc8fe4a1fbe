package onset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-analysis/dsp/core"
	"github.com/cwbudde/algo-analysis/dsp/spectrum"
)

// TempoConfig controls Tempo.
type TempoConfig struct {
	// StartBPM centres the log-normal tempo prior.
	StartBPM float64
	// StdBPM is the prior width in octaves.
	StdBPM float64
	// MaxTempo excludes faster tempi.
	MaxTempo float64
	// ACSize is the longest autocorrelation lag considered, in seconds.
	ACSize float64
}

// DefaultTempoConfig centres the prior at 120 BPM with a one octave spread
// and considers lags up to 8 seconds.
func DefaultTempoConfig() TempoConfig {
	return TempoConfig{StartBPM: 120, StdBPM: 1, MaxTempo: 320, ACSize: 8}
}

// Autocorrelate returns the first maxLag lags of the linear autocorrelation
// of x, computed through a zero-padded FFT.
func Autocorrelate(x []float64, maxLag int) ([]float64, error) {
	if maxLag <= 0 || maxLag > len(x) {
		maxLag = len(x)
	}
	if len(x) == 0 {
		return nil, nil
	}

	n := core.NextPowerOfTwo(2 * len(x))
	fft, err := spectrum.NewFFT(n)
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	if err := fft.Forward(spec, buf); err != nil {
		return nil, fmt.Errorf("autocorrelate: %w", err)
	}
	for i, c := range spec {
		re, im := real(c), imag(c)
		spec[i] = complex(re*re+im*im, 0)
	}
	if err := fft.Inverse(buf, spec); err != nil {
		return nil, fmt.Errorf("autocorrelate: %w", err)
	}

	out := make([]float64, maxLag)
	for i := range out {
		out[i] = real(buf[i])
	}
	return out, nil
}

// Tempo estimates the global tempo in beats per minute from an onset
// envelope. The autocorrelation of the envelope is weighted by a log-normal
// prior and the best lag is converted to BPM. An envelope of fewer than two
// frames yields 0.
func Tempo(env []float64, sampleRate, hopSize int, cfg TempoConfig) (float64, error) {
	if sampleRate <= 0 || hopSize <= 0 {
		return 0, fmt.Errorf("tempo sample rate and hop must be > 0: %d, %d", sampleRate, hopSize)
	}
	if cfg.StartBPM <= 0 || cfg.StdBPM <= 0 {
		return 0, fmt.Errorf("tempo prior must have positive centre and width: %+v", cfg)
	}
	if len(env) < 2 {
		return 0, nil
	}

	frameRate := float64(sampleRate) / float64(hopSize)
	winLen := int(math.Floor(cfg.ACSize * frameRate))
	acf, err := Autocorrelate(env, winLen)
	if err != nil {
		return 0, err
	}

	peak := 0.0
	for _, v := range acf {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > 0 {
		for i := range acf {
			acf[i] /= peak
		}
	}

	best, bestScore := 0, math.Inf(-1)
	for lag := 1; lag < len(acf); lag++ {
		bpm := 60 * frameRate / float64(lag)
		if cfg.MaxTempo > 0 && bpm >= cfg.MaxTempo {
			continue
		}
		z := (math.Log2(bpm) - math.Log2(cfg.StartBPM)) / cfg.StdBPM
		score := math.Log1p(1e6*math.Max(acf[lag], 0)) - 0.5*z*z
		if score > bestScore {
			best, bestScore = lag, score
		}
	}
	if best == 0 {
		return 0, nil
	}
	return 60 * frameRate / float64(best), nil
}
