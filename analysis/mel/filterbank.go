package mel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FilterbankConfig describes a triangular mel filterbank.
type FilterbankConfig struct {
	SampleRate int
	FFTSize    int
	NumMels    int
	FMin       float64
	// FMax of zero selects the Nyquist frequency.
	FMax float64
	HTK  bool
}

// DefaultFilterbankConfig returns 128 Slaney-normalized mel bands over the
// full spectrum.
func DefaultFilterbankConfig(sampleRate, fftSize int) FilterbankConfig {
	return FilterbankConfig{SampleRate: sampleRate, FFTSize: fftSize, NumMels: 128}
}

// Filterbank builds a NumMels x (FFTSize/2+1) weight matrix. Each triangle
// is scaled by 2/(upper-lower) so bands have approximately constant energy.
func Filterbank(cfg FilterbankConfig) (*mat.Dense, error) {
	switch {
	case cfg.SampleRate <= 0:
		return nil, fmt.Errorf("mel sample rate must be > 0: %d", cfg.SampleRate)
	case cfg.FFTSize <= 0:
		return nil, fmt.Errorf("mel fft size must be > 0: %d", cfg.FFTSize)
	case cfg.NumMels <= 0:
		return nil, fmt.Errorf("mel band count must be > 0: %d", cfg.NumMels)
	}

	fmax := cfg.FMax
	if fmax <= 0 {
		fmax = float64(cfg.SampleRate) / 2
	}

	bins := cfg.FFTSize/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(cfg.SampleRate) / float64(cfg.FFTSize)
	}

	edges := Frequencies(cfg.NumMels+2, cfg.FMin, fmax, cfg.HTK)
	w := mat.NewDense(cfg.NumMels, bins, nil)
	for m := 0; m < cfg.NumMels; m++ {
		lowDiff := edges[m+1] - edges[m]
		highDiff := edges[m+2] - edges[m+1]
		norm := 2 / (edges[m+2] - edges[m])
		for k, f := range fftFreqs {
			lower := (f - edges[m]) / lowDiff
			upper := (edges[m+2] - f) / highDiff
			if v := math.Max(0, math.Min(lower, upper)); v > 0 {
				w.Set(m, k, v*norm)
			}
		}
	}

	return w, nil
}
