package frequency

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-analysis/dsp/core"
)

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (len(magnitude) - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// BinFrequencies returns the centre frequency of every bin of a one-sided
// spectrum with binCount bins.
func BinFrequencies(binCount int, sampleRate float64) []float64 {
	if binCount < 2 {
		return make([]float64, max(binCount, 0))
	}
	out := make([]float64, binCount)
	for i := range out {
		out[i] = binFreq(i, sampleRate, binCount)
	}
	return out
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := 0.0
	weighted := 0.0
	for i, v := range magnitude {
		sum += v
		weighted += binFreq(i, sampleRate, n) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Spread returns the p-th order spectral bandwidth around the centroid:
//
//	(sum(|X_i| * |f_i - centroid|^p) / sum(|X_i|))^(1/p)
//
// With p = 2 this is the standard deviation of the spectrum in Hz.
func Spread(magnitude []float64, sampleRate, p float64) float64 {
	n := len(magnitude)
	if n < 2 || p <= 0 {
		return 0
	}

	cent := Centroid(magnitude, sampleRate)
	sum := 0.0
	acc := 0.0
	for i, v := range magnitude {
		sum += v
		acc += v * math.Pow(math.Abs(binFreq(i, sampleRate, n)-cent), p)
	}
	if sum == 0 {
		return 0
	}
	return math.Pow(acc/sum, 1/p)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded from the computation. If all considered bins
// are zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0
	hasZero := false

	for i := 1; i < n; i++ {
		v := magnitude[i]
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}

	meanLin := sumLin / float64(nBins)
	if meanLin == 0 || hasZero {
		return 0
	}

	return math.Exp(sumLog/float64(nBins)) / meanLin
}

// Rolloff returns the lowest bin frequency at which the cumulative magnitude
// reaches percent (0..1) of the total. A typical value is 0.85.
func Rolloff(magnitude []float64, sampleRate, percent float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	total := 0.0
	for _, v := range magnitude {
		total += v
	}
	if total == 0 {
		return 0
	}

	threshold := percent * total
	cum := 0.0
	for i, v := range magnitude {
		cum += v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}

// ContrastConfig controls octave-band spectral contrast.
type ContrastConfig struct {
	// Bands is the number of octave bands above the lowest edge.
	Bands int
	// MinFreq is the upper edge of the lowest band in Hz.
	MinFreq float64
	// Quantile selects the fraction of bins averaged for peak and valley.
	Quantile float64
}

// DefaultContrastConfig returns six octave bands starting at 200 Hz with a
// 2 % quantile.
func DefaultContrastConfig() ContrastConfig {
	return ContrastConfig{Bands: 6, MinFreq: 200, Quantile: 0.02}
}

// Contrast returns Bands+1 values: for each octave band the difference in dB
// between the mean of the loudest and the quietest Quantile of its bins. The
// final band collects everything above the last octave edge.
func Contrast(magnitude []float64, sampleRate float64, cfg ContrastConfig) []float64 {
	n := len(magnitude)
	out := make([]float64, cfg.Bands+1)
	if n < 2 || cfg.Bands < 0 {
		return out
	}

	edges := make([]float64, cfg.Bands+2)
	for k := 1; k < len(edges); k++ {
		edges[k] = cfg.MinFreq * math.Pow(2, float64(k-1))
	}

	freqs := BinFrequencies(n, sampleRate)
	for k := 0; k <= cfg.Bands; k++ {
		lo, hi := -1, -1
		for i, f := range freqs {
			if f >= edges[k] && f <= edges[k+1] {
				if lo < 0 {
					lo = i
				}
				hi = i
			}
		}
		if lo < 0 {
			continue
		}
		if k > 0 && lo > 0 {
			lo--
		}
		if k == cfg.Bands {
			hi = n - 1
		}

		count := hi - lo + 1
		sub := slices.Clone(magnitude[lo : hi+1])
		if k < cfg.Bands && len(sub) > 1 {
			sub = sub[:len(sub)-1]
		}

		idx := max(int(math.RoundToEven(cfg.Quantile*float64(count))), 1)
		idx = min(idx, len(sub))
		slices.Sort(sub)

		valley := mean(sub[:idx])
		peak := mean(sub[len(sub)-idx:])
		out[k] = core.PowerToDB(peak, 1, 1e-10) - core.PowerToDB(valley, 1, 1e-10)
	}

	return out
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
