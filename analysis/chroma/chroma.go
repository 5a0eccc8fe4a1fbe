package chroma

import (
	"fmt"
	"math"
)

const tiny = 1e-300

// STFT computes a chromagram from a frames x bins power spectrogram. Every
// frame is scaled so its strongest pitch class is 1; silent frames stay
// zero.
func STFT(power [][]float64, sampleRate, fftSize int) ([][]float64, error) {
	fb, err := Filterbank(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}
	if err := checkBins(power, fftSize/2+1); err != nil {
		return nil, err
	}

	out := newMatrix(len(power))
	for t, frame := range power {
		for c, w := range fb {
			acc := 0.0
			for k, v := range frame {
				acc += w[k] * v
			}
			out[c][t] = acc
		}
	}

	normalizeMax(out)
	return out, nil
}

// CQTConfig describes the semitone bands used by CQT.
type CQTConfig struct {
	// FMin is the centre of the lowest band.
	FMin float64
	// Octaves is the number of octaves above FMin to cover.
	Octaves int
}

// DefaultCQTConfig covers seven octaves from C1.
func DefaultCQTConfig() CQTConfig {
	return CQTConfig{FMin: 32.70319566257483, Octaves: 7}
}

// CQT computes a constant-Q chromagram from a frames x bins magnitude
// spectrogram. Each semitone band spans a quarter tone either side of its
// centre; the band value is the RMS magnitude of the bins it covers, or the
// interpolated magnitude at the centre when the band is narrower than one
// bin. Bands are summed per pitch class and frames are scaled to a peak of
// 1.
func CQT(magnitude [][]float64, sampleRate, fftSize int, cfg CQTConfig) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("chroma sample rate must be > 0: %d", sampleRate)
	}
	if fftSize < 2 {
		return nil, fmt.Errorf("chroma fft size must be >= 2: %d", fftSize)
	}
	if cfg.FMin <= 0 || cfg.Octaves <= 0 {
		return nil, fmt.Errorf("chroma cqt needs fmin > 0 and octaves > 0: %+v", cfg)
	}
	if err := checkBins(magnitude, fftSize/2+1); err != nil {
		return nil, err
	}

	binHz := float64(sampleRate) / float64(fftSize)
	nyquist := float64(sampleRate) / 2
	edge := math.Pow(2, 1.0/24)

	type band struct {
		class      int
		lo, hi     int
		centre     float64
		interpOnly bool
	}

	var bands []band
	for k := 0; k < cfg.Octaves*NumClasses; k++ {
		fk := cfg.FMin * math.Pow(2, float64(k)/NumClasses)
		if fk*edge > nyquist {
			break
		}
		b := band{
			class:  k % NumClasses,
			lo:     int(math.Ceil(fk / edge / binHz)),
			hi:     int(math.Floor(fk * edge / binHz)),
			centre: fk / binHz,
		}
		b.interpOnly = b.hi < b.lo
		bands = append(bands, b)
	}

	out := newMatrix(len(magnitude))
	for t, frame := range magnitude {
		for _, b := range bands {
			var v float64
			if b.interpOnly {
				i := int(b.centre)
				frac := b.centre - float64(i)
				v = frame[i]
				if i+1 < len(frame) {
					v = (1-frac)*frame[i] + frac*frame[i+1]
				}
			} else {
				acc := 0.0
				for i := b.lo; i <= b.hi; i++ {
					acc += frame[i] * frame[i]
				}
				v = math.Sqrt(acc / float64(b.hi-b.lo+1))
			}
			out[b.class][t] += v
		}
	}

	normalizeMax(out)
	return out, nil
}

var (
	censSteps   = []float64{0.4, 0.2, 0.1, 0.05}
	censWeights = []float64{0.25, 0.25, 0.25, 0.25}
)

// DefaultSmoothing is the CENS smoothing length in frames.
const DefaultSmoothing = 41

// CENS derives Chroma Energy Normalized Statistics from a 12 x frames
// chromagram: L1 normalisation, logarithmic quantisation, Hann smoothing
// over smooth frames, then L2 normalisation.
func CENS(chroma [][]float64, smooth int) ([][]float64, error) {
	if len(chroma) != NumClasses {
		return nil, fmt.Errorf("chroma cens expects %d rows, got %d", NumClasses, len(chroma))
	}
	if smooth < 1 {
		return nil, fmt.Errorf("chroma cens smoothing must be >= 1: %d", smooth)
	}

	frames := len(chroma[0])
	quant := newMatrix(frames)
	for t := 0; t < frames; t++ {
		l1 := 0.0
		for c := range chroma {
			l1 += math.Abs(chroma[c][t])
		}
		if l1 < tiny {
			l1 = 1
		}
		for c := range chroma {
			v := chroma[c][t] / l1
			for i, step := range censSteps {
				if v > step {
					quant[c][t] += censWeights[i]
				}
			}
		}
	}

	// Symmetric Hann with zero end points, normalised to unit sum.
	n := smooth + 2
	win := make([]float64, n)
	sum := 0.0
	for i := range win {
		win[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		sum += win[i]
	}
	for i := range win {
		win[i] /= sum
	}

	centre := n / 2
	out := newMatrix(frames)
	for c := range quant {
		for t := 0; t < frames; t++ {
			acc := 0.0
			for j, w := range win {
				src := t + j - centre
				if src >= 0 && src < frames {
					acc += w * quant[c][src]
				}
			}
			out[c][t] = acc
		}
	}

	for t := 0; t < frames; t++ {
		l2 := 0.0
		for c := range out {
			l2 += out[c][t] * out[c][t]
		}
		if l2 < tiny {
			continue
		}
		l2 = math.Sqrt(l2)
		for c := range out {
			out[c][t] /= l2
		}
	}
	return out, nil
}

func newMatrix(frames int) [][]float64 {
	out := make([][]float64, NumClasses)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	return out
}

func normalizeMax(m [][]float64) {
	if len(m) == 0 {
		return
	}
	for t := range m[0] {
		peak := 0.0
		for c := range m {
			peak = math.Max(peak, math.Abs(m[c][t]))
		}
		if peak < tiny {
			continue
		}
		for c := range m {
			m[c][t] /= peak
		}
	}
}

func checkBins(spec [][]float64, bins int) error {
	if len(spec) == 0 {
		return fmt.Errorf("chroma: empty spectrogram")
	}
	if len(spec[0]) != bins {
		return fmt.Errorf("chroma: spectrogram has %d bins, want %d", len(spec[0]), bins)
	}
	return nil
}
