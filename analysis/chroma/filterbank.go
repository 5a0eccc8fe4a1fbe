package chroma

import (
	"fmt"
	"math"
)

// NumClasses is the number of pitch classes per octave.
const NumClasses = 12

const (
	centerOctave = 5.0
	octaveWidth  = 2.0
)

// Filterbank returns the 12 x (fftSize/2+1) weights mapping STFT bins onto
// pitch classes. Each bin contributes a Gaussian bump around its fractional
// pitch class, weighted by a broad Gaussian over octaves centred on
// octave 5, and the rows are rotated so row 0 is C.
func Filterbank(sampleRate, fftSize int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("chroma sample rate must be > 0: %d", sampleRate)
	}
	if fftSize < 2 {
		return nil, fmt.Errorf("chroma fft size must be >= 2: %d", fftSize)
	}

	// Fractional semitone index of every bin relative to A0/16; bin 0 gets
	// a synthetic value 1.5 octaves below bin 1.
	bins := make([]float64, fftSize)
	for k := 1; k < fftSize; k++ {
		f := float64(k) * float64(sampleRate) / float64(fftSize)
		bins[k] = NumClasses * math.Log2(f/(440.0/16))
	}
	bins[0] = bins[1] - 1.5*NumClasses

	widths := make([]float64, fftSize)
	for k := 0; k < fftSize-1; k++ {
		widths[k] = math.Max(bins[k+1]-bins[k], 1)
	}
	widths[fftSize-1] = 1

	half := math.Round(NumClasses / 2)
	wts := make([][]float64, NumClasses)
	for c := range wts {
		wts[c] = make([]float64, fftSize)
		for k, b := range bins {
			d := math.Mod(b-float64(c)+half+10*NumClasses, NumClasses)
			if d < 0 {
				d += NumClasses
			}
			d -= half
			x := 2 * d / widths[k]
			wts[c][k] = math.Exp(-0.5 * x * x)
		}
	}

	for k, b := range bins {
		norm := 0.0
		for c := range wts {
			norm += wts[c][k] * wts[c][k]
		}
		norm = math.Sqrt(norm)

		o := (b/NumClasses - centerOctave) / octaveWidth
		oct := math.Exp(-0.5 * o * o)
		for c := range wts {
			if norm > 0 {
				wts[c][k] /= norm
			}
			wts[c][k] *= oct
		}
	}

	keep := fftSize/2 + 1
	out := make([][]float64, NumClasses)
	for c := range out {
		// Row 0 of the raw bank is A; rotate by three semitones to start at C.
		out[c] = wts[(c+3)%NumClasses][:keep:keep]
	}
	return out, nil
}
