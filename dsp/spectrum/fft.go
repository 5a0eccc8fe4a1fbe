package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-analysis/dsp/core"
)

// FFT is a reusable complex transform of a fixed size. Power-of-two sizes use
// algo-fft plans; other sizes fall back to gonum's mixed-radix transform.
//
// An FFT is not safe for concurrent use.
type FFT struct {
	n     int
	plan  *algofft.Plan[complex128]
	mixed *fourier.CmplxFFT
	buf   []complex128
}

// NewFFT prepares a transform of size n.
func NewFFT(n int) (*FFT, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft size must be > 0: %d", n)
	}

	f := &FFT{n: n, buf: make([]complex128, n)}
	if core.IsPowerOfTwo(n) && n >= 2 {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fft plan %d: %w", n, err)
		}
		f.plan = plan
		return f, nil
	}

	f.mixed = fourier.NewCmplxFFT(n)
	return f, nil
}

// Len returns the transform size.
func (f *FFT) Len() int { return f.n }

// Forward computes the unnormalized DFT of src into dst.
func (f *FFT) Forward(dst, src []complex128) error {
	if len(dst) != f.n || len(src) != f.n {
		return fmt.Errorf("fft length mismatch: dst=%d src=%d want %d", len(dst), len(src), f.n)
	}

	if f.plan != nil {
		return f.plan.Forward(dst, src)
	}

	f.mixed.Coefficients(dst, src)
	return nil
}

// Inverse computes the inverse DFT of src into dst, scaled by 1/n.
func (f *FFT) Inverse(dst, src []complex128) error {
	if len(dst) != f.n || len(src) != f.n {
		return fmt.Errorf("fft length mismatch: dst=%d src=%d want %d", len(dst), len(src), f.n)
	}

	if f.plan != nil {
		return f.plan.Inverse(dst, src)
	}

	f.mixed.Sequence(dst, src)
	scale := complex(1/float64(f.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

// ForwardReal transforms a real frame and returns the n/2+1 non-negative
// frequency bins.
func (f *FFT) ForwardReal(frame []float64) ([]complex128, error) {
	if len(frame) != f.n {
		return nil, fmt.Errorf("fft length mismatch: frame=%d want %d", len(frame), f.n)
	}

	for i, v := range frame {
		f.buf[i] = complex(v, 0)
	}

	out := make([]complex128, f.n)
	if err := f.Forward(out, f.buf); err != nil {
		return nil, err
	}

	return out[:f.n/2+1], nil
}

// InverseReal reconstructs a real frame of length n from its non-negative
// frequency bins. Missing bins are treated as zero and the negative
// frequencies are filled with the complex conjugate mirror.
func (f *FFT) InverseReal(half []complex128) ([]float64, error) {
	spec := HermitianMirror(half, f.n)

	tmp := make([]complex128, f.n)
	if err := f.Inverse(tmp, spec); err != nil {
		return nil, err
	}

	out := make([]float64, f.n)
	for i, c := range tmp {
		out[i] = real(c)
	}
	return out, nil
}

// HermitianMirror expands non-negative frequency bins into a full length-n
// spectrum with X[n-k] = conj(X[k]). The DC bin and, for even n, the Nyquist
// bin are forced real.
func HermitianMirror(half []complex128, n int) []complex128 {
	full := make([]complex128, n)
	if n == 0 {
		return full
	}

	limit := n/2 + 1
	for k := 0; k < limit && k < len(half); k++ {
		full[k] = half[k]
	}

	full[0] = complex(real(full[0]), 0)
	if n%2 == 0 {
		full[n/2] = complex(real(full[n/2]), 0)
	}

	for k := 1; k < (n+1)/2; k++ {
		c := full[k]
		full[n-k] = complex(real(c), -imag(c))
	}

	return full
}
