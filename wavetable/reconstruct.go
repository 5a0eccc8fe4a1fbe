package wavetable

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/dsp/signal"
	"github.com/cwbudde/algo-analysis/dsp/spectrum"
)

// Reconstructor turns magnitude spectra into tables of a fixed size. It keeps
// its transform plan between calls and is not safe for concurrent use.
type Reconstructor struct {
	size int
	fft  *spectrum.FFT
	bins []complex128
}

// NewReconstructor prepares a reconstructor for tables of size samples.
func NewReconstructor(size int) (*Reconstructor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("table size must be > 0: %d", size)
	}

	fft, err := spectrum.NewFFT(size)
	if err != nil {
		return nil, err
	}

	return &Reconstructor{
		size: size,
		fft:  fft,
		bins: make([]complex128, size/2),
	}, nil
}

// Size returns the table length produced by Reconstruct.
func (r *Reconstructor) Size() int { return r.size }

// Reconstruct builds one table from a magnitude spectrum. Only the first
// size/2 bins are used; shorter spectra are zero-padded. Phases are zero and
// the Nyquist bin stays empty. The result is scaled to peak 1 unless silent.
func (r *Reconstructor) Reconstruct(magnitude []float64) (Table, error) {
	for k := range r.bins {
		if k < len(magnitude) {
			r.bins[k] = complex(magnitude[k], 0)
		} else {
			r.bins[k] = 0
		}
	}

	out, err := r.fft.InverseReal(r.bins)
	if err != nil {
		return nil, fmt.Errorf("reconstruct table: %w", err)
	}

	if signal.Peak(out) > 0 {
		if err := signal.NormalizeInPlace(out, 1); err != nil {
			return nil, err
		}
	}

	return Table(out), nil
}

// FromSpectrum builds a single table of size samples from a magnitude
// spectrum. It plans a new inverse FFT on every call; use NewReconstructor
// when converting many spectra of the same size.
func FromSpectrum(magnitude []float64, size int) (Table, error) {
	r, err := NewReconstructor(size)
	if err != nil {
		return nil, err
	}
	return r.Reconstruct(magnitude)
}
