package mel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-analysis/dsp/core"
)

// Spectrogram projects a frames x bins power spectrogram onto the filterbank
// and returns a bands x frames mel spectrogram.
func Spectrogram(power [][]float64, fb *mat.Dense) ([][]float64, error) {
	if len(power) == 0 {
		return nil, fmt.Errorf("mel: empty spectrogram")
	}

	bands, bins := fb.Dims()
	if len(power[0]) != bins {
		return nil, fmt.Errorf("mel: spectrogram has %d bins, filterbank expects %d", len(power[0]), bins)
	}

	// S is bins x frames.
	s := mat.NewDense(bins, len(power), nil)
	for t, frame := range power {
		for k, v := range frame {
			s.Set(k, t, v)
		}
	}

	var out mat.Dense
	out.Mul(fb, s)
	return denseRows(&out, bands), nil
}

// PowerToDB converts a power matrix to decibels relative to 1.0, flooring at
// 1e-10 and clipping everything more than topDB below the global maximum.
// topDB <= 0 disables clipping.
func PowerToDB(power [][]float64, topDB float64) [][]float64 {
	out := make([][]float64, len(power))
	peak := math.Inf(-1)
	for i, row := range power {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			db := core.PowerToDB(v, 1, 1e-10)
			out[i][j] = db
			peak = math.Max(peak, db)
		}
	}

	if topDB > 0 {
		floor := peak - topDB
		for _, row := range out {
			for j, v := range row {
				if v < floor {
					row[j] = floor
				}
			}
		}
	}
	return out
}

// DCTMatrix returns the first n rows of the orthonormal DCT-II matrix of
// size size.
func DCTMatrix(n, size int) *mat.Dense {
	d := mat.NewDense(n, size, nil)
	for k := 0; k < n; k++ {
		scale := math.Sqrt(2 / float64(size))
		if k == 0 {
			scale = math.Sqrt(1 / float64(size))
		}
		for i := 0; i < size; i++ {
			d.Set(k, i, scale*math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(size))))
		}
	}
	return d
}

// MFCC returns n cepstral coefficients per frame from a bands x frames
// log-mel spectrogram. The result is n x frames.
func MFCC(logMel [][]float64, n int) ([][]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mfcc count must be > 0: %d", n)
	}
	if len(logMel) == 0 || len(logMel[0]) == 0 {
		return nil, fmt.Errorf("mfcc: empty mel spectrogram")
	}

	bands := len(logMel)
	frames := len(logMel[0])
	if n > bands {
		return nil, fmt.Errorf("mfcc count %d exceeds mel bands %d", n, bands)
	}

	m := mat.NewDense(bands, frames, nil)
	for i, row := range logMel {
		m.SetRow(i, row)
	}

	var out mat.Dense
	out.Mul(DCTMatrix(n, bands), m)
	return denseRows(&out, n), nil
}

func denseRows(m *mat.Dense, rows int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
