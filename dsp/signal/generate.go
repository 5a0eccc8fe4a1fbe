package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Shape identifies a single-cycle waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSaw
	ShapeSquare
	ShapeTriangle
)

func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeSaw:
		return "saw"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Cycle returns exactly one period of the given shape sampled at n points.
// Phase starts at zero: the sine begins at 0, the saw at -1, the square at +1
// and the triangle at 0 rising.
func Cycle(shape Shape, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("cycle length must be >= 1: %d", n)
	}

	out := make([]float64, n)
	size := float64(n)

	switch shape {
	case ShapeSine:
		step := 2 * math.Pi / size
		for i := range out {
			out[i] = math.Sin(step * float64(i))
		}
	case ShapeSaw:
		for i := range out {
			out[i] = 2*float64(i)/size - 1
		}
	case ShapeSquare:
		half := n / 2
		for i := range out {
			if i < half {
				out[i] = 1
			} else {
				out[i] = -1
			}
		}
	case ShapeTriangle:
		for i := range out {
			p := float64(i) / size
			switch {
			case p < 0.25:
				out[i] = 4 * p
			case p < 0.75:
				out[i] = 2 - 4*p
			default:
				out[i] = 4*p - 4
			}
		}
	default:
		return nil, fmt.Errorf("unknown waveform shape: %v", shape)
	}

	return out, nil
}

// Peak returns the largest absolute sample value.
func Peak(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs
}

// Normalize returns a copy of data scaled so its peak equals targetPeak.
// Silent input is returned as zeros.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	out := make([]float64, len(data))
	copy(out, data)
	if err := NormalizeInPlace(out, targetPeak); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeInPlace scales data so its peak equals targetPeak. Silent input is
// left untouched.
func NormalizeInPlace(data []float64, targetPeak float64) error {
	if targetPeak < 0 || math.IsNaN(targetPeak) {
		return fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := Peak(data)
	if maxAbs == 0 {
		return nil
	}

	vecmath.ScaleBlock(data, data, targetPeak/maxAbs)
	return nil
}

// Lerp writes (1-alpha)*a + alpha*b into dst. All slices must share a length.
func Lerp(dst, a, b []float64, alpha float64) {
	for i := range dst {
		dst[i] = (1-alpha)*a[i] + alpha*b[i]
	}
}

// Mean averages equally long channels sample by sample.
func Mean(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	if len(channels) == 1 {
		return append([]float64(nil), channels[0]...)
	}

	out := make([]float64, len(channels[0]))
	for _, ch := range channels {
		vecmath.AddBlockInPlace(out, ch[:len(out)])
	}
	vecmath.ScaleBlock(out, out, 1/float64(len(channels)))
	return out
}
