package mel

import "fmt"

// DefaultDeltaWidth is the regression window used for delta features.
const DefaultDeltaWidth = 9

// Delta estimates the first (order 1) or second (order 2) time derivative
// of every row by least-squares polynomial fitting over a centred window of
// width frames. Edge frames take the value of the nearest full window.
//
// Rows shorter than width use the largest odd window that fits; rows of
// fewer than three frames yield zeros.
func Delta(rows [][]float64, width, order int) ([][]float64, error) {
	if order != 1 && order != 2 {
		return nil, fmt.Errorf("delta order must be 1 or 2: %d", order)
	}
	if width < 3 || width%2 == 0 {
		return nil, fmt.Errorf("delta width must be odd and >= 3: %d", width)
	}

	out := make([][]float64, len(rows))
	for r, row := range rows {
		out[r] = deltaRow(row, width, order)
	}
	return out, nil
}

func deltaRow(x []float64, width, order int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if width > n {
		width = n
		if width%2 == 0 {
			width--
		}
	}
	if width < 3 {
		return out
	}

	coeffs := deltaCoeffs(width, order)
	half := width / 2
	for t := range out {
		c := min(max(t, half), n-1-half)
		acc := 0.0
		for j, w := range coeffs {
			acc += w * x[c-half+j]
		}
		out[t] = acc
	}
	return out
}

// deltaCoeffs returns the derivative filter of a least-squares polynomial fit
// of degree order over a symmetric window.
func deltaCoeffs(width, order int) []float64 {
	half := width / 2
	coeffs := make([]float64, width)

	if order == 1 {
		den := 0.0
		for n := -half; n <= half; n++ {
			den += float64(n * n)
		}
		for n := -half; n <= half; n++ {
			coeffs[n+half] = float64(n) / den
		}
		return coeffs
	}

	meanSq := 0.0
	for n := -half; n <= half; n++ {
		meanSq += float64(n * n)
	}
	meanSq /= float64(width)

	den := 0.0
	for n := -half; n <= half; n++ {
		d := float64(n*n) - meanSq
		den += d * d
	}
	for n := -half; n <= half; n++ {
		coeffs[n+half] = 2 * (float64(n*n) - meanSq) / den
	}
	return coeffs
}
