package hpss

import "slices"

// reflect maps an out-of-range index back into [0, n) by mirroring about
// the edges, repeating the edge sample (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// medianFilter returns the running median of x over a centred window of odd
// length size, reflecting at the edges. scratch must hold size values.
func medianFilter(dst, x []float64, size int, scratch []float64) {
	half := size / 2
	n := len(x)
	for i := range dst {
		for j := 0; j < size; j++ {
			scratch[j] = x[reflect(i-half+j, n)]
		}
		slices.Sort(scratch[:size])
		dst[i] = scratch[half]
	}
}

// filterTime median-filters every bin of a frames x bins matrix along time.
func filterTime(mag [][]float64, size int) [][]float64 {
	frames := len(mag)
	bins := len(mag[0])
	out := make([][]float64, frames)
	for t := range out {
		out[t] = make([]float64, bins)
	}

	col := make([]float64, frames)
	res := make([]float64, frames)
	scratch := make([]float64, size)
	for k := 0; k < bins; k++ {
		for t := range col {
			col[t] = mag[t][k]
		}
		medianFilter(res, col, size, scratch)
		for t, v := range res {
			out[t][k] = v
		}
	}
	return out
}

// filterFreq median-filters every frame of a frames x bins matrix along
// frequency.
func filterFreq(mag [][]float64, size int) [][]float64 {
	out := make([][]float64, len(mag))
	scratch := make([]float64, size)
	for t, frame := range mag {
		out[t] = make([]float64, len(frame))
		medianFilter(out[t], frame, size, scratch)
	}
	return out
}
