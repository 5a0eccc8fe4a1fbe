package mel

import "math"

const (
	slaneyFSp       = 200.0 / 3
	slaneyMinLogHz  = 1000.0
	slaneyMinLogMel = slaneyMinLogHz / slaneyFSp
)

var slaneyLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to mels, using the HTK formula when htk is
// true and the Slaney (Auditory Toolbox) formula otherwise.
func HzToMel(hz float64, htk bool) float64 {
	if htk {
		return 2595 * math.Log10(1+hz/700)
	}

	if hz < slaneyMinLogHz {
		return hz / slaneyFSp
	}
	return slaneyMinLogMel + math.Log(hz/slaneyMinLogHz)/slaneyLogStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(m float64, htk bool) float64 {
	if htk {
		return 700 * (math.Pow(10, m/2595) - 1)
	}

	if m < slaneyMinLogMel {
		return m * slaneyFSp
	}
	return slaneyMinLogHz * math.Exp(slaneyLogStep*(m-slaneyMinLogMel))
}

// Frequencies returns n frequencies spaced evenly on the mel scale between
// fmin and fmax inclusive.
func Frequencies(n int, fmin, fmax float64, htk bool) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{fmin}
	}

	lo := HzToMel(fmin, htk)
	hi := HzToMel(fmax, htk)
	out := make([]float64, n)
	for i := range out {
		out[i] = MelToHz(lo+(hi-lo)*float64(i)/float64(n-1), htk)
	}
	return out
}
