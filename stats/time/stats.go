package time

import "math"

// PadMode selects how Frames extends the signal when centring.
type PadMode int

const (
	// PadConstant pads with zeros.
	PadConstant PadMode = iota
	// PadEdge repeats the first and last sample.
	PadEdge
)

// FrameConfig controls short-time framing of a signal.
type FrameConfig struct {
	Length int
	Hop    int
	Center bool
	Pad    PadMode
}

// DefaultFrameConfig returns 2048-sample frames with a 512-sample hop,
// centred with zero padding.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{Length: 2048, Hop: 512, Center: true, Pad: PadConstant}
}

// Frames slices signal into overlapping frames. Frames share no memory with
// signal. Signals shorter than one frame are zero-padded to a single frame.
func Frames(signal []float64, cfg FrameConfig) [][]float64 {
	if cfg.Length <= 0 || cfg.Hop <= 0 {
		return nil
	}

	x := signal
	if cfg.Center {
		x = pad(signal, cfg.Length/2, cfg.Pad)
	}
	if len(x) < cfg.Length {
		tmp := make([]float64, cfg.Length)
		copy(tmp, x)
		x = tmp
	}

	count := 1 + (len(x)-cfg.Length)/cfg.Hop
	out := make([][]float64, count)
	for t := range out {
		start := t * cfg.Hop
		frame := make([]float64, cfg.Length)
		copy(frame, x[start:start+cfg.Length])
		out[t] = frame
	}
	return out
}

func pad(signal []float64, n int, mode PadMode) []float64 {
	out := make([]float64, len(signal)+2*n)
	copy(out[n:], signal)
	if mode == PadEdge && len(signal) > 0 {
		first, last := signal[0], signal[len(signal)-1]
		for i := 0; i < n; i++ {
			out[i] = first
			out[len(out)-1-i] = last
		}
	}
	return out
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// FrameRMS returns the RMS energy of every frame.
func FrameRMS(signal []float64, cfg FrameConfig) []float64 {
	frames := Frames(signal, cfg)
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = RMS(f)
	}
	return out
}

// zeroThreshold is the magnitude below which samples count as exactly zero.
const zeroThreshold = 1e-10

// ZeroCrossings returns the number of sign changes in the signal. Samples
// within 1e-10 of zero count as zero and zero counts as positive.
func ZeroCrossings(signal []float64) int {
	if len(signal) < 2 {
		return 0
	}

	count := 0
	prev := negative(signal[0])
	for _, x := range signal[1:] {
		cur := negative(x)
		if cur != prev {
			count++
		}
		prev = cur
	}
	return count
}

func negative(x float64) bool {
	if math.Abs(x) <= zeroThreshold {
		return false
	}
	return x < 0
}

// ZeroCrossingRate returns, for every frame, the fraction of samples at which
// the sign changes. Frames are centred with edge padding unless cfg says
// otherwise.
func ZeroCrossingRate(signal []float64, cfg FrameConfig) []float64 {
	frames := Frames(signal, cfg)
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(ZeroCrossings(f)) / float64(len(f))
	}
	return out
}
