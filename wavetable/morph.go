package wavetable

import "github.com/cwbudde/algo-analysis/dsp/signal"

// Morph linearly interpolates from a to b in steps tables. The first table
// equals a and the last equals b.
func Morph(a, b Table, steps int) (Stack, error) {
	if len(a) != len(b) {
		return nil, ErrMalformedPair
	}
	if steps < 2 {
		return nil, ErrDegenerateStepCount
	}

	out := make(Stack, steps)
	for i := range out {
		t := make(Table, len(a))
		switch i {
		case 0:
			copy(t, a)
		case steps - 1:
			copy(t, b)
		default:
			signal.Lerp(t, a, b, float64(i)/float64(steps-1))
		}
		out[i] = t
	}
	return out, nil
}
