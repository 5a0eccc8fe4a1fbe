package resample

import "math"

// Convert resamples a whole signal from inRate to outRate. Output sample 0
// aligns with input sample 0 and the result has
// round(len(input)*outRate/inRate) samples.
func Convert(input []float64, inRate, outRate int, opts ...Option) ([]float64, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, ErrInvalidRate
	}

	if inRate == outRate {
		return append([]float64(nil), input...), nil
	}

	want := int(math.Round(float64(len(input)) * float64(outRate) / float64(inRate)))
	if want == 0 {
		return []float64{}, nil
	}

	r, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	out := r.Process(input)
	out = append(out, r.Process(make([]float64, r.Lookahead()+1))...)

	if len(out) >= want {
		return out[:want], nil
	}

	padded := make([]float64, want)
	copy(padded, out)
	return padded, nil
}
