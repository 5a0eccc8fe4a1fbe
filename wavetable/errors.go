package wavetable

import "errors"

var (
	// ErrMalformedPair indicates morph endpoints of unequal length.
	ErrMalformedPair = errors.New("wavetable: morph endpoints differ in length")
	// ErrDegenerateStepCount indicates a morph with fewer than two steps.
	ErrDegenerateStepCount = errors.New("wavetable: morph needs at least 2 steps")
	// ErrNoFrames indicates an empty spectrogram was given to the frame sampler.
	ErrNoFrames = errors.New("wavetable: no spectral frames")
	// ErrNoSamples indicates empty audio was given to FromAudio.
	ErrNoSamples = errors.New("wavetable: no audio samples")
)
