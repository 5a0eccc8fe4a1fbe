package feature

import (
	"github.com/cwbudde/algo-analysis/stats/descriptive"
)

func describe(values []float64) *Map {
	s := descriptive.Describe(values)
	return NewMap().
		Set("mean", Scalar(s.Mean)).
		Set("std", Scalar(s.Std)).
		Set("min", Scalar(s.Min)).
		Set("max", Scalar(s.Max))
}

// Summary returns mean, std, min and max of the spectral centroid and RMS
// energy, the tempo, and statistics over voiced (non-zero) pitch frames.
// The pitch entry is omitted when no frame is voiced.
func (e *Extractor) Summary() (*Map, error) {
	out := NewMap()

	centroid, err := e.an.SpectralCentroid(e.buf)
	if err != nil {
		return nil, wrap("spectral_centroid", err)
	}
	out.Set("spectral_centroid", MapValue(describe(centroid)))

	rms, err := e.an.RMS(e.buf)
	if err != nil {
		return nil, wrap("rms", err)
	}
	out.Set("rms", MapValue(describe(rms)))

	tempo, _, err := e.an.BeatTrack(e.buf)
	if err != nil {
		return nil, wrap("tempo", err)
	}
	out.Set("tempo", MapValue(NewMap().Set("value", Scalar(tempo))))

	pitches, mags, err := e.an.Piptrack(e.buf)
	if err != nil {
		return nil, wrap("pitch", err)
	}
	if voiced := descriptive.NonZero(dominantPitch(pitches, mags)); len(voiced) > 0 {
		out.Set("pitch", MapValue(describe(voiced)))
	}

	return out, nil
}
