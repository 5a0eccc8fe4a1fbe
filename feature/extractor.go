package feature

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/audio"
)

// DefaultMFCCCount is the number of cepstral coefficients extracted.
const DefaultMFCCCount = 13

// Extractor builds feature maps for one audio buffer.
type Extractor struct {
	an  Analyzer
	buf audio.Buffer
}

func NewExtractor(an Analyzer, buf audio.Buffer) *Extractor {
	return &Extractor{an: an, buf: buf}
}

// Buffer returns the analysed audio.
func (e *Extractor) Buffer() audio.Buffer { return e.buf }

func wrap(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}

func setRow(m *Map, name string, row []float64) {
	v, _ := Matrix([][]float64{row})
	m.Set(name, v)
}

func setMatrix(m *Map, name string, rows [][]float64) error {
	v, err := Matrix(rows)
	if err != nil {
		return wrap(name, err)
	}
	m.Set(name, v)
	return nil
}

// Spectral returns MFCCs with first and second deltas, spectral centroid,
// rolloff, bandwidth and contrast, and STFT, CQT and CENS chroma.
func (e *Extractor) Spectral() (*Map, error) {
	m := NewMap()

	mfcc, err := e.an.MFCC(e.buf, DefaultMFCCCount)
	if err != nil {
		return nil, wrap("mfcc", err)
	}
	if err := setMatrix(m, "mfcc", mfcc); err != nil {
		return nil, err
	}
	for i, name := range []string{"mfcc_delta", "mfcc_delta2"} {
		d, err := e.an.Delta(mfcc, i+1)
		if err != nil {
			return nil, wrap(name, err)
		}
		if err := setMatrix(m, name, d); err != nil {
			return nil, err
		}
	}

	rows := []struct {
		name string
		fn   func(audio.Buffer) ([]float64, error)
	}{
		{"spectral_centroid", e.an.SpectralCentroid},
		{"spectral_rolloff", e.an.SpectralRolloff},
		{"spectral_bandwidth", e.an.SpectralBandwidth},
	}
	for _, r := range rows {
		v, err := r.fn(e.buf)
		if err != nil {
			return nil, wrap(r.name, err)
		}
		setRow(m, r.name, v)
	}

	matrices := []struct {
		name string
		fn   func(audio.Buffer) ([][]float64, error)
	}{
		{"spectral_contrast", e.an.SpectralContrast},
		{"chroma_stft", e.an.ChromaSTFT},
		{"chroma_cqt", e.an.ChromaCQT},
		{"chroma_cens", e.an.ChromaCENS},
	}
	for _, r := range matrices {
		v, err := r.fn(e.buf)
		if err != nil {
			return nil, wrap(r.name, err)
		}
		if err := setMatrix(m, r.name, v); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Temporal returns zero crossing rate, RMS energy, tempo and beat frames.
func (e *Extractor) Temporal() (*Map, error) {
	m := NewMap()

	zcr, err := e.an.ZeroCrossingRate(e.buf)
	if err != nil {
		return nil, wrap("zero_crossing_rate", err)
	}
	setRow(m, "zero_crossing_rate", zcr)

	rms, err := e.an.RMS(e.buf)
	if err != nil {
		return nil, wrap("rms", err)
	}
	setRow(m, "rms", rms)

	tempo, beats, err := e.an.BeatTrack(e.buf)
	if err != nil {
		return nil, wrap("tempo", err)
	}
	m.Set("tempo", Vector([]float64{tempo}))
	m.Set("beat_frames", Ints(beats))

	return m, nil
}

// HarmonicPercussive returns the harmonic and percussive signals.
func (e *Extractor) HarmonicPercussive() (*Map, error) {
	h, p, err := e.an.HPSS(e.buf)
	if err != nil {
		return nil, wrap("harmonic_percussive", err)
	}
	return NewMap().Set("harmonic", Vector(h)).Set("percussive", Vector(p)), nil
}

// Onsets returns onset frames, their times in seconds and the onset
// strength envelope.
func (e *Extractor) Onsets() (*Map, error) {
	frames, err := e.an.OnsetFrames(e.buf)
	if err != nil {
		return nil, wrap("onset_frames", err)
	}
	strength, err := e.an.OnsetStrength(e.buf)
	if err != nil {
		return nil, wrap("onset_strength", err)
	}

	return NewMap().
		Set("onset_frames", Ints(frames)).
		Set("onset_times", Vector(e.an.FramesToTime(frames, e.buf.SampleRate))).
		Set("onset_strength", Vector(strength)), nil
}

// Pitch returns the dominant pitch per frame together with the full pitch
// and magnitude matrices.
func (e *Extractor) Pitch() (*Map, error) {
	pitches, mags, err := e.an.Piptrack(e.buf)
	if err != nil {
		return nil, wrap("pitch", err)
	}

	m := NewMap().Set("pitch_track", Vector(dominantPitch(pitches, mags)))
	if err := setMatrix(m, "pitch_matrix", pitches); err != nil {
		return nil, err
	}
	if err := setMatrix(m, "magnitude_matrix", mags); err != nil {
		return nil, err
	}
	return m, nil
}

// dominantPitch picks, per frame, the pitch at the bin of largest magnitude.
func dominantPitch(pitches, mags [][]float64) []float64 {
	if len(mags) == 0 {
		return []float64{}
	}
	out := make([]float64, len(mags[0]))
	for t := range out {
		best := 0
		for k := range mags {
			if mags[k][t] > mags[best][t] {
				best = k
			}
		}
		out[t] = pitches[best][t]
	}
	return out
}

// Metadata returns the sample rate, duration in seconds and sample count,
// each as a one-element array.
func (e *Extractor) Metadata() *Map {
	return NewMap().
		Set("sr", Ints([]int{e.buf.SampleRate})).
		Set("duration", Vector([]float64{e.buf.Duration()})).
		Set("samples", Ints([]int{e.buf.Len()}))
}

// Category builds a single category. CategoryAll returns the nested map of
// every category.
func (e *Extractor) Category(c Category) (*Map, error) {
	switch c {
	case CategoryAll:
		return e.All()
	case CategorySpectral:
		return e.Spectral()
	case CategoryTemporal:
		return e.Temporal()
	case CategoryHarmonic:
		return e.HarmonicPercussive()
	case CategoryOnsets:
		return e.Onsets()
	case CategoryPitch:
		return e.Pitch()
	case CategoryMetadata:
		return e.Metadata(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCategory, c)
	}
}

// All returns every category keyed by its name.
func (e *Extractor) All() (*Map, error) {
	out := NewMap()
	for _, c := range Categories() {
		m, err := e.Category(c)
		if err != nil {
			return nil, err
		}
		out.Set(c.String(), MapValue(m))
	}
	return out, nil
}
