package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/audio"
)

var errBoom = errors.New("boom")

// stubAnalyzer returns fixed, easily recognisable results.
type stubAnalyzer struct {
	frames  int
	failOn  string
	pitches [][]float64
	mags    [][]float64
}

func (s *stubAnalyzer) fail(name string) error {
	if s.failOn == name {
		return errBoom
	}
	return nil
}

func (s *stubAnalyzer) rows(n int, v float64) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = s.row(v)
	}
	return out
}

func (s *stubAnalyzer) row(v float64) []float64 {
	out := make([]float64, s.frames)
	for i := range out {
		out[i] = v
	}
	return out
}

func (s *stubAnalyzer) MFCC(_ audio.Buffer, n int) ([][]float64, error) {
	return s.rows(n, 1), s.fail("mfcc")
}

func (s *stubAnalyzer) Delta(m [][]float64, order int) ([][]float64, error) {
	return s.rows(len(m), float64(order)), s.fail("delta")
}

func (s *stubAnalyzer) SpectralCentroid(audio.Buffer) ([]float64, error) {
	return []float64{1000, 2000, 3000}[:s.frames], s.fail("centroid")
}

func (s *stubAnalyzer) SpectralRolloff(audio.Buffer) ([]float64, error) {
	return s.row(4000), nil
}

func (s *stubAnalyzer) SpectralBandwidth(audio.Buffer) ([]float64, error) {
	return s.row(500), nil
}

func (s *stubAnalyzer) SpectralContrast(audio.Buffer) ([][]float64, error) {
	return s.rows(7, 10), nil
}

func (s *stubAnalyzer) ChromaSTFT(audio.Buffer) ([][]float64, error) {
	return s.rows(12, 0.5), s.fail("chroma_stft")
}

func (s *stubAnalyzer) ChromaCQT(audio.Buffer) ([][]float64, error) {
	return s.rows(12, 0.5), nil
}

func (s *stubAnalyzer) ChromaCENS(audio.Buffer) ([][]float64, error) {
	return s.rows(12, 0.5), nil
}

func (s *stubAnalyzer) ZeroCrossingRate(audio.Buffer) ([]float64, error) {
	return s.row(0.1), nil
}

func (s *stubAnalyzer) RMS(audio.Buffer) ([]float64, error) {
	return []float64{0.1, 0.2, 0.3}[:s.frames], nil
}

func (s *stubAnalyzer) BeatTrack(audio.Buffer) (float64, []int, error) {
	return 120, []int{0, 2}, s.fail("beat")
}

func (s *stubAnalyzer) OnsetStrength(audio.Buffer) ([]float64, error) {
	return s.row(0.3), nil
}

func (s *stubAnalyzer) OnsetFrames(audio.Buffer) ([]int, error) {
	return []int{1}, nil
}

func (s *stubAnalyzer) FramesToTime(frames []int, sampleRate int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f*512) / float64(sampleRate)
	}
	return out
}

func (s *stubAnalyzer) HPSS(buf audio.Buffer) ([]float64, []float64, error) {
	return buf.Samples, make([]float64, buf.Len()), s.fail("hpss")
}

func (s *stubAnalyzer) Piptrack(audio.Buffer) ([][]float64, [][]float64, error) {
	return s.pitches, s.mags, s.fail("piptrack")
}

func newStub() *stubAnalyzer {
	return &stubAnalyzer{
		frames: 3,
		// Frame 0 peaks at 220 Hz, frame 1 at 440 Hz, frame 2 is unvoiced.
		pitches: [][]float64{{220, 0, 0}, {230, 440, 0}},
		mags:    [][]float64{{0.9, 0, 0}, {0.1, 0.7, 0}},
	}
}

func testBuffer() audio.Buffer {
	return audio.Buffer{Samples: make([]float64, 22050), SampleRate: 22050}
}

func shapeOf(t *testing.T, m *Map, key string) string {
	t.Helper()
	v, ok := m.Get(key)
	if !ok {
		t.Fatalf("missing %q", key)
	}
	a, ok := v.Array()
	if !ok {
		t.Fatalf("%q is %v, want array", key, v.Kind())
	}
	return a.ShapeString()
}

func TestSpectralShapes(t *testing.T) {
	m, err := NewExtractor(newStub(), testBuffer()).Spectral()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"mfcc":              "(13, 3)",
		"mfcc_delta":        "(13, 3)",
		"mfcc_delta2":       "(13, 3)",
		"spectral_centroid": "(1, 3)",
		"spectral_contrast": "(7, 3)",
		"chroma_cens":       "(12, 3)",
	}
	for key, shape := range want {
		if got := shapeOf(t, m, key); got != shape {
			t.Errorf("%s shape = %s, want %s", key, got, shape)
		}
	}

	keys := m.Keys()
	names := CategorySpectral.Names()
	for i := range names {
		if keys[i] != names[i] {
			t.Fatalf("keys = %v, want %v", keys, names)
		}
	}
}

func TestErrorsAreWrappedWithFeatureName(t *testing.T) {
	tests := []struct {
		failOn string
		cat    Category
		prefix string
	}{
		{"mfcc", CategorySpectral, "mfcc: "},
		{"chroma_stft", CategorySpectral, "chroma_stft: "},
		{"beat", CategoryTemporal, "tempo: "},
		{"hpss", CategoryHarmonic, "harmonic_percussive: "},
		{"piptrack", CategoryPitch, "pitch: "},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			s := newStub()
			s.failOn = tt.failOn
			_, err := NewExtractor(s, testBuffer()).Category(tt.cat)
			if !errors.Is(err, errBoom) {
				t.Fatalf("err = %v, want wrapped errBoom", err)
			}
			if got := err.Error(); got[:len(tt.prefix)] != tt.prefix {
				t.Fatalf("err = %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}

func TestTemporalAndOnsets(t *testing.T) {
	e := NewExtractor(newStub(), testBuffer())

	tm, err := e.Temporal()
	if err != nil {
		t.Fatal(err)
	}
	beats, _ := tm.Get("beat_frames")
	if a, _ := beats.Array(); !a.Integer || a.ShapeString() != "(2,)" {
		t.Fatalf("beat_frames = %+v", a)
	}
	tempo, _ := tm.Get("tempo")
	if a, _ := tempo.Array(); a.Data[0] != 120 {
		t.Fatalf("tempo = %v", a.Data)
	}

	on, err := e.Onsets()
	if err != nil {
		t.Fatal(err)
	}
	times, _ := on.Get("onset_times")
	if a, _ := times.Array(); math.Abs(a.Data[0]-512.0/22050) > 1e-12 {
		t.Fatalf("onset_times = %v", a.Data)
	}
}

func TestPitchTrackPicksStrongestBin(t *testing.T) {
	m, err := NewExtractor(newStub(), testBuffer()).Pitch()
	if err != nil {
		t.Fatal(err)
	}
	v, _ := m.Get("pitch_track")
	a, _ := v.Array()
	want := []float64{220, 440, 0}
	for i := range want {
		if a.Data[i] != want[i] {
			t.Fatalf("pitch_track = %v, want %v", a.Data, want)
		}
	}
	if got := shapeOf(t, m, "pitch_matrix"); got != "(2, 3)" {
		t.Fatalf("pitch_matrix shape = %s", got)
	}
}

func TestAllNestsCategories(t *testing.T) {
	m, err := NewExtractor(newStub(), testBuffer()).All()
	if err != nil {
		t.Fatal(err)
	}
	keys := m.Keys()
	want := []string{"spectral", "temporal", "harmonic_percussive", "onsets", "pitch", "metadata"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	meta, _ := m.Get("metadata")
	mm, _ := meta.Map()
	dur, _ := mm.Get("duration")
	if a, _ := dur.Array(); a.Data[0] != 1 {
		t.Fatalf("duration = %v, want 1", a.Data)
	}
}

func TestSummary(t *testing.T) {
	m, err := NewExtractor(newStub(), testBuffer()).Summary()
	if err != nil {
		t.Fatal(err)
	}

	get := func(path ...string) float64 {
		t.Helper()
		cur := m
		for _, p := range path[:len(path)-1] {
			v, ok := cur.Get(p)
			if !ok {
				t.Fatalf("missing %v", path)
			}
			cur, _ = v.Map()
		}
		v, _ := cur.Get(path[len(path)-1])
		f, ok := v.Float()
		if !ok {
			t.Fatalf("%v is not a scalar", path)
		}
		return f
	}

	if got := get("spectral_centroid", "mean"); got != 2000 {
		t.Errorf("centroid mean = %v", got)
	}
	if got := get("rms", "max"); got != 0.3 {
		t.Errorf("rms max = %v", got)
	}
	if got := get("tempo", "value"); got != 120 {
		t.Errorf("tempo = %v", got)
	}
	if got := get("pitch", "mean"); got != 330 {
		t.Errorf("pitch mean = %v", got)
	}
}

func TestSummaryOmitsPitchWhenUnvoiced(t *testing.T) {
	s := newStub()
	s.pitches = [][]float64{{0, 0, 0}}
	s.mags = [][]float64{{0, 0, 0}}
	m, err := NewExtractor(s, testBuffer()).Summary()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Get("pitch"); ok {
		t.Fatal("pitch summary present for unvoiced input")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"all", CategoryAll},
		{"Spectral", CategorySpectral},
		{"harmonic", CategoryHarmonic},
		{"harmonic_percussive", CategoryHarmonic},
		{" onsets ", CategoryOnsets},
		{"pitch", CategoryPitch},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseCategory("timbre"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}
