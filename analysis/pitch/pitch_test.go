package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/dsp/spectrum"
	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestTrackSine(t *testing.T) {
	tests := []float64{220, 440, 1000, 2500}
	for _, freq := range tests {
		x := testutil.DeterministicSine(freq, 22050, 0.8, 22050)
		spec, err := spectrum.STFT(x, spectrum.DefaultSTFTConfig(2048))
		if err != nil {
			t.Fatal(err)
		}

		pitches, mags, err := Track(spec.Magnitude(), 22050, 2048, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if len(pitches) != 1025 || len(pitches[0]) != spec.NumFrames() {
			t.Fatalf("shape = %dx%d", len(pitches), len(pitches[0]))
		}

		track := Dominant(pitches, mags)
		mid := len(track) / 2
		if math.Abs(track[mid]-freq) > 5 {
			t.Fatalf("%v Hz: dominant pitch = %v", freq, track[mid])
		}
	}
}

func TestTrackRespectsRange(t *testing.T) {
	x := testutil.DeterministicSine(100, 22050, 0.8, 8192)
	spec, err := spectrum.STFT(x, spectrum.DefaultSTFTConfig(2048))
	if err != nil {
		t.Fatal(err)
	}
	pitches, mags, err := Track(spec.Magnitude(), 22050, 2048, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range Dominant(pitches, mags) {
		if p != 0 && p < 150 {
			t.Fatalf("pitch %v below fmin", p)
		}
	}
}

func TestTrackSilence(t *testing.T) {
	mag := [][]float64{make([]float64, 1025), make([]float64, 1025)}
	pitches, mags, err := Track(mag, 22050, 2048, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, Dominant(pitches, mags), []float64{0, 0}, 0)
}

func TestTrackRejectsBadInput(t *testing.T) {
	if _, _, err := Track(nil, 22050, 2048, DefaultConfig()); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, _, err := Track([][]float64{make([]float64, 5)}, 22050, 2048, DefaultConfig()); err == nil {
		t.Fatal("expected error for bin mismatch")
	}
	if _, _, err := Track([][]float64{make([]float64, 5)}, 0, 8, DefaultConfig()); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
