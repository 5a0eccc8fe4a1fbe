package onset

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestStrengthPositiveFlux(t *testing.T) {
	logSpec := [][]float64{
		{0, 1, 3, 3, 2},
		{0, 0, 1, 1, 1},
	}

	env, err := Strength(logSpec, StrengthConfig{Lag: 1, Pad: 1})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, env, []float64{0, 0.5, 1.5, 0, 0}, 1e-12)

	env, err = Strength(logSpec, DefaultStrengthConfig(2048, 512))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, env, []float64{0, 0, 0, 0.5, 1.5}, 1e-12)

	if _, err := Strength(logSpec, StrengthConfig{Lag: 0}); err == nil {
		t.Fatal("expected error for zero lag")
	}
}

func TestNormalize(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, Normalize([]float64{2, 4, 6}), []float64{0, 0.5, 1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Normalize([]float64{3, 3}), []float64{0, 0}, 0)
}

func TestPeakPick(t *testing.T) {
	x := []float64{0, 1, 0, 0, 0, 0.2, 0, 0, 0, 0.9, 1, 0}
	cfg := PeakConfig{PreMax: 1, PostMax: 2, PreAvg: 2, PostAvg: 3, Delta: 0.1}

	tests := []struct {
		name string
		wait int
		want []int
	}{
		{"no wait", 0, []int{1, 5, 10}},
		{"wait suppresses close peaks", 4, []int{1, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.Wait = tt.wait
			got, err := PeakPick(x, c)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("peaks = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("peaks = %v, want %v", got, tt.want)
				}
			}
		})
	}

	if _, err := PeakPick(x, PeakConfig{}); err == nil {
		t.Fatal("expected error for zero post windows")
	}
}

func TestDefaultPeakConfig(t *testing.T) {
	got := DefaultPeakConfig(22050, 512)
	want := PeakConfig{PreMax: 1, PostMax: 1, PreAvg: 4, PostAvg: 5, Delta: 0.07, Wait: 1}
	if got != want {
		t.Fatalf("DefaultPeakConfig = %+v, want %+v", got, want)
	}
}

func TestDetectConstantEnvelope(t *testing.T) {
	peaks, err := Detect(testutil.DC(0.3, 100), DefaultPeakConfig(22050, 512))
	if err != nil {
		t.Fatal(err)
	}
	if len(peaks) != 0 {
		t.Fatalf("constant envelope produced onsets %v", peaks)
	}
}

func TestFramesToTime(t *testing.T) {
	got := FramesToTime([]int{0, 43}, 22050, 512)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 43 * 512.0 / 22050}, 1e-12)
}

func TestAutocorrelate(t *testing.T) {
	got, err := Autocorrelate([]float64{1, 2, 3}, 0)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{14, 8, 3}, 1e-9)
}

// pulseTrain places unit pulses every period frames starting at offset.
func pulseTrain(n, offset, period int) []float64 {
	env := make([]float64, n)
	for i := offset; i < n; i += period {
		env[i] = 1
		if i+1 < n {
			env[i+1] = 0.3
		}
	}
	return env
}

func TestTempoOfPulseTrain(t *testing.T) {
	env := pulseTrain(800, 10, 21)
	bpm, err := Tempo(env, 22050, 512, DefaultTempoConfig())
	if err != nil {
		t.Fatal(err)
	}
	want := 60 * 22050.0 / 512 / 21
	if math.Abs(bpm-want) > 1e-9 {
		t.Fatalf("tempo = %v, want %v", bpm, want)
	}

	if _, err := Tempo(env, 0, 512, DefaultTempoConfig()); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestBeatTrackPulseTrain(t *testing.T) {
	env := pulseTrain(800, 10, 21)
	bpm, beats, err := BeatTrack(env, 22050, 512, DefaultBeatConfig())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(bpm-123.0469) > 0.01 {
		t.Fatalf("tempo = %v", bpm)
	}
	if len(beats) < 20 {
		t.Fatalf("only %d beats tracked: %v", len(beats), beats)
	}
	for i, b := range beats {
		if (b-10)%21 != 0 {
			t.Fatalf("beat %d at frame %d is off the pulse grid", i, b)
		}
		if i > 0 && b-beats[i-1] != 21 {
			t.Fatalf("beat interval %d at %d, want 21", b-beats[i-1], i)
		}
	}
}

func TestBeatTrackSilence(t *testing.T) {
	bpm, beats, err := BeatTrack(make([]float64, 200), 22050, 512, DefaultBeatConfig())
	if err != nil {
		t.Fatal(err)
	}
	if bpm != 0 || len(beats) != 0 {
		t.Fatalf("silence: tempo=%v beats=%v", bpm, beats)
	}

	if _, _, err := BeatTrack(make([]float64, 10), 22050, 512, BeatConfig{}); err == nil {
		t.Fatal("expected error for zero tightness")
	}
}
