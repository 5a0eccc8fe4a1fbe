package resample

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); err == nil {
		t.Fatal("expected error for up=0")
	}
	if _, err := NewRational(1, 0); err == nil {
		t.Fatal("expected error for down=0")
	}
	if _, err := NewForRates(0, 22050); err != ErrInvalidRate {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	up, down := r.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestPredictOutputLenMatchesProcess(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	in := testutil.DeterministicSine(1000, 48000, 1, 257)
	want := r.PredictOutputLen(len(in))
	got := len(r.Process(in))
	if got != want {
		t.Fatalf("len(out) = %d, want %d", got, want)
	}
}

func TestStreamingConsistency(t *testing.T) {
	r1, _ := NewRational(3, 2)
	r2, _ := NewRational(3, 2)
	in := testutil.DeterministicNoise(7, 1, 1000)

	whole := r1.Process(in)
	var parts []float64
	for i := 0; i < len(in); i += 97 {
		end := min(i+97, len(in))
		parts = append(parts, r2.Process(in[i:end])...)
	}

	testutil.RequireSliceNearlyEqual(t, parts, whole, 1e-12)
}

func TestConvertLength(t *testing.T) {
	tests := []struct {
		inRate, outRate, n int
	}{
		{44100, 22050, 44100},
		{48000, 22050, 4800},
		{22050, 44100, 1000},
		{8000, 22050, 333},
	}
	for _, tc := range tests {
		out, err := Convert(make([]float64, tc.n), tc.inRate, tc.outRate)
		if err != nil {
			t.Fatalf("Convert(%d->%d): %v", tc.inRate, tc.outRate, err)
		}
		want := int(math.Round(float64(tc.n) * float64(tc.outRate) / float64(tc.inRate)))
		if len(out) != want {
			t.Fatalf("%d->%d len=%d want %d", tc.inRate, tc.outRate, len(out), want)
		}
	}
}

func TestConvertIdentityCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	out, err := Convert(in, 22050, 22050)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	out[0] = 9
	if in[0] != 1 {
		t.Fatal("Convert should not alias its input")
	}
}

func TestConvertPreservesLowTone(t *testing.T) {
	const inRate, outRate = 44100, 22050
	in := testutil.DeterministicSine(440, inRate, 0.8, inRate)
	out, err := Convert(in, inRate, outRate)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := testutil.DeterministicSine(440, outRate, 0.8, len(out))

	// Ignore filter settling at both ends.
	diff, err := testutil.MaxAbsDiff(out[200:len(out)-200], want[200:len(want)-200])
	if err != nil {
		t.Fatal(err)
	}
	if diff > 0.01 {
		t.Fatalf("max deviation %v exceeds 0.01", diff)
	}
}

func TestConvertEmpty(t *testing.T) {
	out, err := Convert(nil, 44100, 22050)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}
