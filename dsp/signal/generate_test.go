package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestCycleSine(t *testing.T) {
	s, err := Cycle(ShapeSine, 2048)
	if err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if len(s) != 2048 {
		t.Fatalf("len = %d, want 2048", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[512]-1) > 1e-12 {
		t.Fatalf("s[512] = %v, want 1", s[512])
	}
}

func TestCycleSaw(t *testing.T) {
	s, err := Cycle(ShapeSaw, 100)
	if err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}
	if s[0] != -1 {
		t.Fatalf("s[0] = %v, want -1", s[0])
	}
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			t.Fatalf("saw not increasing at %d", i)
		}
	}
	if s[len(s)-1] >= 1 {
		t.Fatalf("last = %v, want < 1", s[len(s)-1])
	}
}

func TestCycleSquareAndTriangle(t *testing.T) {
	sq, _ := Cycle(ShapeSquare, 8)
	want := []float64{1, 1, 1, 1, -1, -1, -1, -1}
	testutil.RequireSliceNearlyEqual(t, sq, want, 0)

	tri, _ := Cycle(ShapeTriangle, 8)
	testutil.RequireSliceNearlyEqual(t, tri, []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}, 1e-12)
}

func TestCycleInvalid(t *testing.T) {
	if _, err := Cycle(ShapeSine, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := Cycle(Shape(99), 4); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.5, -0.25}, 1.0)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, -0.5}, 1e-12)

	silent, err := Normalize([]float64{0, 0}, 0.9)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, silent, []float64{0, 0}, 0)

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Fatal("expected error for negative peak")
	}
}

func TestLerpAndMean(t *testing.T) {
	dst := make([]float64, 2)
	Lerp(dst, []float64{0, 2}, []float64{4, 6}, 0.25)
	testutil.RequireSliceNearlyEqual(t, dst, []float64{1, 3}, 1e-12)

	m := Mean([][]float64{{1, 2}, {3, 4}})
	testutil.RequireSliceNearlyEqual(t, m, []float64{2, 3}, 1e-12)

	if Mean(nil) != nil {
		t.Fatal("Mean(nil) should be nil")
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak = %v, want 0.7", got)
	}
}
