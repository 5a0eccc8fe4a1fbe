package descriptive

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 {
		t.Fatalf("Mean = %v, want 5", s.Mean)
	}
	if math.Abs(s.Std-2) > 1e-12 {
		t.Fatalf("Std = %v, want 2 (population)", s.Std)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Fatalf("Min/Max = %v/%v, want 2/9", s.Min, s.Max)
	}
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Std) || !math.IsNaN(s.Min) || !math.IsNaN(s.Max) {
		t.Fatalf("Describe(nil) = %+v, want NaNs", s)
	}
	m, sd := MeanStd(nil)
	if !math.IsNaN(m) || !math.IsNaN(sd) {
		t.Fatal("MeanStd(nil) should be NaN")
	}
}

func TestNonZero(t *testing.T) {
	got := NonZero([]float64{0, 220, 0, 0, 440, -3})
	if len(got) != 2 || got[0] != 220 || got[1] != 440 {
		t.Fatalf("NonZero = %v, want [220 440]", got)
	}
}
