package frequency

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= tol
}

func makeSingleBinSpectrum(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}
	return mag
}

func makeFlatSpectrum(n int, amplitude float64) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		mag[i] = amplitude
	}
	return mag
}

func TestCentroidSingleBin(t *testing.T) {
	mag := makeSingleBinSpectrum(513, 100, 1)
	want := 100 * 44100.0 / 1024
	if got := Centroid(mag, 44100); !almostEqual(got, want, 1e-9) {
		t.Fatalf("Centroid = %v, want %v", got, want)
	}
}

func TestCentroidEmptyAndZero(t *testing.T) {
	if Centroid(nil, 44100) != 0 {
		t.Fatal("Centroid(nil) should be 0")
	}
	if Centroid(make([]float64, 10), 44100) != 0 {
		t.Fatal("Centroid(zeros) should be 0")
	}
}

func TestSpread(t *testing.T) {
	if got := Spread(makeSingleBinSpectrum(9, 4, 1), 16, 2); got != 0 {
		t.Fatalf("single bin spread = %v, want 0", got)
	}

	// Two equal bins at 1 Hz and 3 Hz around a 2 Hz centroid.
	mag := []float64{0, 1, 0, 1, 0}
	if got := Spread(mag, 8, 2); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("Spread = %v, want 1", got)
	}
	if got := Spread(mag, 8, 1); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("Spread p=1 = %v, want 1", got)
	}
	if Spread(mag, 8, 0) != 0 {
		t.Fatal("p <= 0 should return 0")
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness(makeFlatSpectrum(64, 0.3)); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("flat spectrum flatness = %v, want 1", got)
	}
	if got := Flatness(makeSingleBinSpectrum(64, 10, 1)); got != 0 {
		t.Fatalf("tone flatness = %v, want 0", got)
	}
	if Flatness(nil) != 0 {
		t.Fatal("empty flatness should be 0")
	}
}

func TestRolloff(t *testing.T) {
	mag := makeFlatSpectrum(11, 1)
	// 85 % of 11 bins is reached at cumulative 9.35, i.e. bin 9.
	want := 9 * 1000.0 / 20
	if got := Rolloff(mag, 1000, 0.85); !almostEqual(got, want, 1e-12) {
		t.Fatalf("Rolloff = %v, want %v", got, want)
	}
	if Rolloff(make([]float64, 5), 1000, 0.85) != 0 {
		t.Fatal("zero spectrum rolloff should be 0")
	}
	if got := Rolloff(makeSingleBinSpectrum(11, 3, 2), 1000, 0.85); !almostEqual(got, 150, 1e-12) {
		t.Fatalf("Rolloff = %v, want 150", got)
	}
}

func TestContrastShape(t *testing.T) {
	mag := makeFlatSpectrum(1025, 1)
	c := Contrast(mag, 22050, DefaultContrastConfig())
	if len(c) != 7 {
		t.Fatalf("len = %d, want 7", len(c))
	}
	for i, v := range c {
		if !almostEqual(v, 0, 1e-9) {
			t.Fatalf("flat spectrum contrast[%d] = %v, want 0", i, v)
		}
	}
}

func TestContrastPeakyBand(t *testing.T) {
	mag := makeFlatSpectrum(1025, 0.01)
	// 1 kHz lies in the 800-1600 Hz band (index 3).
	bin := int(math.Round(1000 * 2048 / 22050.0))
	mag[bin] = 10

	c := Contrast(mag, 22050, DefaultContrastConfig())
	if c[3] <= c[0] || c[3] < 20 {
		t.Fatalf("contrast = %v, want a strong peak in band 3", c)
	}
}

func TestBinFrequencies(t *testing.T) {
	f := BinFrequencies(5, 8000)
	if f[4] != 4000 || f[1] != 1000 {
		t.Fatalf("BinFrequencies = %v", f)
	}
	if len(BinFrequencies(1, 8000)) != 1 {
		t.Fatal("expected single zero bin")
	}
}
