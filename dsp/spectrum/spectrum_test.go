package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}
	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 || math.Abs(pow[1]-2) > 1e-12 {
		t.Fatalf("Power=%v want [25 2 0]", pow)
	}

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for t, v := range x {
			sum += v * cmplx.Exp(complex(0, -2*math.Pi*float64(k*t)/float64(n)))
		}
		out[k] = sum
	}
	return out
}

func TestFFTMatchesNaiveDFT(t *testing.T) {
	for _, n := range []int{8, 12, 64, 100} {
		fft, err := NewFFT(n)
		if err != nil {
			t.Fatalf("NewFFT(%d): %v", n, err)
		}

		noise := testutil.DeterministicNoise(int64(n), 1, n)
		src := make([]complex128, n)
		for i, v := range noise {
			src[i] = complex(v, 0)
		}

		got := make([]complex128, n)
		if err := fft.Forward(got, src); err != nil {
			t.Fatalf("Forward(%d): %v", n, err)
		}
		want := naiveDFT(src)
		for k := range got {
			if cmplx.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("n=%d bin %d: got %v want %v", n, k, got[k], want[k])
			}
		}

		back := make([]complex128, n)
		if err := fft.Inverse(back, got); err != nil {
			t.Fatalf("Inverse(%d): %v", n, err)
		}
		for i := range back {
			if cmplx.Abs(back[i]-src[i]) > 1e-9 {
				t.Fatalf("n=%d round trip sample %d: got %v want %v", n, i, back[i], src[i])
			}
		}
	}
}

func TestNewFFTInvalidSize(t *testing.T) {
	if _, err := NewFFT(0); err == nil {
		t.Fatal("expected error for size 0")
	}
}

func TestRealRoundTrip(t *testing.T) {
	for _, n := range []int{16, 15} {
		fft, err := NewFFT(n)
		if err != nil {
			t.Fatalf("NewFFT: %v", err)
		}
		x := testutil.DeterministicNoise(3, 1, n)
		half, err := fft.ForwardReal(x)
		if err != nil {
			t.Fatalf("ForwardReal: %v", err)
		}
		if len(half) != n/2+1 {
			t.Fatalf("bins = %d, want %d", len(half), n/2+1)
		}
		back, err := fft.InverseReal(half)
		if err != nil {
			t.Fatalf("InverseReal: %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, back, x, 1e-9)
	}
}

func TestHermitianMirror(t *testing.T) {
	half := []complex128{1 + 1i, 2 + 3i, 4 - 1i, 5 + 2i}
	full := HermitianMirror(half, 6)

	if imag(full[0]) != 0 {
		t.Fatalf("DC not real: %v", full[0])
	}
	if imag(full[3]) != 0 {
		t.Fatalf("Nyquist not real: %v", full[3])
	}
	if full[5] != cmplx.Conj(full[1]) || full[4] != cmplx.Conj(full[2]) {
		t.Fatalf("mirror mismatch: %v", full)
	}

	odd := HermitianMirror(half[:3], 5)
	if odd[4] != cmplx.Conj(odd[1]) || odd[3] != cmplx.Conj(odd[2]) {
		t.Fatalf("odd mirror mismatch: %v", odd)
	}
}
