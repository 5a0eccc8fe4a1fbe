package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-analysis/internal/testutil"
)

func TestSTFTShape(t *testing.T) {
	x := testutil.DeterministicSine(440, 22050, 1, 22050)
	cfg := DefaultSTFTConfig(2048)

	spec, err := STFT(x, cfg)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}

	wantFrames := 1 + len(x)/cfg.HopSize
	if spec.NumFrames() != wantFrames {
		t.Fatalf("frames = %d, want %d", spec.NumFrames(), wantFrames)
	}
	if spec.NumBins() != 1025 || len(spec.Frames[0]) != 1025 {
		t.Fatalf("bins = %d/%d, want 1025", spec.NumBins(), len(spec.Frames[0]))
	}
}

func TestSTFTPeakBin(t *testing.T) {
	const sr = 22050.0
	const n = 2048
	freq := 20 * sr / n
	x := testutil.DeterministicSine(freq, sr, 1, 8192)

	spec, err := STFT(x, DefaultSTFTConfig(n))
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}

	mag := spec.Magnitude()[spec.NumFrames()/2]
	best := 0
	for k, v := range mag {
		if v > mag[best] {
			best = k
		}
	}
	if best != 20 {
		t.Fatalf("peak bin = %d, want 20", best)
	}
}

func TestSTFTShortInput(t *testing.T) {
	spec, err := STFT([]float64{1, 2, 3}, STFTConfig{FFTSize: 64, HopSize: 16})
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}
	if spec.NumFrames() != 1 {
		t.Fatalf("frames = %d, want 1", spec.NumFrames())
	}
}

func TestSTFTInvalidConfig(t *testing.T) {
	if _, err := STFT([]float64{1}, STFTConfig{FFTSize: 0, HopSize: 1}); err == nil {
		t.Fatal("expected error for zero fft size")
	}
	if _, err := STFT([]float64{1}, STFTConfig{FFTSize: 8, HopSize: 0}); err == nil {
		t.Fatal("expected error for zero hop")
	}
}

func TestISTFTRoundTrip(t *testing.T) {
	x := testutil.DeterministicNoise(11, 0.5, 4000)
	cfg := DefaultSTFTConfig(512)

	spec, err := STFT(x, cfg)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}

	y, err := ISTFT(spec, cfg, len(x))
	if err != nil {
		t.Fatalf("ISTFT: %v", err)
	}
	if len(y) != len(x) {
		t.Fatalf("len = %d, want %d", len(y), len(x))
	}

	// Edges are attenuated by the window; compare the interior.
	for i := 512; i < len(x)-512; i++ {
		if math.Abs(y[i]-x[i]) > 1e-8 {
			t.Fatalf("sample %d: got %v want %v", i, y[i], x[i])
		}
	}
}
