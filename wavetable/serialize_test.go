package wavetable

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-analysis/audio"
	"github.com/cwbudde/algo-analysis/dsp/signal"
)

func TestRender(t *testing.T) {
	a, _ := Sine(32)
	b, _ := Square(32)
	before := append(Table(nil), a...)
	flat, err := Render(Stack{a, b})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(flat) != 64 {
		t.Fatalf("len = %d, want 64", len(flat))
	}
	if math.Abs(signal.Peak(flat)-SavePeak) > 1e-12 {
		t.Fatalf("peak = %v, want %v", signal.Peak(flat), SavePeak)
	}
	for i := range a {
		if a[i] != before[i] {
			t.Fatal("Render must not modify the stack")
		}
	}

	silent, err := Render(Stack{make(Table, 4)})
	if err != nil {
		t.Fatalf("Render(silent) error = %v", err)
	}
	if signal.Peak(silent) != 0 {
		t.Fatal("silent stack should stay silent")
	}

	if _, err := Render(nil); err == nil {
		t.Fatal("expected error for empty stack")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.wav")
	table, _ := Saw(256)

	cfg := DefaultConfig()
	if err := Save(path, table.Stack(), cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	buf, err := audio.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if buf.SampleRate != cfg.SampleRate {
		t.Fatalf("sample rate = %d, want %d", buf.SampleRate, cfg.SampleRate)
	}
	if buf.Len() != 256 {
		t.Fatalf("len = %d, want 256", buf.Len())
	}
	if math.Abs(buf.Samples[0]+SavePeak) > 1e-3 {
		t.Fatalf("first sample = %v, want %v", buf.Samples[0], -SavePeak)
	}
}

func TestSaveValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	table, _ := Sine(8)
	cfg := DefaultConfig()
	cfg.BitDepth = 20
	if err := Save(path, table.Stack(), cfg); err == nil {
		t.Fatal("expected error for 20-bit depth")
	}
}
