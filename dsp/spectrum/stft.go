package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/dsp/window"
)

// Spectrogram holds a short-time Fourier transform as frames of
// non-negative frequency bins: Frames[t][k] for frame t and bin k.
type Spectrogram struct {
	FFTSize int
	HopSize int
	Frames  [][]complex128
}

// NumFrames returns the number of analysis frames.
func (s *Spectrogram) NumFrames() int { return len(s.Frames) }

// NumBins returns the number of frequency bins per frame (FFTSize/2+1).
func (s *Spectrogram) NumBins() int { return s.FFTSize/2 + 1 }

// Magnitude returns |X| as a frames x bins matrix.
func (s *Spectrogram) Magnitude() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for t, frame := range s.Frames {
		out[t] = Magnitude(frame)
	}
	return out
}

// Power returns |X|^2 as a frames x bins matrix.
func (s *Spectrogram) Power() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for t, frame := range s.Frames {
		out[t] = Power(frame)
	}
	return out
}

// STFTConfig controls framing for STFT and ISTFT.
type STFTConfig struct {
	FFTSize int
	HopSize int
	Window  window.Type
	// Center pads the signal with FFTSize/2 zeros on both sides so frame t
	// is centred on sample t*HopSize.
	Center bool
}

// DefaultSTFTConfig returns a centred periodic-Hann configuration with a
// quarter-frame hop.
func DefaultSTFTConfig(fftSize int) STFTConfig {
	return STFTConfig{
		FFTSize: fftSize,
		HopSize: max(fftSize/4, 1),
		Window:  window.TypeHann,
		Center:  true,
	}
}

func (c STFTConfig) validate() error {
	if c.FFTSize <= 0 {
		return fmt.Errorf("stft fft size must be > 0: %d", c.FFTSize)
	}
	if c.HopSize <= 0 {
		return fmt.Errorf("stft hop size must be > 0: %d", c.HopSize)
	}
	return nil
}

// FrameCount returns the number of frames STFT produces for n samples.
func (c STFTConfig) FrameCount(n int) int {
	if c.Center {
		n += 2 * (c.FFTSize / 2)
	}
	if n < c.FFTSize {
		return 0
	}
	return 1 + (n-c.FFTSize)/c.HopSize
}

// STFT computes the short-time Fourier transform of x.
//
// Signals shorter than one frame are zero-padded so at least one frame is
// produced for non-empty input.
func STFT(x []float64, cfg STFTConfig) (*Spectrogram, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fft, err := NewFFT(cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	padded := x
	if cfg.Center {
		pad := cfg.FFTSize / 2
		padded = make([]float64, len(x)+2*pad)
		copy(padded[pad:], x)
	}
	if len(padded) < cfg.FFTSize {
		tmp := make([]float64, cfg.FFTSize)
		copy(tmp, padded)
		padded = tmp
	}

	win := window.Generate(cfg.Window, cfg.FFTSize, window.WithPeriodic())
	frames := cfg.FrameCount(len(x))
	if frames == 0 {
		frames = 1
	}

	spec := &Spectrogram{
		FFTSize: cfg.FFTSize,
		HopSize: cfg.HopSize,
		Frames:  make([][]complex128, frames),
	}

	buf := make([]float64, cfg.FFTSize)
	for t := 0; t < frames; t++ {
		start := t * cfg.HopSize
		for i := range buf {
			buf[i] = padded[start+i] * win[i]
		}

		bins, err := fft.ForwardReal(buf)
		if err != nil {
			return nil, fmt.Errorf("stft frame %d: %w", t, err)
		}
		spec.Frames[t] = bins
	}

	return spec, nil
}

// ISTFT inverts a spectrogram by weighted overlap-add with squared-window
// normalisation. When length > 0 the result is trimmed or zero-padded to
// exactly length samples.
func ISTFT(spec *Spectrogram, cfg STFTConfig, length int) ([]float64, error) {
	if spec == nil {
		return nil, fmt.Errorf("istft: nil spectrogram")
	}
	cfg.FFTSize = spec.FFTSize
	cfg.HopSize = spec.HopSize
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fft, err := NewFFT(cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	n := cfg.FFTSize + cfg.HopSize*(len(spec.Frames)-1)
	if len(spec.Frames) == 0 {
		n = 0
	}
	out := make([]float64, n)
	norm := make([]float64, n)
	win := window.Generate(cfg.Window, cfg.FFTSize, window.WithPeriodic())

	for t, bins := range spec.Frames {
		frame, err := fft.InverseReal(bins)
		if err != nil {
			return nil, fmt.Errorf("istft frame %d: %w", t, err)
		}

		start := t * cfg.HopSize
		for i, v := range frame {
			out[start+i] += v * win[i]
			norm[start+i] += win[i] * win[i]
		}
	}

	for i := range out {
		if norm[i] > 1e-10 {
			out[i] /= norm[i]
		}
	}

	if cfg.Center {
		pad := cfg.FFTSize / 2
		if pad < len(out) {
			out = out[pad:]
		} else {
			out = out[:0]
		}
	}

	if length > 0 {
		if len(out) >= length {
			out = out[:length]
		} else {
			tmp := make([]float64, length)
			copy(tmp, out)
			out = tmp
		}
	}

	return out, nil
}
