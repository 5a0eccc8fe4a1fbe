package analysis

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-analysis/analysis/chroma"
	"github.com/cwbudde/algo-analysis/analysis/hpss"
	"github.com/cwbudde/algo-analysis/analysis/mel"
	"github.com/cwbudde/algo-analysis/analysis/onset"
	"github.com/cwbudde/algo-analysis/analysis/pitch"
	"github.com/cwbudde/algo-analysis/audio"
	"github.com/cwbudde/algo-analysis/dsp/core"
	"github.com/cwbudde/algo-analysis/dsp/spectrum"
	"github.com/cwbudde/algo-analysis/feature"
	frequencystats "github.com/cwbudde/algo-analysis/stats/frequency"
	timestats "github.com/cwbudde/algo-analysis/stats/time"
)

// ErrEmptyBuffer is returned when a buffer has no samples or no sample rate.
var ErrEmptyBuffer = errors.New("analysis: empty buffer")

var _ feature.Analyzer = (*Library)(nil)

// Library computes features from audio buffers.
type Library struct {
	cfg Config

	mu    sync.Mutex
	cache *bufferCache
}

// bufferCache holds derived data for one buffer.
type bufferCache struct {
	data *float64
	n    int
	sr   int

	spec   *spectrum.Spectrogram
	mag    [][]float64
	power  [][]float64
	logMel [][]float64
	env    []float64
	cqt    [][]float64
}

func (c *bufferCache) matches(buf audio.Buffer) bool {
	return c != nil && buf.Len() > 0 && c.data == &buf.Samples[0] && c.n == buf.Len() && c.sr == buf.SampleRate
}

// New returns a Library with the default configuration modified by opts.
func New(opts ...Option) (*Library, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Library{cfg: cfg}, nil
}

// Config returns the active configuration.
func (l *Library) Config() Config { return l.cfg }

func (l *Library) stftConfig() spectrum.STFTConfig {
	return spectrum.STFTConfig{
		FFTSize: l.cfg.FFTSize,
		HopSize: l.cfg.HopSize,
		Window:  l.cfg.Window,
		Center:  true,
	}
}

func (l *Library) frameConfig(pad timestats.PadMode) timestats.FrameConfig {
	return timestats.FrameConfig{Length: l.cfg.FFTSize, Hop: l.cfg.HopSize, Center: true, Pad: pad}
}

func checkBuffer(buf audio.Buffer) error {
	if buf.Len() == 0 || buf.SampleRate <= 0 {
		return fmt.Errorf("%w: %d samples at %d Hz", ErrEmptyBuffer, buf.Len(), buf.SampleRate)
	}
	return nil
}

// derived returns the cache entry for buf, computing the spectrogram when
// buf differs from the cached buffer. Callers hold l.mu.
func (l *Library) derived(buf audio.Buffer) (*bufferCache, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}

	if c := l.cache; c.matches(buf) {
		return c, nil
	}

	spec, err := spectrum.STFT(buf.Samples, l.stftConfig())
	if err != nil {
		return nil, err
	}
	c := &bufferCache{
		data:  &buf.Samples[0],
		n:     buf.Len(),
		sr:    buf.SampleRate,
		spec:  spec,
		mag:   spec.Magnitude(),
		power: spec.Power(),
	}
	l.cache = c
	return c, nil
}

func (l *Library) magnitude(buf audio.Buffer) ([][]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, err := l.derived(buf)
	if err != nil {
		return nil, err
	}
	return c.mag, nil
}

func (l *Library) power(buf audio.Buffer) ([][]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, err := l.derived(buf)
	if err != nil {
		return nil, err
	}
	return c.power, nil
}

// LogMel returns the bands x frames log-power mel spectrogram, clipped 80 dB
// below its peak.
func (l *Library) LogMel(buf audio.Buffer) ([][]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, err := l.derived(buf)
	if err != nil {
		return nil, err
	}
	if c.logMel != nil {
		return c.logMel, nil
	}

	fb, err := l.filterbank(buf.SampleRate)
	if err != nil {
		return nil, err
	}
	melPower, err := mel.Spectrogram(c.power, fb)
	if err != nil {
		return nil, err
	}
	c.logMel = mel.PowerToDB(melPower, 80)
	return c.logMel, nil
}

func (l *Library) filterbank(sampleRate int) (*mat.Dense, error) {
	cfg := mel.DefaultFilterbankConfig(sampleRate, l.cfg.FFTSize)
	cfg.NumMels = l.cfg.NumMels
	return mel.Filterbank(cfg)
}

// MFCC returns n x frames mel-frequency cepstral coefficients.
func (l *Library) MFCC(buf audio.Buffer, n int) ([][]float64, error) {
	logMel, err := l.LogMel(buf)
	if err != nil {
		return nil, err
	}
	return mel.MFCC(logMel, n)
}

// Delta returns regression deltas over a nine-frame window.
func (l *Library) Delta(m [][]float64, order int) ([][]float64, error) {
	return mel.Delta(m, mel.DefaultDeltaWidth, order)
}

func (l *Library) perFrame(buf audio.Buffer, fn func([]float64, float64) float64) ([]float64, error) {
	mag, err := l.magnitude(buf)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(mag))
	sr := float64(buf.SampleRate)
	for t, frame := range mag {
		out[t] = fn(frame, sr)
	}
	return out, nil
}

// SpectralCentroid returns the centroid of every frame in Hz.
func (l *Library) SpectralCentroid(buf audio.Buffer) ([]float64, error) {
	return l.perFrame(buf, frequencystats.Centroid)
}

// SpectralRolloff returns the frequency below which RolloffPercent of each
// frame's magnitude lies.
func (l *Library) SpectralRolloff(buf audio.Buffer) ([]float64, error) {
	return l.perFrame(buf, func(mag []float64, sr float64) float64 {
		return frequencystats.Rolloff(mag, sr, l.cfg.RolloffPercent)
	})
}

// SpectralBandwidth returns the second-order spread around the centroid.
func (l *Library) SpectralBandwidth(buf audio.Buffer) ([]float64, error) {
	return l.perFrame(buf, func(mag []float64, sr float64) float64 {
		return frequencystats.Spread(mag, sr, 2)
	})
}

// SpectralContrast returns (Bands+1) x frames octave-band contrast in dB.
func (l *Library) SpectralContrast(buf audio.Buffer) ([][]float64, error) {
	mag, err := l.magnitude(buf)
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, len(mag))
	for t, frame := range mag {
		cols[t] = frequencystats.Contrast(frame, float64(buf.SampleRate), l.cfg.Contrast)
	}
	return core.Transpose(cols), nil
}

// ChromaSTFT returns the 12 x frames STFT chromagram.
func (l *Library) ChromaSTFT(buf audio.Buffer) ([][]float64, error) {
	power, err := l.power(buf)
	if err != nil {
		return nil, err
	}
	return chroma.STFT(power, buf.SampleRate, l.cfg.FFTSize)
}

// ChromaCQT returns the 12 x frames constant-Q chromagram.
func (l *Library) ChromaCQT(buf audio.Buffer) ([][]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, err := l.derived(buf)
	if err != nil {
		return nil, err
	}
	if c.cqt == nil {
		if c.cqt, err = chroma.CQT(c.mag, buf.SampleRate, l.cfg.FFTSize, chroma.DefaultCQTConfig()); err != nil {
			return nil, err
		}
	}
	return c.cqt, nil
}

// ChromaCENS returns the 12 x frames smoothed CENS chromagram.
func (l *Library) ChromaCENS(buf audio.Buffer) ([][]float64, error) {
	cqt, err := l.ChromaCQT(buf)
	if err != nil {
		return nil, err
	}
	return chroma.CENS(cqt, l.cfg.CENSSmoothing)
}

// ZeroCrossingRate returns the fraction of sign changes per frame.
func (l *Library) ZeroCrossingRate(buf audio.Buffer) ([]float64, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	return timestats.ZeroCrossingRate(buf.Samples, l.frameConfig(timestats.PadEdge)), nil
}

// RMS returns the root-mean-square energy per frame.
func (l *Library) RMS(buf audio.Buffer) ([]float64, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	return timestats.FrameRMS(buf.Samples, l.frameConfig(timestats.PadConstant)), nil
}

// OnsetStrength returns the spectral flux onset envelope.
func (l *Library) OnsetStrength(buf audio.Buffer) ([]float64, error) {
	logMel, err := l.LogMel(buf)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	c := l.cache
	if c.matches(buf) && c.env != nil {
		return c.env, nil
	}
	env, err := onset.Strength(logMel, onset.DefaultStrengthConfig(l.cfg.FFTSize, l.cfg.HopSize))
	if err != nil {
		return nil, err
	}
	if c.matches(buf) {
		c.env = env
	}
	return env, nil
}

// OnsetFrames returns the frames of detected onsets.
func (l *Library) OnsetFrames(buf audio.Buffer) ([]int, error) {
	env, err := l.OnsetStrength(buf)
	if err != nil {
		return nil, err
	}
	return onset.Detect(env, onset.DefaultPeakConfig(buf.SampleRate, l.cfg.HopSize))
}

// FramesToTime converts frame indices to seconds at the configured hop.
func (l *Library) FramesToTime(frames []int, sampleRate int) []float64 {
	return onset.FramesToTime(frames, sampleRate, l.cfg.HopSize)
}

// BeatTrack returns the tempo in BPM and the beat frames.
func (l *Library) BeatTrack(buf audio.Buffer) (float64, []int, error) {
	env, err := l.OnsetStrength(buf)
	if err != nil {
		return 0, nil, err
	}
	tempo, beats, err := onset.BeatTrack(env, buf.SampleRate, l.cfg.HopSize, l.cfg.Beat)
	if beats == nil {
		beats = []int{}
	}
	return tempo, beats, err
}

// HPSS splits buf into harmonic and percussive signals.
func (l *Library) HPSS(buf audio.Buffer) ([]float64, []float64, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, nil, err
	}
	return hpss.Separate(buf.Samples, l.stftConfig(), l.cfg.HPSS)
}

// Piptrack returns bins x frames pitch and magnitude matrices.
func (l *Library) Piptrack(buf audio.Buffer) ([][]float64, [][]float64, error) {
	mag, err := l.magnitude(buf)
	if err != nil {
		return nil, nil, err
	}
	return pitch.Track(mag, buf.SampleRate, l.cfg.FFTSize, l.cfg.Pitch)
}
