package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cwbudde/algo-analysis/dsp/resample"
	"github.com/cwbudde/algo-analysis/dsp/signal"
)

type loadConfig struct {
	targetRate int
	quality    resample.Quality
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithTargetRate resamples the decoded audio to sampleRate. Zero keeps the
// file's native rate.
func WithTargetRate(sampleRate int) LoadOption {
	return func(c *loadConfig) {
		if sampleRate >= 0 {
			c.targetRate = sampleRate
		}
	}
}

// WithResampleQuality selects the anti-aliasing quality used by WithTargetRate.
func WithResampleQuality(q resample.Quality) LoadOption {
	return func(c *loadConfig) {
		c.quality = q
	}
}

// Load decodes the file at path into a mono buffer.
func Load(path string, opts ...LoadOption) (Buffer, error) {
	cfg := loadConfig{quality: resample.QualityBalanced}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Buffer{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return Buffer{}, err
	}
	if info.IsDir() {
		return Buffer{}, fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, err
	}
	defer f.Close()

	buf, err := Decode(f, ContainerFromPath(path))
	if err != nil {
		return Buffer{}, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.targetRate > 0 && cfg.targetRate != buf.SampleRate {
		samples, err := resample.Convert(buf.Samples, buf.SampleRate, cfg.targetRate, resample.WithQuality(cfg.quality))
		if err != nil {
			return Buffer{}, fmt.Errorf("%s: resample %d -> %d: %w", path, buf.SampleRate, cfg.targetRate, err)
		}
		buf = Buffer{Samples: samples, SampleRate: cfg.targetRate}
	}

	return buf, nil
}

// Decode reads an encoded stream and averages its channels to mono. Magic
// bytes decide the container; hint is used only when sniffing is
// inconclusive, as for headerless MP3 streams.
func Decode(r io.ReadSeeker, hint Container) (Buffer, error) {
	sniffed, err := Sniff(r)
	if err != nil {
		return Buffer{}, err
	}

	c := hint
	if sniffed != ContainerUnknown {
		c = sniffed
	}

	d, err := decode(r, c)
	if err != nil {
		return Buffer{}, err
	}
	if len(d.channels) == 0 {
		return Buffer{}, ErrEmptyStream
	}
	if d.sampleRate <= 0 {
		return Buffer{}, fmt.Errorf("invalid sample rate in stream: %d", d.sampleRate)
	}

	return Buffer{Samples: signal.Mean(d.channels), SampleRate: d.sampleRate}, nil
}
