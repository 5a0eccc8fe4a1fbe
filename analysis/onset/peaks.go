package onset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-analysis/dsp/core"
)

// PeakConfig controls PeakPick. Window lengths are in frames.
type PeakConfig struct {
	PreMax  int
	PostMax int
	PreAvg  int
	PostAvg int
	Delta   float64
	Wait    int
}

// DefaultPeakConfig derives peak picking windows for the given frame rate:
// 30 ms local-max look-back, 100 ms averaging either side, 30 ms minimum gap
// and a 0.07 threshold above the local mean.
func DefaultPeakConfig(sampleRate, hopSize int) PeakConfig {
	frames := func(sec float64) int {
		return int(math.Floor(sec * float64(sampleRate) / float64(hopSize)))
	}
	return PeakConfig{
		PreMax:  frames(0.03),
		PostMax: frames(0) + 1,
		PreAvg:  frames(0.10),
		PostAvg: frames(0.10) + 1,
		Delta:   0.07,
		Wait:    frames(0.03),
	}
}

func (c PeakConfig) validate() error {
	if c.PreMax < 0 || c.PreAvg < 0 || c.Wait < 0 {
		return fmt.Errorf("onset peak pre-windows and wait must be >= 0: %+v", c)
	}
	if c.PostMax < 1 || c.PostAvg < 1 {
		return fmt.Errorf("onset peak post-windows must be >= 1: %+v", c)
	}
	if c.Delta < 0 {
		return fmt.Errorf("onset peak delta must be >= 0: %v", c.Delta)
	}
	return nil
}

// PeakPick returns the indices n where x[n] is the maximum of
// x[n-PreMax:n+PostMax], exceeds the mean of x[n-PreAvg:n+PostAvg] by at
// least Delta, and lies more than Wait frames after the previous peak.
// Zero samples are never peaks.
func PeakPick(x []float64, cfg PeakConfig) ([]int, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var peaks []int
	last := math.MinInt / 2
	for n, v := range x {
		if v == 0 {
			continue
		}

		lo := max(n-cfg.PreMax, 0)
		hi := min(n+cfg.PostMax, len(x))
		isMax := true
		for i := lo; i < hi; i++ {
			if x[i] > v {
				isMax = false
				break
			}
		}
		if !isMax {
			continue
		}

		lo = max(n-cfg.PreAvg, 0)
		hi = min(n+cfg.PostAvg, len(x))
		mean := 0.0
		for i := lo; i < hi; i++ {
			mean += x[i]
		}
		mean /= float64(hi - lo)
		if v < mean+cfg.Delta {
			continue
		}

		if n > last+cfg.Wait {
			peaks = append(peaks, n)
			last = n
		}
	}
	return peaks, nil
}

// Detect normalises env and returns the frames of its peaks. An envelope
// without variation yields no onsets.
func Detect(env []float64, cfg PeakConfig) ([]int, error) {
	norm := Normalize(env)
	return PeakPick(norm, cfg)
}

// FramesToTime converts frame indices to seconds.
func FramesToTime(frames []int, sampleRate, hopSize int) []float64 {
	cfg := core.AnalysisConfig{SampleRate: sampleRate, HopSize: hopSize}
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = cfg.FrameSeconds(f)
	}
	return out
}
