package onset

import (
	"fmt"
	"math"
	"slices"
)

// BeatConfig controls BeatTrack.
type BeatConfig struct {
	// BPM fixes the tempo; zero estimates it with Tempo.
	BPM float64
	// Tightness penalises deviation of inter-beat intervals from the
	// tempo period.
	Tightness float64
	// Trim drops weak beats at the start and end.
	Trim  bool
	Tempo TempoConfig
}

// DefaultBeatConfig estimates the tempo and uses tightness 100 with
// trimming.
func DefaultBeatConfig() BeatConfig {
	return BeatConfig{Tightness: 100, Trim: true, Tempo: DefaultTempoConfig()}
}

// BeatTrack returns the tempo and the frames of beat events found by
// dynamic programming over the onset envelope. A silent envelope yields a
// tempo of 0 and no beats.
func BeatTrack(env []float64, sampleRate, hopSize int, cfg BeatConfig) (float64, []int, error) {
	if cfg.Tightness <= 0 {
		return 0, nil, fmt.Errorf("beat tightness must be > 0: %v", cfg.Tightness)
	}
	if !slices.ContainsFunc(env, func(v float64) bool { return v != 0 }) {
		return 0, nil, nil
	}

	bpm := cfg.BPM
	if bpm <= 0 {
		var err error
		if bpm, err = Tempo(env, sampleRate, hopSize, cfg.Tempo); err != nil {
			return 0, nil, err
		}
		if bpm <= 0 {
			return 0, nil, nil
		}
	}

	frameRate := float64(sampleRate) / float64(hopSize)
	period := int(math.Round(60 * frameRate / bpm))
	if period < 1 {
		return bpm, nil, nil
	}

	local := localScore(normalizeStd(env), period)
	backlink, cum := trackDP(local, period, cfg.Tightness)

	beats := []int{lastBeat(cum)}
	for backlink[beats[len(beats)-1]] >= 0 {
		beats = append(beats, backlink[beats[len(beats)-1]])
	}
	slices.Reverse(beats)

	return bpm, trimBeats(local, beats, cfg.Trim), nil
}

func normalizeStd(env []float64) []float64 {
	out := slices.Clone(env)
	if len(env) < 2 {
		return out
	}

	mean := 0.0
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))
	ss := 0.0
	for _, v := range env {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(env)-1))
	if std > 0 {
		for i := range out {
			out[i] /= std
		}
	}
	return out
}

// localScore smooths the envelope with a Gaussian spanning one period either
// side.
func localScore(env []float64, period int) []float64 {
	win := make([]float64, 2*period+1)
	for i := range win {
		x := float64(i-period) * 32 / float64(period)
		win[i] = math.Exp(-0.5 * x * x)
	}
	return convolveSame(env, win)
}

func trackDP(local []float64, period int, tightness float64) ([]int, []float64) {
	backlink := make([]int, len(local))
	cum := make([]float64, len(local))

	// Candidate predecessors lie between two periods and half a period back.
	lo := -2 * period
	hi := min(-int(math.RoundToEven(float64(period)/2)), -1)
	offsets := make([]int, 0, hi-lo+1)
	txwt := make([]float64, 0, hi-lo+1)
	for o := lo; o <= hi; o++ {
		r := math.Log(-float64(o) / float64(period))
		offsets = append(offsets, o)
		txwt = append(txwt, -tightness*r*r)
	}

	threshold := 0.01 * slices.Max(local)
	first := true
	for i, score := range local {
		best := -1
		bestVal := math.Inf(-1)
		for j, o := range offsets {
			v := txwt[j]
			if i+o >= 0 {
				v += cum[i+o]
			}
			if v > bestVal {
				best, bestVal = j, v
			}
		}
		cum[i] = score + bestVal

		if first && score < threshold {
			backlink[i] = -1
			continue
		}
		backlink[i] = i + offsets[best]
		if backlink[i] < 0 {
			backlink[i] = -1
		}
		first = false
	}
	return backlink, cum
}

// lastBeat returns the last frame whose cumulative score is a local maximum
// above half the median of all local maxima.
func lastBeat(cum []float64) int {
	var maxima []int
	for i, v := range cum {
		left := i > 0 && v > cum[i-1]
		right := i == len(cum)-1 || v >= cum[i+1]
		if left && right {
			maxima = append(maxima, i)
		}
	}
	if len(maxima) == 0 {
		return len(cum) - 1
	}

	vals := make([]float64, len(maxima))
	for i, m := range maxima {
		vals[i] = cum[m]
	}
	med := median(vals)

	last := maxima[0]
	for _, m := range maxima {
		if 2*cum[m] > med {
			last = m
		}
	}
	return last
}

func trimBeats(local []float64, beats []int, trim bool) []int {
	if len(beats) == 0 {
		return beats
	}

	scores := make([]float64, len(beats))
	for i, b := range beats {
		scores[i] = local[b]
	}
	smooth := convolveSame(scores, []float64{0, 0.5, 1, 0.5, 0})

	threshold := 0.0
	if trim {
		ms := 0.0
		for _, v := range smooth {
			ms += v * v
		}
		threshold = 0.5 * math.Sqrt(ms/float64(len(smooth)))
	}

	first, last := -1, -1
	for i, v := range smooth {
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}
	return slices.Clone(beats[first:last])
}

// convolveSame returns the centred part of the full convolution of x with an
// odd-length kernel.
func convolveSame(x, kernel []float64) []float64 {
	half := len(kernel) / 2
	out := make([]float64, len(x))
	for i := range out {
		acc := 0.0
		for j, w := range kernel {
			src := i + half - j
			if src >= 0 && src < len(x) {
				acc += w * x[src]
			}
		}
		out[i] = acc
	}
	return out
}

func median(v []float64) float64 {
	s := slices.Clone(v)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return 0.5 * (s[n/2-1] + s[n/2])
}
