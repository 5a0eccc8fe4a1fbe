package wavetable

import (
	"fmt"
	"math"
)

// FrameIndices returns numTables frame indices spread evenly over
// [0, numFrames-1], rounded to the nearest frame. Indices repeat when
// numTables exceeds numFrames.
func FrameIndices(numFrames, numTables int) []int {
	if numFrames <= 0 || numTables <= 0 {
		return nil
	}

	idx := make([]int, numTables)
	if numTables == 1 {
		return idx
	}

	last := float64(numFrames - 1)
	den := float64(numTables - 1)
	for i := range idx {
		idx[i] = int(math.Round(float64(i) * last / den))
	}
	return idx
}

// FromFrames picks numTables evenly spaced magnitude frames and reconstructs
// each into a table of size samples. frames[t] is the spectrum of frame t.
func FromFrames(frames [][]float64, numTables, size int) (Stack, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if numTables <= 0 {
		return nil, fmt.Errorf("num tables must be > 0: %d", numTables)
	}

	r, err := NewReconstructor(size)
	if err != nil {
		return nil, err
	}

	stack := make(Stack, numTables)
	for i, f := range FrameIndices(len(frames), numTables) {
		t, err := r.Reconstruct(frames[f])
		if err != nil {
			return nil, fmt.Errorf("table %d (frame %d): %w", i, f, err)
		}
		stack[i] = t
	}

	return stack, nil
}
