package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-analysis/stats/time"
)

func ExampleZeroCrossings() {
	fmt.Println(timestats.ZeroCrossings([]float64{1, -1, 1, -1, 0, 1}))
	// Output:
	// 4
}

func ExampleFrameRMS() {
	cfg := timestats.FrameConfig{Length: 4, Hop: 2}
	fmt.Println(timestats.FrameRMS([]float64{1, 1, 1, 1, 0, 0, 0, 0}, cfg))
	// Output:
	// [1 0.7071067811865476 0]
}
