package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/dsp/signal"
)

func ExampleCycle() {
	saw, _ := signal.Cycle(signal.ShapeSaw, 4)
	fmt.Println(saw)
	// Output:
	// [-1 -0.5 0 0.5]
}

func ExampleNormalize() {
	out, _ := signal.Normalize([]float64{0.5, -0.25}, 0.9)
	fmt.Printf("%.2f %.2f\n", out[0], out[1])
	// Output:
	// 0.90 -0.45
}
