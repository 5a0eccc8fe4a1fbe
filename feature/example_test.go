package feature_test

import (
	"fmt"

	"github.com/cwbudde/algo-analysis/feature"
)

func ExampleMap_Leaves() {
	spectral := feature.NewMap().
		Set("spectral_centroid", feature.Vector([]float64{1200, 1350})).
		Set("tempo", feature.Scalar(96))
	m := feature.NewMap().
		Set("spectral", feature.MapValue(spectral)).
		Set("sr", feature.Ints([]int{22050}))

	for _, leaf := range m.Leaves() {
		fmt.Println(leaf.Key("_"), leaf.Value.Kind())
	}

	// Output:
	// spectral_spectral_centroid array
	// spectral_tempo scalar
	// sr array
}

func ExampleParseCategory() {
	c, _ := feature.ParseCategory("hpss")
	fmt.Println(c, c.Names())

	// Output:
	// harmonic_percussive [harmonic percussive]
}
