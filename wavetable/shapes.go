package wavetable

import "github.com/cwbudde/algo-analysis/dsp/signal"

// Sine returns one cycle of sin(2*pi*i/size).
func Sine(size int) (Table, error) { return cycle(signal.ShapeSine, size) }

// Saw returns a rising ramp from -1 that stops one step short of +1.
func Saw(size int) (Table, error) { return cycle(signal.ShapeSaw, size) }

// Square returns +1 for the first size/2 samples and -1 afterwards.
func Square(size int) (Table, error) { return cycle(signal.ShapeSquare, size) }

// Triangle returns a zero-phase triangle peaking at a quarter cycle.
func Triangle(size int) (Table, error) { return cycle(signal.ShapeTriangle, size) }

func cycle(shape signal.Shape, size int) (Table, error) {
	out, err := signal.Cycle(shape, size)
	if err != nil {
		return nil, err
	}
	return Table(out), nil
}
