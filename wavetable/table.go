package wavetable

// Table is a single waveform cycle.
type Table []float64

// Stack is an ordered sequence of equally sized tables.
type Stack []Table

// Stack wraps t as a one-table stack.
func (t Table) Stack() Stack { return Stack{t} }

// Shape returns (number of tables, samples per table).
func (s Stack) Shape() (tables, size int) {
	if len(s) == 0 {
		return 0, 0
	}
	return len(s), len(s[0])
}

// Flatten concatenates all tables in order into one sample stream.
func (s Stack) Flatten() []float64 {
	total := 0
	for _, t := range s {
		total += len(t)
	}

	out := make([]float64, 0, total)
	for _, t := range s {
		out = append(out, t...)
	}
	return out
}
