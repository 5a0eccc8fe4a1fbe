package feature

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Array is a dense row-major n-dimensional array.
type Array struct {
	Shape []int
	Data  []float64
	// Integer marks arrays holding whole numbers such as frame indices.
	Integer bool
}

// Size returns the element count implied by Shape.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Rows returns a two-dimensional array as row slices sharing Data.
func (a *Array) Rows() ([][]float64, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("feature: array of rank %d is not a matrix", len(a.Shape))
	}
	rows := make([][]float64, a.Shape[0])
	for i := range rows {
		rows[i] = a.Data[i*a.Shape[1] : (i+1)*a.Shape[1]]
	}
	return rows, nil
}

// ShapeString formats the shape like a tuple, e.g. "(13, 44)" or "(5,)".
func (a *Array) ShapeString() string {
	parts := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		parts[i] = fmt.Sprint(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Value is a scalar, an Array or a Map. The zero Value is the scalar 0.
type Value struct {
	kind   Kind
	scalar float64
	array  *Array
	m      *Map
}

// Scalar wraps a single number.
func Scalar(v float64) Value { return Value{kind: KindScalar, scalar: v} }

// Vector wraps a one-dimensional array.
func Vector(data []float64) Value {
	return Value{kind: KindArray, array: &Array{Shape: []int{len(data)}, Data: data}}
}

// Ints wraps a one-dimensional integer array.
func Ints(data []int) Value {
	f := make([]float64, len(data))
	for i, v := range data {
		f[i] = float64(v)
	}
	return Value{kind: KindArray, array: &Array{Shape: []int{len(data)}, Data: f, Integer: true}}
}

// Matrix wraps equal-length rows as a two-dimensional array.
func Matrix(rows [][]float64) (Value, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return Value{}, fmt.Errorf("feature: ragged matrix row %d has %d columns, want %d", i, len(r), cols)
		}
		data = append(data, r...)
	}
	return Value{kind: KindArray, array: &Array{Shape: []int{len(rows), cols}, Data: data}}, nil
}

// NewArray wraps data with an explicit shape.
func NewArray(shape []int, data []float64) (Value, error) {
	a := &Array{Shape: shape, Data: data}
	if a.Size() != len(data) {
		return Value{}, fmt.Errorf("feature: shape %v needs %d values, got %d", shape, a.Size(), len(data))
	}
	return Value{kind: KindArray, array: a}, nil
}

// MapValue wraps a Map.
func MapValue(m *Map) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() Kind { return v.kind }

// Float returns the scalar, reporting false for other kinds.
func (v Value) Float() (float64, bool) { return v.scalar, v.kind == KindScalar }

// Array returns the array, reporting false for other kinds.
func (v Value) Array() (*Array, bool) { return v.array, v.kind == KindArray }

// Map returns the map, reporting false for other kinds.
func (v Value) Map() (*Map, bool) { return v.m, v.kind == KindMap }

// Map is a string-keyed collection of Values that keeps insertion order.
type Map struct {
	keys []string
	vals map[string]Value
}

func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Map) Len() int { return len(m.keys) }

// Leaf is a non-map value reached by walking a map.
type Leaf struct {
	Path  []string
	Value Value
}

// Key joins the path with sep.
func (l Leaf) Key(sep string) string { return strings.Join(l.Path, sep) }

// Leaves returns every scalar and array below m in depth-first insertion
// order.
func (m *Map) Leaves() []Leaf {
	var out []Leaf
	var walk func(prefix []string, m *Map)
	walk = func(prefix []string, m *Map) {
		for _, k := range m.keys {
			path := append(append([]string(nil), prefix...), k)
			v := m.vals[k]
			switch v.kind {
			case KindMap:
				walk(path, v.m)
			case KindScalar, KindArray:
				out = append(out, Leaf{Path: path, Value: v})
			}
		}
	}
	walk(nil, m)
	return out
}
