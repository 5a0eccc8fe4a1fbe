package format

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-analysis/dsp/core"
	"github.com/cwbudde/algo-analysis/feature"
)

// WriteJSON encodes m as indented JSON, preserving key order. Arrays become
// nested lists following their shape. NaN and infinities are written as
// null.
func WriteJSON(w io.Writer, m *feature.Map) error {
	bw := bufio.NewWriter(w)
	enc := &jsonEncoder{w: bw}
	enc.writeMap(m, 0)
	enc.buf = append(enc.buf, '\n')
	enc.flush()
	if enc.err != nil {
		return enc.err
	}
	return bw.Flush()
}

type jsonEncoder struct {
	w   *bufio.Writer
	buf []byte
	err error
}

func (e *jsonEncoder) flush() {
	if e.err == nil {
		_, e.err = e.w.Write(e.buf)
	}
	e.buf = e.buf[:0]
}

func (e *jsonEncoder) indent(depth int) {
	e.buf = append(e.buf, '\n')
	for range depth {
		e.buf = append(e.buf, "  "...)
	}
}

func (e *jsonEncoder) writeMap(m *feature.Map, depth int) {
	keys := m.Keys()
	if len(keys) == 0 {
		e.buf = append(e.buf, "{}"...)
		return
	}

	e.buf = append(e.buf, '{')
	for i, k := range keys {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.indent(depth + 1)
		quoted, _ := json.Marshal(k)
		e.buf = append(e.buf, quoted...)
		e.buf = append(e.buf, ": "...)
		v, _ := m.Get(k)
		e.writeValue(v, depth+1)
		if len(e.buf) > 1<<16 {
			e.flush()
		}
	}
	e.indent(depth)
	e.buf = append(e.buf, '}')
}

func (e *jsonEncoder) writeValue(v feature.Value, depth int) {
	switch v.Kind() {
	case feature.KindScalar:
		f, _ := v.Float()
		e.buf = appendNumber(e.buf, f, false)
	case feature.KindArray:
		a, _ := v.Array()
		e.writeArray(a.Shape, a.Data, a.Integer, depth)
	case feature.KindMap:
		m, _ := v.Map()
		e.writeMap(m, depth)
	}
}

// writeArray writes the innermost dimension on one line and nests outer
// dimensions with indentation.
func (e *jsonEncoder) writeArray(shape []int, data []float64, integer bool, depth int) {
	if len(shape) == 0 {
		e.buf = appendNumber(e.buf, data[0], integer)
		return
	}

	e.buf = append(e.buf, '[')
	if len(shape) == 1 {
		for i, v := range data {
			if i > 0 {
				e.buf = append(e.buf, ", "...)
			}
			e.buf = appendNumber(e.buf, v, integer)
			if len(e.buf) > 1<<16 {
				e.flush()
			}
		}
		e.buf = append(e.buf, ']')
		return
	}

	stride := len(data) / max(shape[0], 1)
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.indent(depth + 1)
		e.writeArray(shape[1:], data[i*stride:(i+1)*stride], integer, depth+1)
	}
	if shape[0] > 0 {
		e.indent(depth)
	}
	e.buf = append(e.buf, ']')
}

// appendNumber formats v the way encoding/json does, writing null for
// values JSON cannot represent.
func appendNumber(b []byte, v float64, integer bool) []byte {
	if !core.IsFinite(v) {
		return append(b, "null"...)
	}
	if integer {
		return strconv.AppendInt(b, int64(v), 10)
	}

	abs := math.Abs(v)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	b = strconv.AppendFloat(b, v, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// Clean up e-09 to e-9.
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}

// ParseJSON decodes a document written by WriteJSON. Objects become maps in
// document order, numbers become scalars, rectangular nested lists become
// arrays, and null becomes NaN.
func ParseJSON(r io.Reader) (*feature.Map, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parse json: top level must be an object, got %v", tok)
	}
	return parseObject(dec)
}

// parseObject reads an object body after its opening brace.
func parseObject(dec *json.Decoder) (*feature.Map, error) {
	m := feature.NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse json: expected key, got %v", tok)
		}

		v, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return m, nil
}

func parseValue(dec *json.Decoder) (feature.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return feature.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m, err := parseObject(dec)
			if err != nil {
				return feature.Value{}, err
			}
			return feature.MapValue(m), nil
		case '[':
			shape, data, integer, err := parseList(dec)
			if err != nil {
				return feature.Value{}, err
			}
			v, err := feature.NewArray(shape, data)
			if err != nil {
				return feature.Value{}, err
			}
			if integer {
				a, _ := v.Array()
				a.Integer = true
			}
			return v, nil
		}
		return feature.Value{}, fmt.Errorf("unexpected %v", t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return feature.Value{}, err
		}
		return feature.Scalar(f), nil
	case nil:
		return feature.Scalar(math.NaN()), nil
	default:
		return feature.Value{}, fmt.Errorf("unsupported json value %v", tok)
	}
}

// parseList reads a list body after its opening bracket and returns its
// shape and flattened data. All elements must share one shape.
func parseList(dec *json.Decoder) (shape []int, data []float64, integer bool, err error) {
	var inner []int
	count := 0
	integer = true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false, err
		}

		var elemShape []int
		switch t := tok.(type) {
		case json.Delim:
			if t != '[' {
				return nil, nil, false, fmt.Errorf("unexpected %v in list", t)
			}
			s, d, isInt, err := parseList(dec)
			if err != nil {
				return nil, nil, false, err
			}
			elemShape = s
			data = append(data, d...)
			integer = integer && isInt
		case json.Number:
			f, err := t.Float64()
			if err != nil {
				return nil, nil, false, err
			}
			data = append(data, f)
			integer = integer && !strings.ContainsAny(string(t), ".eE")
		case nil:
			data = append(data, math.NaN())
			integer = false
		default:
			return nil, nil, false, fmt.Errorf("unsupported list element %v", tok)
		}

		if count == 0 {
			inner = elemShape
		} else if !sameShape(inner, elemShape) {
			return nil, nil, false, fmt.Errorf("ragged list: element %d has shape %v, want %v", count, elemShape, inner)
		}
		count++
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, false, err
	}

	if count == 0 {
		integer = false
	}
	if data == nil {
		data = []float64{}
	}
	return append([]int{count}, inner...), data, integer, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
