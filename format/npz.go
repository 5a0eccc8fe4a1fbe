package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/sbinet/npyio"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-analysis/feature"
)

const halfDtype = "<f2"

// writeNPY encodes a as a .npy file. Integer arrays are stored as int64 and
// float arrays as float64, or float16 when half is set. Float64 arrays may
// have one or two dimensions.
func writeNPY(w io.Writer, a *feature.Array, half bool) error {
	switch {
	case a.Integer:
		data := make([]int64, len(a.Data))
		for i, v := range a.Data {
			data[i] = int64(v)
		}
		if len(a.Shape) != 1 {
			return fmt.Errorf("integer array must be one-dimensional: %s", a.ShapeString())
		}
		return npyio.Write(w, data)
	case half:
		return writeHalfNPY(w, a)
	}

	switch {
	case len(a.Shape) == 1:
		return npyio.Write(w, a.Data)
	case len(a.Shape) == 2 && a.Size() > 0:
		return npyio.Write(w, mat.NewDense(a.Shape[0], a.Shape[1], a.Data))
	default:
		return fmt.Errorf("cannot store array of shape %s", a.ShapeString())
	}
}

// writeHalfNPY writes a version 1.0 float16 .npy file in C order. npyio has
// no float16 element type, so the header is written here.
func writeHalfNPY(w io.Writer, a *feature.Array) error {
	dims := make([]string, len(a.Shape))
	for i, d := range a.Shape {
		dims[i] = strconv.Itoa(d)
	}
	shape := "(" + strings.Join(dims, ", ") + ")"
	if len(a.Shape) == 1 {
		shape = "(" + dims[0] + ",)"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", halfDtype, shape)

	// Magic, version and length take 10 bytes; the header is padded with
	// spaces and a newline to a multiple of 64.
	if rem := (10 + len(header) + 1) % 64; rem != 0 {
		header += strings.Repeat(" ", 64-rem)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	for _, v := range a.Data {
		_ = binary.Write(&buf, binary.LittleEndian, float16.Fromfloat32(float32(v)).Bits())
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteNPZ writes a deflate-compressed NumPy archive with one .npy member
// per leaf. Nested keys are joined with underscores and scalars become
// one-element arrays. With half set, float arrays are stored as float16.
func WriteNPZ(w io.Writer, m *feature.Map, half bool) error {
	zw := zip.NewWriter(w)
	for _, leaf := range m.Leaves() {
		var a *feature.Array
		switch leaf.Value.Kind() {
		case feature.KindScalar:
			f, _ := leaf.Value.Float()
			a = &feature.Array{Shape: []int{1}, Data: []float64{f}}
		case feature.KindArray:
			a, _ = leaf.Value.Array()
		case feature.KindMap:
			continue
		}

		name := leaf.Key("_") + ".npy"
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("npz %s: %w", name, err)
		}
		if err := writeNPY(fw, a, half); err != nil {
			return fmt.Errorf("npz %s: %w", name, err)
		}
	}
	return zw.Close()
}

// ReadNPZ decodes an archive written by WriteNPZ into a flat map keyed by
// member name without the .npy suffix. float16 data is widened to float64.
func ReadNPZ(r io.ReaderAt, size int64) (*feature.Map, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read npz: %w", err)
	}

	out := feature.NewMap()
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read npz %s: %w", f.Name, err)
		}
		v, err := readNPY(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read npz %s: %w", f.Name, err)
		}
		out.Set(strings.TrimSuffix(f.Name, ".npy"), v)
	}
	return out, nil
}

func readNPY(r io.Reader) (feature.Value, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return feature.Value{}, err
	}
	descr := nr.Header.Descr
	shape := descr.Shape
	n := 1
	for _, d := range shape {
		n *= d
	}

	switch descr.Type {
	case "<i8":
		var data []int64
		if err := nr.Read(&data); err != nil {
			return feature.Value{}, err
		}
		ints := make([]int, len(data))
		for i, v := range data {
			ints[i] = int(v)
		}
		if len(shape) != 1 {
			return feature.Value{}, fmt.Errorf("integer array must be one-dimensional: %v", shape)
		}
		return feature.Ints(ints), nil

	case "<f8":
		if len(shape) == 2 && n > 0 {
			var m mat.Dense
			if err := nr.Read(&m); err != nil {
				return feature.Value{}, err
			}
			rows, cols := m.Dims()
			return feature.NewArray([]int{rows, cols}, mat.DenseCopyOf(&m).RawMatrix().Data)
		}
		var data []float64
		if err := nr.Read(&data); err != nil {
			return feature.Value{}, err
		}
		return feature.NewArray(shape, data)

	case halfDtype:
		if descr.Fortran {
			return feature.Value{}, fmt.Errorf("fortran-ordered float16 arrays are not supported")
		}
		bits := make([]uint16, n)
		if err := binary.Read(r, binary.LittleEndian, bits); err != nil {
			return feature.Value{}, fmt.Errorf("read float16 data: %w", err)
		}
		data := make([]float64, n)
		for i, b := range bits {
			data[i] = float64(float16.Frombits(b).Float32())
		}
		return feature.NewArray(shape, data)

	default:
		return feature.Value{}, fmt.Errorf("unsupported npy dtype %q", descr.Type)
	}
}
