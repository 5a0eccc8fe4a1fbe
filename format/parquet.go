package format

import (
	"fmt"
	"io"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-analysis/feature"
)

// featureRow is one leaf of a feature map. Scalars have an empty shape and
// a single value.
type featureRow struct {
	Key     string    `parquet:"key"`
	Shape   []int64   `parquet:"shape"`
	Values  []float64 `parquet:"values"`
	Integer bool      `parquet:"integer"`
}

// WriteParquet writes one zstd-compressed row per leaf with the dotted key,
// the array shape and the flattened values.
func WriteParquet(w io.Writer, m *feature.Map) error {
	leaves := m.Leaves()
	rows := make([]featureRow, 0, len(leaves))
	for _, leaf := range leaves {
		row := featureRow{Key: leaf.Key(".")}
		switch leaf.Value.Kind() {
		case feature.KindScalar:
			f, _ := leaf.Value.Float()
			row.Values = []float64{f}
		case feature.KindArray:
			a, _ := leaf.Value.Array()
			row.Shape = make([]int64, len(a.Shape))
			for i, d := range a.Shape {
				row.Shape[i] = int64(d)
			}
			row.Values = a.Data
			row.Integer = a.Integer
		case feature.KindMap:
			continue
		}
		rows = append(rows, row)
	}

	pw := parquet.NewGenericWriter[featureRow](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet: %w", err)
	}
	return nil
}

// ReadParquet decodes a file written by WriteParquet back into a nested
// map, splitting keys on dots.
func ReadParquet(ra io.ReaderAt) (*feature.Map, error) {
	gr := parquet.NewGenericReader[featureRow](ra)
	defer gr.Close()

	var rows []featureRow
	batch := make([]featureRow, 64)
	for {
		n, err := gr.Read(batch)
		rows = append(rows, batch[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}

	out := feature.NewMap()
	for _, row := range rows {
		var v feature.Value
		if len(row.Shape) == 0 {
			if len(row.Values) != 1 {
				return nil, fmt.Errorf("read parquet %s: scalar row has %d values", row.Key, len(row.Values))
			}
			v = feature.Scalar(row.Values[0])
		} else {
			shape := make([]int, len(row.Shape))
			for i, d := range row.Shape {
				shape[i] = int(d)
			}
			data := row.Values
			if data == nil {
				data = []float64{}
			}
			var err error
			if v, err = feature.NewArray(shape, data); err != nil {
				return nil, fmt.Errorf("read parquet %s: %w", row.Key, err)
			}
			a, _ := v.Array()
			a.Integer = row.Integer
		}
		setPath(out, strings.Split(row.Key, "."), v)
	}
	return out, nil
}

func setPath(m *feature.Map, path []string, v feature.Value) {
	for _, p := range path[:len(path)-1] {
		child, ok := m.Get(p)
		cm, isMap := child.Map()
		if !ok || !isMap {
			cm = feature.NewMap()
			m.Set(p, feature.MapValue(cm))
		}
		m = cm
	}
	m.Set(path[len(path)-1], v)
}
