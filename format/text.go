package format

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-analysis/feature"
	"github.com/cwbudde/algo-analysis/stats/descriptive"
)

const (
	csvInlineLimit = 100
	txtInlineLimit = 10
)

// formatFloat renders v in the shortest form that reads back exactly,
// keeping a trailing ".0" on whole numbers so floats stay visibly floats.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatElem(v float64, integer bool) string {
	if integer && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return strconv.FormatInt(int64(v), 10)
	}
	return formatFloat(v)
}

func joinElems(a *feature.Array, sep string) string {
	parts := make([]string, len(a.Data))
	for i, v := range a.Data {
		parts[i] = formatElem(v, a.Integer)
	}
	return strings.Join(parts, sep)
}

// WriteCSV writes a Feature,Value table with one row per leaf, keys joined
// with dots. One-dimensional arrays of fewer than 100 values are inlined
// comma-separated; larger arrays are summarised by shape, mean and std rows.
func WriteCSV(w io.Writer, m *feature.Map) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Feature", "Value"}); err != nil {
		return err
	}

	for _, leaf := range m.Leaves() {
		key := leaf.Key(".")
		switch leaf.Value.Kind() {
		case feature.KindScalar:
			f, _ := leaf.Value.Float()
			if err := cw.Write([]string{key, formatFloat(f)}); err != nil {
				return err
			}
		case feature.KindArray:
			a, _ := leaf.Value.Array()
			if len(a.Shape) == 1 && len(a.Data) < csvInlineLimit {
				if err := cw.Write([]string{key, joinElems(a, ",")}); err != nil {
					return err
				}
				continue
			}
			mean, std := descriptive.MeanStd(a.Data)
			rows := [][]string{
				{key + ".shape", a.ShapeString()},
				{key + ".mean", formatFloat(mean)},
				{key + ".std", formatFloat(std)},
			}
			if err := cw.WriteAll(rows); err != nil {
				return err
			}
		case feature.KindMap:
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTXT writes an indented report. Nested keys are indented two spaces
// per level, small one-dimensional arrays are listed and larger arrays are
// summarised with four decimals.
func WriteTXT(w io.Writer, m *feature.Map) error {
	bw := bufio.NewWriter(w)
	var lines []string
	appendTXT(&lines, feature.MapValue(m), 0)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendTXT(lines *[]string, v feature.Value, depth int) {
	pad := strings.Repeat("  ", depth)

	switch v.Kind() {
	case feature.KindMap:
		m, _ := v.Map()
		for _, k := range m.Keys() {
			*lines = append(*lines, pad+k+":")
			child, _ := m.Get(k)
			appendTXT(lines, child, depth+1)
		}
	case feature.KindArray:
		a, _ := v.Array()
		if len(a.Shape) == 1 && len(a.Data) <= txtInlineLimit {
			*lines = append(*lines, pad+"  ["+joinElems(a, ", ")+"]")
			return
		}
		mean, std := descriptive.MeanStd(a.Data)
		*lines = append(*lines, fmt.Sprintf("%s  shape: %s, mean: %.4f, std: %.4f", pad, a.ShapeString(), mean, std))
	case feature.KindScalar:
		f, _ := v.Float()
		*lines = append(*lines, pad+"  "+formatFloat(f))
	}
}
