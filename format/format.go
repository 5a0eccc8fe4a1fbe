package format

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/algo-analysis/feature"
	"github.com/cwbudde/algo-analysis/internal/fsutil"
)

// ErrUnsupportedFormat is returned for an unknown format name.
var ErrUnsupportedFormat = errors.New("format: unsupported format")

// Format identifies an output encoding.
type Format int

const (
	JSON Format = iota
	CSV
	NPZ
	TXT
	Parquet
)

var formatNames = [...]string{
	JSON:    "json",
	CSV:     "csv",
	NPZ:     "npz",
	TXT:     "txt",
	Parquet: "parquet",
}

// String returns the format name, which is also its file extension.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + f.String() }

// Parse returns the format for a case-insensitive name.
func Parse(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Names lists every supported format name.
func Names() []string {
	return append([]string(nil), formatNames[:]...)
}

// Options controls serialisation.
type Options struct {
	Format Format
	// HalfPrecision stores NPZ float arrays as float16.
	HalfPrecision bool
}

// DefaultOptions selects JSON.
func DefaultOptions() Options {
	return Options{Format: JSON}
}

// Write encodes m to w.
func Write(w io.Writer, m *feature.Map, opts Options) error {
	switch opts.Format {
	case JSON:
		return WriteJSON(w, m)
	case CSV:
		return WriteCSV(w, m)
	case NPZ:
		return WriteNPZ(w, m, opts.HalfPrecision)
	case TXT:
		return WriteTXT(w, m)
	case Parquet:
		return WriteParquet(w, m)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, opts.Format)
	}
}

// Save writes m to path, appending the format extension when path lacks
// it, and returns the path written.
func Save(path string, m *feature.Map, opts Options) (string, error) {
	if opts.Format < 0 || int(opts.Format) >= len(formatNames) {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, opts.Format)
	}

	path = fsutil.EnsureExt(path, opts.Format.Ext())
	err := fsutil.WriteAtomic(path, func(f *os.File) error {
		return Write(f, m, opts)
	})
	if err != nil {
		return "", fmt.Errorf("save %s: %w", opts.Format, err)
	}
	return path, nil
}
