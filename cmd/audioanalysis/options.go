package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-analysis/feature"
	"github.com/cwbudde/algo-analysis/format"
	"github.com/cwbudde/algo-analysis/internal/logging"
)

// errUsage marks command-line mistakes, which exit with status 2.
var errUsage = errors.New("usage")

type options struct {
	input  string
	output string

	category feature.Category
	summary  bool
	format   format.Format
	half     bool

	wavetable bool
	numTables int
	tableSize int
	bitDepth  int

	fftSize    int
	sampleRate int
	jobs       int

	verbose      bool
	logFormat    logging.Format
	listFeatures bool
}

func usageError(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(msg, args...))
}

// parseArgs accepts flags before or after the positional input.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var (
		o         options
		features  string
		outFormat string
		logFormat string
	)

	fs := flag.NewFlagSet("audioanalysis", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.output, "o", "", "output path (extension added from -format)")
	fs.StringVar(&o.output, "output", "", "same as -o")
	fs.StringVar(&features, "f", "all", "feature group: "+strings.Join(featureChoices, ", "))
	fs.StringVar(&features, "features", "all", "same as -f")
	fs.BoolVar(&o.summary, "s", false, "write summary statistics instead of full features")
	fs.BoolVar(&o.summary, "summary", false, "same as -s")
	fs.StringVar(&outFormat, "format", "json", "output format: "+strings.Join(format.Names(), ", "))
	fs.BoolVar(&o.half, "half", false, "store NPZ float arrays as float16")
	fs.BoolVar(&o.wavetable, "w", false, "generate wavetables instead of extracting features")
	fs.BoolVar(&o.wavetable, "wavetable", false, "same as -w")
	fs.IntVar(&o.numTables, "num-tables", 64, "number of wavetables to generate")
	fs.IntVar(&o.tableSize, "table-size", 2048, "samples per wavetable")
	fs.IntVar(&o.bitDepth, "bit-depth", 16, "wavetable PCM bit depth (16 or 24)")
	fs.IntVar(&o.fftSize, "n-fft", 2048, "analysis frame length")
	fs.IntVar(&o.sampleRate, "sr", 0, "target sample rate (0 keeps the native rate)")
	fs.IntVar(&o.jobs, "jobs", 0, "files processed in parallel in directory mode (0 = number of CPUs)")
	fs.BoolVar(&o.verbose, "v", false, "verbose progress logging")
	fs.BoolVar(&o.verbose, "verbose", false, "same as -v")
	fs.StringVar(&logFormat, "log-format", "auto", "log encoding: auto, console or json")
	fs.BoolVar(&o.listFeatures, "list-features", false, "list feature groups and their keys")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: audioanalysis [flags] <input>\n\n")
		fmt.Fprintf(stderr, "Extracts audio features or generates wavetables from an audio file.\n")
		fmt.Fprintf(stderr, "When <input> is a directory every WAV, FLAC and MP3 file in it is processed.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  audioanalysis input.wav -o output.json\n")
		fmt.Fprintf(stderr, "  audioanalysis input.wav -f spectral -o features\n")
		fmt.Fprintf(stderr, "  audioanalysis input.wav -w -o wavetables.wav -num-tables 64\n")
		fmt.Fprintf(stderr, "  audioanalysis input.wav -s -format csv -o summary\n")
		fmt.Fprintf(stderr, "  audioanalysis samples/ -o analysis/ -s -jobs 4\n")
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return o, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if o.listFeatures {
		return o, nil
	}

	switch len(positional) {
	case 0:
		return o, usageError("missing input path")
	case 1:
		o.input = positional[0]
	default:
		return o, usageError("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}

	var err error
	if !validFeatureChoice(features) {
		return o, usageError("invalid -features %q (choose from %s)", features, strings.Join(featureChoices, ", "))
	}
	if o.category, err = feature.ParseCategory(features); err != nil {
		return o, usageError("%v", err)
	}
	if o.format, err = format.Parse(outFormat); err != nil {
		return o, usageError("%v", err)
	}
	if o.logFormat, err = logging.ParseFormat(logFormat); err != nil {
		return o, usageError("%v", err)
	}

	switch {
	case o.numTables <= 0:
		return o, usageError("num-tables must be > 0: %d", o.numTables)
	case o.tableSize <= 0:
		return o, usageError("table-size must be > 0: %d", o.tableSize)
	case o.fftSize <= 0:
		return o, usageError("n-fft must be > 0: %d", o.fftSize)
	case o.sampleRate < 0:
		return o, usageError("sr must be >= 0: %d", o.sampleRate)
	case o.jobs < 0:
		return o, usageError("jobs must be >= 0: %d", o.jobs)
	case o.bitDepth != 16 && o.bitDepth != 24:
		return o, usageError("bit-depth must be 16 or 24: %d", o.bitDepth)
	}
	return o, nil
}

var featureChoices = []string{"all", "spectral", "temporal", "harmonic", "onsets", "pitch"}

func validFeatureChoice(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range featureChoices {
		if c == name {
			return true
		}
	}
	return false
}
