package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-analysis/analysis"
	"github.com/cwbudde/algo-analysis/audio"
	"github.com/cwbudde/algo-analysis/batch"
	"github.com/cwbudde/algo-analysis/feature"
	"github.com/cwbudde/algo-analysis/format"
	"github.com/cwbudde/algo-analysis/wavetable"
)

const (
	featuresSuffix   = "_features"
	wavetablesSuffix = "_wavetables.wav"
)

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// outputPath resolves the single-file destination.
func outputPath(o options, input string) string {
	if o.output != "" {
		return o.output
	}
	if o.wavetable {
		return stem(input) + wavetablesSuffix
	}
	return stem(input) + featuresSuffix
}

// processFile loads input and writes either features or wavetables to out.
// It returns the paths written.
func processFile(ctx context.Context, o options, log *zap.Logger, input, out string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("loading audio", zap.String("input", input), zap.Int("target_sr", o.sampleRate))
	buf, err := audio.Load(input, audio.WithTargetRate(o.sampleRate))
	if err != nil {
		return nil, err
	}
	log.Debug("audio loaded",
		zap.String("input", input),
		zap.Float64("duration_s", buf.Duration()),
		zap.Int("sample_rate", buf.SampleRate),
		zap.Int("samples", buf.Len()))

	if o.wavetable {
		path, err := saveWavetables(o, log, buf, out)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	path, err := saveFeatures(o, log, buf, out)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func saveWavetables(o options, log *zap.Logger, buf audio.Buffer, out string) (string, error) {
	cfg, err := wavetable.NewConfig(
		wavetable.WithNumTables(o.numTables),
		wavetable.WithTableSize(o.tableSize),
		wavetable.WithFFTSize(o.fftSize),
		wavetable.WithSampleRate(buf.SampleRate),
		wavetable.WithBitDepth(o.bitDepth),
	)
	if err != nil {
		return "", err
	}

	log.Debug("generating wavetables", zap.Int("tables", cfg.NumTables), zap.Int("size", cfg.TableSize))
	stack, err := wavetable.FromAudio(buf.Samples, cfg)
	if err != nil {
		return "", fmt.Errorf("extract wavetables: %w", err)
	}

	path := out
	if filepath.Ext(path) != ".wav" {
		path += ".wav"
	}
	if err := wavetable.Save(path, stack, cfg); err != nil {
		return "", err
	}

	tables, size := stack.Shape()
	log.Info("wavetables saved", zap.String("path", path), zap.Int("total_samples", tables*size))
	return path, nil
}

func saveFeatures(o options, log *zap.Logger, buf audio.Buffer, out string) (string, error) {
	lib, err := analysis.New(analysis.WithFFTSize(o.fftSize))
	if err != nil {
		return "", err
	}
	ex := feature.NewExtractor(lib, buf)

	var m *feature.Map
	if o.summary {
		log.Debug("extracting summary statistics")
		m, err = ex.Summary()
	} else {
		log.Debug("extracting features", zap.Stringer("group", o.category))
		m, err = ex.Category(o.category)
	}
	if err != nil {
		return "", fmt.Errorf("extract features: %w", err)
	}

	path, err := format.Save(out, m, format.Options{Format: o.format, HalfPrecision: o.half})
	if err != nil {
		return "", err
	}
	log.Info("features saved", zap.String("path", path), zap.Stringer("format", o.format))
	return path, nil
}

// runBatch processes every audio file in o.input, writing per-file outputs
// into the output directory (the current directory by default).
func runBatch(ctx context.Context, o options, log *zap.Logger, stdout, stderr io.Writer) int {
	files, err := batch.Discover(o.input)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	outDir := o.output
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	suffix := featuresSuffix
	if o.wavetable {
		suffix = wavetablesSuffix
	}

	runner := batch.NewRunner(func(ctx context.Context, input string) ([]string, error) {
		return processFile(ctx, o, log, input, batch.OutputPath(outDir, input, suffix))
	}, batch.WithJobs(o.jobs), batch.WithLogger(log))

	report, err := runner.Run(ctx, files)
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(stdout, "FAIL  %s: %v\n", res.Input, res.Err)
		default:
			for _, p := range res.Outputs {
				fmt.Fprintf(stdout, "ok    %s -> %s\n", res.Input, p)
			}
		}
	}
	fmt.Fprintf(stdout, "processed %d/%d files\n", report.Succeeded(), len(report.Results))

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if len(report.Failed()) > 0 {
		return 1
	}
	return 0
}
