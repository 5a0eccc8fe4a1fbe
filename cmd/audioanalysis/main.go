// Command audioanalysis extracts audio features and generates wavetables.
//
// Usage:
//
//	audioanalysis [flags] <input>
//
// The input is an audio file (WAV, FLAC or MP3) or a directory of them.
// Without -o, features go to <stem>_features.<format> and wavetables to
// <stem>_wavetables.wav in the current directory.
//
// Examples:
//
//	audioanalysis input.wav -o output.json
//	audioanalysis input.wav -f spectral
//	audioanalysis input.wav -w -num-tables 64 -table-size 2048
//	audioanalysis input.wav -s -format csv -o summary
//	audioanalysis samples/ -o analysis/ -jobs 4
//	audioanalysis -list-features
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-analysis/feature"
	"github.com/cwbudde/algo-analysis/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status: 0 on
// success, 1 on processing errors and 2 on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "error: %s\n", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		fmt.Fprintf(stderr, "Run 'audioanalysis -h' for usage.\n")
		return 2
	case err != nil:
		// flag has already printed the message and usage.
		return 2
	}

	if o.listFeatures {
		if err := printFeatures(stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	log := logging.New(
		logging.WithOutput(stderr),
		logging.WithFormat(o.logFormat),
		logging.WithVerbose(o.verbose),
	)
	defer logging.Sync(log)

	info, err := os.Stat(o.input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "error: input %q does not exist\n", o.input)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	if info.IsDir() {
		return runBatch(ctx, o, log, stdout, stderr)
	}

	written, err := processFile(ctx, o, log, o.input, outputPath(o, o.input))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	for _, p := range written {
		fmt.Fprintln(stdout, p)
	}
	return 0
}

func printFeatures(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Group\tFlag\tFeatures\n")
	fmt.Fprintf(tw, "-----\t----\t--------\n")
	for _, c := range feature.Categories() {
		flagName := c.String()
		switch c {
		case feature.CategoryHarmonic:
			flagName = "harmonic"
		case feature.CategoryMetadata:
			flagName = "(all only)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c, flagName, strings.Join(c.Names(), ", "))
	}
	return tw.Flush()
}
