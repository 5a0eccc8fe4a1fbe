package batch

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProcessFunc handles one input file and returns the paths it wrote.
type ProcessFunc func(ctx context.Context, input string) ([]string, error)

// Result is the outcome for one input.
type Result struct {
	Input   string
	Outputs []string
	Err     error
	Elapsed time.Duration
}

// OK reports whether the input was processed without error.
func (r Result) OK() bool { return r.Err == nil }

// Report collects the results of a run in input order.
type Report struct {
	RunID   string
	Results []Result
}

// Succeeded returns the number of inputs processed without error.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner fans a ProcessFunc out over many inputs.
type Runner struct {
	process ProcessFunc
	jobs    int
	log     *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs limits the number of files processed at once. Values below one
// select runtime.NumCPU.
func WithJobs(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// WithLogger sets the logger for per-file progress.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner returns a runner that calls process once per input.
func NewRunner(process ProcessFunc, opts ...Option) *Runner {
	r := &Runner{
		process: process,
		jobs:    runtime.NumCPU(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run processes every input. Per-file errors are recorded in the report;
// the returned error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, inputs []string) (Report, error) {
	report := Report{
		RunID:   uuid.New().String(),
		Results: make([]Result, len(inputs)),
	}
	log := r.log.With(zap.String("run_id", report.RunID))
	log.Info("batch started", zap.Int("files", len(inputs)), zap.Int("jobs", r.jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Results[i] = Result{Input: input, Err: err}
				return err
			}

			start := time.Now()
			outputs, err := r.process(ctx, input)
			res := Result{Input: input, Outputs: outputs, Err: err, Elapsed: time.Since(start)}
			report.Results[i] = res

			if err != nil {
				log.Warn("file failed", zap.String("input", input), zap.Error(err))
				return nil
			}
			log.Info("file done",
				zap.String("input", input),
				zap.Strings("outputs", outputs),
				zap.Duration("elapsed", res.Elapsed))
			return nil
		})
	}
	err := g.Wait()

	log.Info("batch finished",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", len(report.Failed())))
	return report, err
}
