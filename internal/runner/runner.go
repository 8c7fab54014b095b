package runner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eigerco/intcode/internal/intcode"
	"github.com/eigerco/intcode/internal/store"
)

// Runner executes programs on fresh machines, optionally consulting a result
// cache. Every run owns its machine, so runs may proceed in parallel.
type Runner struct {
	library      *store.Library
	logger       zerolog.Logger
	engineLogger zerolog.Logger
	parallelism  int
}

type Option func(*Runner)

// WithLibrary enables the result cache
func WithLibrary(l *store.Library) Option {
	return func(r *Runner) { r.library = l }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithEngineLogger is handed to every machine the runner starts
func WithEngineLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.engineLogger = l }
}

// WithParallelism bounds the number of machines RunAll drives at once
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		logger:       zerolog.Nop(),
		engineLogger: zerolog.Nop(),
		parallelism:  1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes program with input. The context is only checked before the
// machine starts; a started run always completes.
func (r *Runner) Run(ctx context.Context, program, input []int64) (*intcode.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.library != nil {
		cached, ok, err := r.library.Result(program, input)
		if err != nil {
			return nil, fmt.Errorf("read cached result: %w", err)
		}
		if ok {
			r.logger.Debug().Ints64("input", input).Msg("cache hit")
			return cached, nil
		}
	}

	result, err := intcode.Run(program, input, intcode.WithLogger(r.engineLogger))
	if err != nil {
		return nil, err
	}

	if r.library != nil {
		if err := r.library.SaveResult(program, input, result); err != nil {
			return nil, fmt.Errorf("cache result: %w", err)
		}
	}
	return result, nil
}

// RunAll runs program once per input set and returns the results in input
// order. The first fault cancels runs that have not started yet.
func (r *Runner) RunAll(ctx context.Context, program []int64, inputs [][]int64) ([]*intcode.Result, error) {
	results := make([]*intcode.Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, input := range inputs {
		g.Go(func() error {
			result, err := r.Run(ctx, program, input)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debug().Int("runs", len(inputs)).Msg("batch finished")
	return results, nil
}
