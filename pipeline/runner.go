package pipeline

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/soypat/pixfx"
)

var errNilInput = errors.New("nil input buffer")

// Runner renders chains over pixel buffers. A Runner holds no per-call state
// and is safe for concurrent use.
type Runner struct {
	log    *zerolog.Logger
	strict bool
}

// Option configures a [Runner].
type Option func(*Runner)

// WithLogger makes the runner log to l instead of the package logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = &l }
}

// WithStrictDims makes the runner check that every stage preserves the
// dimensions and format of its input. Built-in filters always do.
func WithStrictDims() Option {
	return func(r *Runner) { r.strict = true }
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRunner = NewRunner()

// Render applies chain to in with the default runner. See [Runner.Render].
func Render(in *pixfx.Buffer, chain Chain) (*pixfx.Buffer, error) {
	return defaultRunner.Render(in, chain)
}

func (r *Runner) logger() zerolog.Logger {
	if r.log != nil {
		return *r.log
	}
	return Logger()
}

// Render applies each stage of chain to in, threading each stage's output into
// the next stage. An empty or all-neutral chain returns a copy of in.
//
// Every stage is validated against in before any stage runs so a bad chain
// fails without partial application. Without [WithStrictDims] a stage may
// change the dimensions; the stages after it are then validated again
// against the new dimensions before the next one runs.
// Stage failures are returned as [*StageError]. in is never modified.
func (r *Runner) Render(in *pixfx.Buffer, chain Chain) (*pixfx.Buffer, error) {
	if in == nil {
		return nil, errNilInput
	}
	log := r.logger()
	dims := in.Dims()
	if err := chain.Validate(dims); err != nil {
		log.Warn().Err(err).Int("stages", chain.Len()).Msg("chain rejected")
		return nil, err
	}
	current := in
	for i, stage := range chain.stages {
		if stage.Neutral() {
			log.Debug().Int("stage", i).Stringer("kind", stage.Kind()).Msg("neutral stage skipped")
			continue
		}
		out, err := stage.Apply(current)
		if err == nil && r.strict && out.Dims() != dims {
			err = pixfx.ErrDimensionMismatch
		}
		if err != nil {
			err = &StageError{Index: i, Kind: stage.Kind(), Err: err}
			log.Warn().Err(err).Msg("stage failed")
			return nil, err
		}
		log.Debug().Int("stage", i).Stringer("kind", stage.Kind()).Msg("stage applied")
		if out.Dims() != dims {
			dims = out.Dims()
			if err := chain.validateFrom(i+1, dims); err != nil {
				log.Warn().Err(err).Int("width", dims.Width).Int("height", dims.Height).Msg("chain rejected after resize")
				return nil, err
			}
		}
		// The superseded intermediate is dropped here; in belongs to the caller.
		current = out
	}
	if current == in {
		return in.Clone(), nil
	}
	return current, nil
}
