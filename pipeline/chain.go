// Package pipeline threads a pixel buffer through an ordered chain of filters.
package pipeline

import (
	"fmt"
	"slices"

	"github.com/soypat/pixfx"
)

// Chain is an immutable ordered sequence of filter stages. Insertion order is
// application order. Methods that edit the chain return a new Chain and leave
// the receiver untouched. The zero value is an empty chain.
type Chain struct {
	stages []pixfx.Filter
}

// NewChain returns a chain applying stages left to right. Nil stages are dropped.
func NewChain(stages ...pixfx.Filter) Chain {
	c := Chain{stages: make([]pixfx.Filter, 0, len(stages))}
	for _, s := range stages {
		if s != nil {
			c.stages = append(c.stages, s)
		}
	}
	return c
}

// Append returns a new chain with stage added at the end.
func (c Chain) Append(stage pixfx.Filter) Chain {
	return NewChain(append(slices.Clone(c.stages), stage)...)
}

// Insert returns a new chain with stage inserted at index.
func (c Chain) Insert(index int, stage pixfx.Filter) (Chain, error) {
	if index < 0 || index > len(c.stages) {
		return c, fmt.Errorf("insert index %d: %w", index, pixfx.ErrOutOfBounds)
	}
	return NewChain(slices.Insert(slices.Clone(c.stages), index, stage)...), nil
}

// Remove returns a new chain without the stage at index.
func (c Chain) Remove(index int) (Chain, error) {
	if index < 0 || index >= len(c.stages) {
		return c, fmt.Errorf("remove index %d: %w", index, pixfx.ErrOutOfBounds)
	}
	return NewChain(slices.Delete(slices.Clone(c.stages), index, index+1)...), nil
}

func (c Chain) Len() int { return len(c.stages) }

// Stage returns the filter at index i.
func (c Chain) Stage(i int) (pixfx.Filter, error) {
	if i < 0 || i >= len(c.stages) {
		return nil, pixfx.ErrOutOfBounds
	}
	return c.stages[i], nil
}

// Stages returns a copy of the chain's stages in application order.
func (c Chain) Stages() []pixfx.Filter { return slices.Clone(c.stages) }

// Kinds returns the filter kind of every stage in application order.
func (c Chain) Kinds() []pixfx.Kind {
	kinds := make([]pixfx.Kind, len(c.stages))
	for i, s := range c.stages {
		kinds[i] = s.Kind()
	}
	return kinds
}

// Neutral reports whether every stage is an identity transform. Empty chains are neutral.
func (c Chain) Neutral() bool {
	for _, s := range c.stages {
		if !s.Neutral() {
			return false
		}
	}
	return true
}

// Validate checks every stage against an input of dimensions d and returns
// the first failure as a [*StageError].
func (c Chain) Validate(d pixfx.Dims) error {
	return c.validateFrom(0, d)
}

// validateFrom checks the stages starting at index first against d.
func (c Chain) validateFrom(first int, d pixfx.Dims) error {
	for i := first; i < len(c.stages); i++ {
		if err := c.stages[i].Validate(d); err != nil {
			return &StageError{Index: i, Kind: c.stages[i].Kind(), Err: err}
		}
	}
	return nil
}

// StageError reports which stage of a chain failed.
type StageError struct {
	Index int
	Kind  pixfx.Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed: %v", e.Index, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
