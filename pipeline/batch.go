package pipeline

import (
	"context"

	"github.com/soypat/pixfx"
	"golang.org/x/sync/errgroup"
)

// RenderAll renders chain over each input concurrently, running at most limit
// renders at once. limit <= 0 means no limit. Results keep the order of inputs.
//
// The first failure cancels renders that have not started yet and is returned.
// Renders already running finish since a single render is not interruptible.
func (r *Runner) RenderAll(ctx context.Context, inputs []*pixfx.Buffer, chain Chain, limit int) ([]*pixfx.Buffer, error) {
	results := make([]*pixfx.Buffer, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.Render(in, chain)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
