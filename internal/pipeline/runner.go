package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// Runner drains a record channel through the pipeline with a fixed number
// of concurrent workers. Each record's stages run sequentially on one
// worker; records have no cross-record ordering guarantee.
type Runner struct {
	pipeline *Pipeline
	workers  int
	logger   logger.Interface
}

// NewRunner creates a runner.
func NewRunner(p *Pipeline, workers int, log logger.Interface) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		pipeline: p,
		workers:  workers,
		logger:   log.WithComponent("runner"),
	}
}

// Run processes records until the channel closes or the context is
// cancelled. On cancellation in-flight records are abandoned; committed
// transactions stay committed.
func (r *Runner) Run(ctx context.Context, records <-chan *domain.Activity) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case activity, ok := <-records:
					if !ok {
						return nil
					}
					outcome := r.pipeline.Process(ctx, activity)
					r.logger.Debug("record processed",
						"id", activity.ID,
						"state", string(outcome.State),
						"reason", outcome.Reason,
					)
				}
			}
		})
	}

	return g.Wait()
}
