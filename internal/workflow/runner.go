package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Runner executes a job graph
type Runner struct {
	// Store is shared by every job
	Store *FileStore

	// Logger receives job logs and the runner's progress
	Logger *slog.Logger

	// MaxParallel caps the number of job functions running at once
	MaxParallel int

	sem *semaphore.Weighted
}

// Start runs root and everything scheduled after it. It returns root's
// result, or the first error from any job, after which the remaining jobs
// are canceled
func (r *Runner) Start(ctx context.Context, root *Job) (any, error) {
	if root == nil {
		return nil, errors.New("no root job")
	}
	if r.Store == nil {
		return nil, errors.New("runner has no file store")
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}

	limit := r.MaxParallel
	if limit < 1 {
		limit = 1
	}
	r.sem = semaphore.NewWeighted(int64(limit))

	start := time.Now()
	if err := r.runTree(ctx, root); err != nil {
		r.Logger.Error("workflow failed", "root", root.name, "error", err)
		return nil, err
	}
	r.Logger.Info("workflow finished", "root", root.name, "duration", time.Since(start).Round(time.Millisecond))

	return root.Rv().Value()
}

// runTree runs j, then its children's trees, then its follow-ons' trees
func (r *Runner) runTree(ctx context.Context, j *Job) error {
	if err := r.runJob(ctx, j); err != nil {
		return err
	}
	if err := r.runAll(ctx, j.children); err != nil {
		return err
	}
	return r.runAll(ctx, j.followOns)
}

func (r *Runner) runAll(ctx context.Context, jobs []*Job) error {
	if len(jobs) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			return r.runTree(ctx, j)
		})
	}
	return g.Wait()
}

// runJob runs only j's function, holding a slot of the semaphore
func (r *Runner) runJob(ctx context.Context, j *Job) error {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer r.sem.Release(1)

	if err := ctx.Err(); err != nil {
		return err
	}

	r.Logger.Debug("starting job", "job", j.name)
	start := time.Now()
	_, err := j.run(ctx, r.Store, r.Logger)
	r.Logger.Debug("finished job", "job", j.name, "duration", time.Since(start).Round(time.Millisecond))
	return err
}
