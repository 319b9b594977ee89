// Package workflow runs a graph of jobs that pass files to one another
// through a shared FileStore.
//
// A job's function runs first, then its children (concurrently), then, once
// every child's subtree has finished, its follow-ons. A job's return value is
// available to any job that runs after it through the Promise from Rv.
//
// A job's function may add children and follow-ons to its own job, for work
// whose shape depends on earlier results.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNotResolved is returned when a Promise is read before its job has run
var ErrNotResolved = errors.New("promise read before its job ran")

// JobFunc is the work done by a Job. The returned value resolves the job's
// Promise
type JobFunc func(ctx context.Context, j *Job) (any, error)

// Job is a node in the workflow graph
type Job struct {
	name string
	fn   JobFunc

	children  []*Job
	followOns []*Job

	// set by the Runner
	store  *FileStore
	logger *slog.Logger

	once   sync.Once
	result any
	err    error
	done   bool
	mu     sync.RWMutex
}

// NewJob creates a Job that runs fn. A nil fn makes a job that only groups
// its children and follow-ons
func NewJob(name string, fn JobFunc) *Job {
	return &Job{name: name, fn: fn}
}

// Name is the job's name, used in logs
func (j *Job) Name() string {
	return j.name
}

// AddChild schedules child to run after j, concurrently with j's other
// children. It returns child
func (j *Job) AddChild(child *Job) *Job {
	j.children = append(j.children, child)
	return child
}

// AddFollowOn schedules f to run after j and all of j's children have
// finished. It returns f
func (j *Job) AddFollowOn(f *Job) *Job {
	j.followOns = append(j.followOns, f)
	return f
}

// Rv is a Promise for j's return value
func (j *Job) Rv() Promise {
	return Promise{job: j}
}

// Store is the FileStore shared by every job in the run
func (j *Job) Store() *FileStore {
	return j.store
}

// Log writes an info message to the run's log, tagged with the job's name
func (j *Job) Log(msg string, args ...any) {
	if j.logger == nil {
		return
	}
	j.logger.Info(msg, append([]any{"job", j.name}, args...)...)
}

// run executes the job's function once, storing its result
func (j *Job) run(ctx context.Context, store *FileStore, logger *slog.Logger) (any, error) {
	j.once.Do(func() {
		j.store, j.logger = store, logger

		var result any
		var err error
		if j.fn != nil {
			result, err = j.fn(ctx, j)
		}
		if err != nil {
			err = fmt.Errorf("job %s: %w", j.name, err)
		}

		j.mu.Lock()
		j.result, j.err, j.done = result, err, true
		j.mu.Unlock()
	})

	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result, j.err
}

// Promise is a job's return value, readable once the job has run
type Promise struct {
	job *Job
}

// Value returns the job's result, or ErrNotResolved if it hasn't run yet
func (p Promise) Value() (any, error) {
	if p.job == nil {
		return nil, ErrNotResolved
	}

	p.job.mu.RLock()
	defer p.job.mu.RUnlock()
	if !p.job.done {
		return nil, fmt.Errorf("%w: %s", ErrNotResolved, p.job.name)
	}
	return p.job.result, p.job.err
}

// Resolve reads a Promise as a T
func Resolve[T any](p Promise) (T, error) {
	var zero T

	v, err := p.Value()
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("job %s returned %T, not %T", p.job.name, v, zero)
	}
	return t, nil
}

// ResolveAll reads every Promise as a T
func ResolveAll[T any](ps []Promise) ([]T, error) {
	ts := make([]T, 0, len(ps))
	for _, p := range ps {
		t, err := Resolve[T](p)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}
