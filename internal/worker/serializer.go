package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/GridClash_Go/internal/logger"
)

// ErrSerializerStopped is returned when a job is submitted after Stop
var ErrSerializerStopped = errors.New(ErrMsgSerializerStopped)

// Job represents a unit of encounter work
type Job func(ctx context.Context) error

type submission struct {
	ctx  context.Context
	job  Job
	done chan error
}

// Serializer runs jobs on a single goroutine in submission order. Each
// encounter owns one serializer, so concurrent callers never mutate the same
// world or turn rotation at the same time.
type Serializer struct {
	jobs chan submission
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewSerializer creates a new serializer with the given queue depth
func NewSerializer(queueSize int) *Serializer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Serializer{
		jobs: make(chan submission, queueSize),
		quit: make(chan struct{}),
	}
}

// Start starts the worker goroutine
func (s *Serializer) Start() {
	s.wg.Add(1)
	go s.worker()
}

// worker is the worker loop
func (s *Serializer) worker() {
	defer s.wg.Done()
	for {
		select {
		case sub := <-s.jobs:
			err := sub.job(sub.ctx)
			if err != nil {
				logger.FromContext(sub.ctx).Debug(LogMsgJobFailed, "error", err)
			}
			sub.done <- err
		case <-s.quit:
			// Drain anything already queued so no caller hangs
			for {
				select {
				case sub := <-s.jobs:
					sub.done <- ErrSerializerStopped
				default:
					return
				}
			}
		}
	}
}

// Run submits a job and blocks until it has executed, returning the job's
// error to the caller
func (s *Serializer) Run(ctx context.Context, job Job) error {
	sub := submission{ctx: ctx, job: job, done: make(chan error, 1)}

	select {
	case s.jobs <- sub:
	case <-s.quit:
		return ErrSerializerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-sub.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops the worker and waits for it to finish. Safe to call more than
// once.
func (s *Serializer) Stop() {
	s.once.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
