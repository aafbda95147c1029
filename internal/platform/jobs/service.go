package jobs

import (
	"context"
	"errors"
	"log/slog"
)

const JobPayrollRun = "payroll_run"

var ErrQueueFull = errors.New("job queue full")

type job struct {
	Type  string
	Run   func(context.Context) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

// Service executes jobs on a single worker goroutine, so at most one
// job runs at a time. Payroll run generation goes through here to keep
// concurrent triggers serialized.
type Service struct {
	queue chan job
}

func New() *Service {
	return &Service{queue: make(chan job, 32)}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// RunNow submits the job and blocks until the worker has executed it.
func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	j := job{Type: jobType, Run: run, reply: make(chan result, 1)}
	select {
	case s.queue <- j:
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return nil, ErrQueueFull
	}

	select {
	case r := <-j.reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			value, err := j.Run(ctx)
			if err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
			j.reply <- result{value: value, err: err}
		}
	}
}
