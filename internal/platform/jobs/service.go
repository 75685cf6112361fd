package jobs

import (
	"context"
	"sync"
	"time"

	"hrdesk/internal/platform/logger"
)

const (
	JobDecisionEmail = "decision_email"

	defaultQueueSize = 128
)

// Service runs fire-and-forget work (notification emails) on a single
// background worker so request handlers never wait on SMTP.
type Service struct {
	queue   chan job
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

type job struct {
	Type string
	Ctx  context.Context
	Run  func(context.Context) error
}

func New(size int) *Service {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Service{queue: make(chan job, size)}
}

// Start launches the worker. It stops after ctx is cancelled and the queue
// has been drained.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.wg.Add(1)
	go s.worker(ctx)
}

// Enqueue schedules run. The job keeps the values of ctx (request id,
// logger) but not its cancellation. A full queue drops the job.
func (s *Service) Enqueue(ctx context.Context, jobType string, run func(context.Context) error) bool {
	j := job{Type: jobType, Ctx: context.WithoutCancel(ctx), Run: run}
	select {
	case s.queue <- j:
		return true
	default:
		logger.FromContext(ctx).Warn().Str("job_type", jobType).Msg("job queue full")
		return false
	}
}

// RunNow executes run inline, with the same logging as queued jobs.
func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) error) error {
	return s.runJob(job{Type: jobType, Ctx: ctx, Run: run})
}

// Wait blocks until the worker has exited.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case j := <-s.queue:
			_ = s.runJob(j)
		}
	}
}

func (s *Service) drain() {
	for {
		select {
		case j := <-s.queue:
			_ = s.runJob(j)
		default:
			return
		}
	}
}

func (s *Service) runJob(j job) error {
	ctx := j.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	err := j.Run(ctx)
	l := logger.FromContext(ctx)
	if err != nil {
		l.Warn().Err(err).Str("job_type", j.Type).Msg("job run failed")
		return err
	}
	l.Debug().Str("job_type", j.Type).Dur("elapsed", time.Since(started)).Msg("job completed")
	return nil
}
