package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/worker"
)

// Scheduler enqueues jobs onto a worker pool on cron schedules.
type Scheduler struct {
	workerPool *worker.Pool
	cron       *cron.Cron

	mu   sync.Mutex
	jobs map[string]worker.Job
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		cron:       cron.New(),
		jobs:       make(map[string]worker.Job),
	}
}

// Schedule registers job under a standard cron expression or descriptor such as "@daily".
// A run that finds the queue full is skipped rather than stacked.
func (s *Scheduler) Schedule(spec string, job worker.Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.workerPool.TryEnqueue(job) }); err != nil {
		return fmt.Errorf(ErrMsgInvalidSchedule, spec, job.Name(), err)
	}

	s.mu.Lock()
	s.jobs[job.Name()] = job
	s.mu.Unlock()

	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", job.Name(), "schedule", spec)
	return nil
}

// Trigger queues a registered job immediately without waiting for queue space.
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf(ErrMsgUnknownJob, ErrUnknownJob, name)
	}

	if !s.workerPool.TryEnqueue(job) {
		return fmt.Errorf(ErrMsgNotQueued, ErrJobNotQueued, name)
	}
	logger.FromContext(context.Background()).Info(LogMsgJobTriggered, "job", name)
	return nil
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start starts the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for any in-progress enqueue to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.FromContext(context.Background()).Info(LogMsgSchedulerStop)
}
