package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool runs queued jobs on a fixed number of goroutines.
type Pool struct {
	workers  int
	timeout  time.Duration
	jobQueue chan Job
	wg       sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a worker pool. Each job gets its own context derived from
// ctx and bounded by jobTimeout (no bound when jobTimeout <= 0).
func NewPool(ctx context.Context, workers, queueSize int, jobTimeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers:  workers,
		timeout:  jobTimeout,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx := p.ctx
	cancel := context.CancelFunc(func() {})
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	log := logger.FromContext(ctx).With("job", job.Name())
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue blocks until the job is queued or the pool stops. Reports whether it was queued.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// TryEnqueue queues the job without blocking. A full queue or a stopped pool skips the job.
func (p *Pool) TryEnqueue(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.ctx).Warn(LogMsgWorkerQueueFull, "job", job.Name())
		return false
	}
}

// Stop cancels running jobs and waits for the workers to exit. Queued jobs are discarded.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
	logger.FromContext(context.Background()).Info(LogMsgWorkerPoolStopped)
}
