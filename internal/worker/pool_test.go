package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatterBot_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	done     chan struct{}
	err      error
	panics   bool
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	defer func() { j.done <- struct{}{} }()
	if j.panics {
		panic("boom")
	}
	return j.err
}

func waitDone(t *testing.T, done chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for job %d", i+1)
		}
	}
}

func TestPool(t *testing.T) {
	var executed int32
	done := make(chan struct{}, 4)
	pool := NewPool(context.Background(), 2, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	job := &testJob{executed: &executed, done: done}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	waitDone(t, done, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&executed))
}

func TestPool_FailingAndPanickingJobsKeepWorkerAlive(t *testing.T) {
	var executed int32
	done := make(chan struct{}, 4)
	pool := NewPool(context.Background(), 1, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	require.True(t, pool.Enqueue(&testJob{executed: &executed, done: done, panics: true}))
	require.True(t, pool.Enqueue(&testJob{executed: &executed, done: done, err: errors.New("nope")}))
	require.True(t, pool.Enqueue(&testJob{executed: &executed, done: done}))

	waitDone(t, done, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&executed))
}

type deadlineJob struct {
	deadline chan time.Time
}

func (j *deadlineJob) Name() string { return "deadline" }

func (j *deadlineJob) Process(ctx context.Context) error {
	d, _ := ctx.Deadline()
	j.deadline <- d
	return nil
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(context.Background(), 1, 1, time.Minute)
	pool.Start()
	defer pool.Stop()

	job := &deadlineJob{deadline: make(chan time.Time, 1)}
	require.True(t, pool.Enqueue(job))

	select {
	case d := <-job.deadline:
		assert.WithinDuration(t, time.Now().Add(time.Minute), d, 5*time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestPool_TryEnqueueFullQueue(t *testing.T) {
	// Not started, so nothing drains the queue.
	pool := NewPool(context.Background(), 1, 1, 0)

	var executed int32
	job := &testJob{executed: &executed, done: make(chan struct{}, 2)}
	assert.True(t, pool.TryEnqueue(job))
	assert.False(t, pool.TryEnqueue(job))

	pool.Stop()
	assert.False(t, pool.Enqueue(job), "enqueue after stop must not block")
	assert.False(t, pool.TryEnqueue(job), "stopped pool accepts nothing")
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(context.Background(), 4, 4, time.Second)
		pool.Start()

		var executed int32
		done := make(chan struct{}, 1)
		require.True(t, pool.Enqueue(&testJob{executed: &executed, done: done}))
		waitDone(t, done, 1)

		pool.Stop()
	})
}
