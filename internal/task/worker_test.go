package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerProcessesJobsInOrder(t *testing.T) {
	t.Parallel()

	q := NewJobQueue(0, nil)

	var mu sync.Mutex
	var processed []uuid.UUID
	var wg sync.WaitGroup

	jobs := make([]*mockJob, 3)
	for i := range jobs {
		wg.Add(1)
		job := newMockJob(nil)
		job.executeFn = func(ctx context.Context) error {
			mu.Lock()
			processed = append(processed, job.id)
			mu.Unlock()
			wg.Done()
			return nil
		}
		jobs[i] = job
	}

	w := NewWorker(q, nil)
	w.Start()

	for _, job := range jobs {
		q.Enqueue(job)
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not process all jobs in time")
	}

	q.Close()
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, processed, 3)
	for i, job := range jobs {
		assert.Equal(t, job.ID(), processed[i])
	}
}

func TestWorkerSurvivesJobFailure(t *testing.T) {
	t.Parallel()

	q := NewJobQueue(0, nil)

	var wg sync.WaitGroup
	wg.Add(2)

	failing := newMockJob(func(ctx context.Context) error {
		defer wg.Done()
		return errors.New("generation blew up")
	})
	succeeding := newMockJob(func(ctx context.Context) error {
		defer wg.Done()
		return nil
	})

	w := NewWorker(q, nil)
	w.Start()

	q.Enqueue(failing)
	q.Enqueue(succeeding)

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("worker loop did not survive a failing job")
	}

	q.Close()
	w.Stop()
}

func TestWorkerSurvivesJobPanic(t *testing.T) {
	t.Parallel()

	q := NewJobQueue(0, nil)

	var wg sync.WaitGroup
	wg.Add(1)

	panicking := newMockJob(func(ctx context.Context) error {
		panic("unexpected state")
	})
	after := newMockJob(func(ctx context.Context) error {
		defer wg.Done()
		return nil
	})

	w := NewWorker(q, nil)
	w.Start()

	q.Enqueue(panicking)
	q.Enqueue(after)

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("worker loop did not survive a panicking job")
	}

	q.Close()
	w.Stop()
}

func TestWorkerStopsCleanlyWhenQueueCloses(t *testing.T) {
	t.Parallel()

	q := NewJobQueue(0, nil)
	w := NewWorker(q, nil)
	w.Start()

	q.Close()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after queue close")
	}
}
