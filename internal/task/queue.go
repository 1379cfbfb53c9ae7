package task

import (
	"log/slog"
	"sync"
)

// JobQueue implements an unbounded FIFO queue that satisfies both the
// JobQueueReader and JobQueueWriter interfaces. Unlike a buffered channel
// it has no capacity limit, so producers never block and never observe a
// submission failure regardless of how far the consumer has fallen behind.
type JobQueue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	jobs      []Job
	closed    bool
	warnDepth int
	logger    *slog.Logger
}

// NewJobQueue creates a new empty job queue. Once the queue holds more than
// warnDepth jobs, further submissions are logged at warning level; pass 0
// to disable the depth warning.
func NewJobQueue(warnDepth int, logger *slog.Logger) *JobQueue {
	if logger == nil {
		logger = slog.Default()
	}

	q := &JobQueue{
		warnDepth: warnDepth,
		logger:    logger.With(slog.String("component", "job_queue")),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue adds a job to the tail of the queue and wakes the consumer.
// It never blocks. Jobs submitted after Close are dropped with a warning;
// by then the worker is gone and nothing would ever drain them.
func (q *JobQueue) Enqueue(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.logger.Warn("job dropped, queue is closed",
			"job_id", job.ID(),
			"job_type", job.Type())
		return
	}

	q.jobs = append(q.jobs, job)
	q.cond.Signal()

	if q.warnDepth > 0 && len(q.jobs) > q.warnDepth {
		q.logger.Warn("job queue depth above warning threshold",
			"queue_len", len(q.jobs),
			"warn_depth", q.warnDepth)
	}

	q.logger.Debug("job enqueued",
		"job_id", job.ID(),
		"job_type", job.Type(),
		"queue_len", len(q.jobs))
}

// Dequeue removes and returns the job at the head of the queue, blocking
// while the queue is empty. It returns false once the queue is closed and
// all remaining jobs have been drained.
func (q *JobQueue) Dequeue() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.jobs) == 0 {
		return nil, false
	}

	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Close closes the queue, preventing further job submission and waking any
// blocked consumer. Jobs already enqueued remain drainable.
func (q *JobQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
		q.logger.Info("job queue closed", "pending_jobs", len(q.jobs))
	}
}

// Len returns the number of jobs waiting in the queue.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
