package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Worker consumes jobs from a queue one at a time on a single goroutine.
// Sequential consumption preserves the submission order of jobs, so trips
// are planned in the order their owners created them.
type Worker struct {
	queue  JobQueueReader
	logger *slog.Logger

	// wg tracks the consumer goroutine for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx    context.Context
	cancel context.CancelFunc
}

// NewWorker creates a worker bound to the given queue. Call Start to begin
// consuming jobs.
func NewWorker(queue JobQueueReader, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		queue:  queue,
		logger: logger.With(slog.String("component", "worker")),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the consumer goroutine. It returns immediately.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
	w.logger.Info("worker started")
}

// Stop signals the worker to finish and blocks until the in-flight job, if
// any, has completed. The queue must be closed before calling Stop or the
// worker may remain blocked waiting for the next job.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		job, ok := w.queue.Dequeue()
		if !ok {
			w.logger.Info("queue closed, worker exiting")
			return
		}

		select {
		case <-w.ctx.Done():
			w.logger.Info("shutdown requested, abandoning remaining jobs",
				"job_id", job.ID())
			return
		default:
		}

		w.execute(job)
	}
}

// execute runs one job, containing any failure so the loop survives. A
// failed job is logged and dropped; the next job is unaffected.
func (w *Worker) execute(job Job) {
	log := w.logger.With(
		slog.String("job_id", job.ID().String()),
		slog.String("job_type", job.Type()))

	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "panic", r)
		}
	}()

	start := time.Now()
	log.Info("job started")

	if err := job.Execute(w.ctx); err != nil {
		log.Error("job failed",
			"error", err,
			"elapsed", time.Since(start))
		return
	}

	log.Info("job completed", "elapsed", time.Since(start))
}
