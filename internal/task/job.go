package task

import (
	"context"

	"github.com/google/uuid"
)

// JobStatus represents the current state of a job
type JobStatus string

// Possible job status values
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job type constants
const (
	// JobTypeItineraryGeneration represents the job type for generating
	// a trip's itinerary through the planning service
	JobTypeItineraryGeneration = "itinerary_generation"
)

// Job represents a unit of background work to be processed
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Status returns the current job status
	Status() JobStatus

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// JobQueueReader provides consume access to the queue, allowing the worker
// to take jobs without the ability to enqueue
type JobQueueReader interface {
	// Dequeue blocks until a job is available or the queue is closed.
	// The second return value is false when the queue is closed and drained.
	Dequeue() (Job, bool)
}

// JobQueueWriter provides submit access to the queue, allowing services to
// enqueue jobs for processing
type JobQueueWriter interface {
	// Enqueue adds a job to the queue. It never blocks and never fails;
	// jobs submitted after Close are silently dropped.
	Enqueue(job Job)

	// Close closes the queue, preventing further job submission
	Close()
}
