// Package task provides the background job infrastructure for asynchronous
// itinerary generation, including the job queue, the worker that consumes
// it, and the job implementation that drives the planning pipeline.
package task
