package planner

import "errors"

// Error constants for planner client failures.
var (
	// ErrRequestFailed indicates the HTTP request to the planning service
	// could not be completed (network failure, timeout, etc).
	ErrRequestFailed = errors.New("planner request failed")

	// ErrServiceError indicates the planning service responded with a
	// non-success status code.
	ErrServiceError = errors.New("planner service returned an error")

	// ErrInvalidResponse indicates the planning service returned a body
	// that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from planner service")
)
