// Package retry implements the write-retry policy applied around every
// persistence write. It exists to tolerate a live database promotion or
// failover, during which writes transiently fail while the new primary
// takes over. Transient storage failures are retried with exponential
// backoff; anything else propagates immediately.
package retry
