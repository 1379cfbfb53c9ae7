package retry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/voyagr/voyagr-api/internal/config"
)

// Policy holds the parameters of the write-retry policy. Policies are
// read-only configuration; a single Policy value is shared by every
// decorated store without synchronization.
type Policy struct {
	// Enabled toggles retrying entirely. When false, operations execute
	// exactly once and any failure propagates uncorrected.
	Enabled bool

	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialInterval is the backoff before the second attempt.
	InitialInterval time.Duration

	// Multiplier grows the backoff between consecutive attempts.
	Multiplier float64

	// MaxInterval caps a single backoff sleep.
	MaxInterval time.Duration
}

// DefaultPolicy returns the policy used when no configuration overrides it:
// 5 attempts with 300ms, 1.5s, 7.5s, 30s backoff (~39s worst case).
func DefaultPolicy() Policy {
	return Policy{
		Enabled:         true,
		MaxAttempts:     5,
		InitialInterval: 300 * time.Millisecond,
		Multiplier:      5.0,
		MaxInterval:     30 * time.Second,
	}
}

// FromConfig builds a Policy from the application configuration.
func FromConfig(cfg config.RetryConfig) Policy {
	p := Policy{
		Enabled:         cfg.Enabled,
		MaxAttempts:     cfg.MaxAttempts,
		InitialInterval: time.Duration(cfg.InitialIntervalMs) * time.Millisecond,
		Multiplier:      cfg.Multiplier,
		MaxInterval:     time.Duration(cfg.MaxIntervalMs) * time.Millisecond,
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultPolicy().MaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = DefaultPolicy().InitialInterval
	}
	if p.Multiplier <= 0 {
		p.Multiplier = DefaultPolicy().Multiplier
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = DefaultPolicy().MaxInterval
	}
	return p
}

// Backoff returns the sleep before attempt n+1, where n is the 1-based
// attempt that just failed: min(initial * multiplier^(n-1), max).
func (p Policy) Backoff(attempt int) time.Duration {
	backoff := float64(p.InitialInterval) * math.Pow(p.Multiplier, float64(attempt-1))
	if backoff > float64(p.MaxInterval) {
		return p.MaxInterval
	}
	return time.Duration(backoff)
}

// Do executes op under the policy. Transient storage failures (see
// IsTransient) are retried up to MaxAttempts total attempts, sleeping
// Backoff(n) between attempts; the original error is returned once attempts
// are exhausted. Non-transient failures propagate on first occurrence with
// no delay. A cancelled context stops further retries and returns the last
// storage error.
func Do(ctx context.Context, log *slog.Logger, p Policy, op func() error) error {
	if log == nil {
		log = slog.Default()
	}

	if !p.Enabled {
		return op()
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			if attempt > 1 {
				log.Info("write succeeded after retry",
					"attempt", attempt,
					"max_attempts", p.MaxAttempts)
			}
			return nil
		}

		if !IsTransient(err) {
			return err
		}

		if attempt == p.MaxAttempts {
			log.Error("write retries exhausted, giving up",
				"attempt", attempt,
				"max_attempts", p.MaxAttempts,
				"error", err)
			return err
		}

		backoff := p.Backoff(attempt)
		log.Warn("transient storage failure, retrying write",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"backoff", backoff,
			"error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			log.Warn("context cancelled during write backoff, abandoning retries",
				"attempt", attempt,
				"ctx_err", ctx.Err())
			return err
		}
	}

	return err
}
