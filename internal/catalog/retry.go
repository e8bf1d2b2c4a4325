package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"time"

	"github.com/jeanpaul/shelf/internal/book"
)

// RetrySource wraps a Source with exponential backoff on transient errors.
type RetrySource struct {
	inner      Source
	maxRetries int
	baseDelay  time.Duration
	log        *slog.Logger
}

func WithRetry(src Source, maxRetries int) *RetrySource {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetrySource{
		inner:      src,
		maxRetries: maxRetries,
		baseDelay:  500 * time.Millisecond,
		log:        slog.Default().With("component", "catalog"),
	}
}

func (r *RetrySource) Name() string { return r.inner.Name() }

func (r *RetrySource) Fetch(ctx context.Context) ([]book.Record, error) {
	var (
		lastErr  error
		attempts int
	)
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		attempts++
		recs, err := r.inner.Fetch(ctx)
		if err == nil {
			return recs, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == r.maxRetries {
			break
		}
		r.log.Warn("catalog fetch failed, retrying", "source", r.Name(), "attempt", attempt+1, "err", err)
		if err := r.backoff(ctx, attempt); err != nil {
			return nil, unavailable(r.Name(), lastErr)
		}
	}
	if attempts == 1 {
		return nil, unavailable(r.Name(), lastErr)
	}
	return nil, unavailable(r.Name(), fmt.Errorf("after %d attempts: %w", attempts, lastErr))
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func (r *RetrySource) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(r.baseDelay) * math.Pow(2, float64(attempt)))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
