package speech

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimited paces calls to a wrapped synthesizer
type RateLimited struct {
	next    Synthesizer
	limiter *rate.Limiter
}

// NewRateLimited allows at most rps synthesis requests per second, with a burst of one
func NewRateLimited(next Synthesizer, rps float64) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Format returns the format of the wrapped synthesizer
func (r *RateLimited) Format() string {
	return r.next.Format()
}

// Synthesize waits for a token and delegates to the wrapped synthesizer
func (r *RateLimited) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}
	return r.next.Synthesize(ctx, text, language)
}
