// Package ratelimit paces outbound requests to external metadata sources.
//
// Each provider adapter owns one Pacer configured from its rate-limit
// policy. The pacer serializes the "when may the next request go out"
// decision, so two requests to the same source are never issued closer
// together than the source's minimum interval, even from concurrent
// callers.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between successive requests to one
// upstream source. It is built on a token bucket with a burst of one:
// the bucket's internal lock replaces the shared last-request timestamp
// that a single-flight scheduler could get away with.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer that allows one request per minInterval.
// A non-positive interval disables pacing.
func NewPacer(minInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next request may be issued or the context is
// canceled. Use before every outbound call on the paced source.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a request may be issued right now without
// blocking, consuming the slot if so.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
