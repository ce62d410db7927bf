package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Provider is the capability contract every external metadata source
// implements. Contract for GetGame: a populated record on success, an
// absent result (nil, nil) for permanent non-matches, and a transient-
// classified error for rate-limit or server failures. Adapters must not
// swallow transient failures as absent results; correct data would then
// look like a permanent miss.
type Provider interface {
	// Manifest returns the adapter's static identity.
	Manifest() Manifest
	// Capabilities returns the adapter's capability flags.
	Capabilities() Capabilities
	// RateLimit returns the adapter's outbound traffic policy.
	RateLimit() RateLimitConfig

	// Search returns ranked candidates for a free-text query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	// GetGame fetches the full record for one external id.
	GetGame(ctx context.Context, externalID string) (*GameMetadata, error)
	// GetGames fetches several records. Adapters without a native batch
	// endpoint delegate to FetchSequential.
	GetGames(ctx context.Context, externalIDs []string) ([]*GameMetadata, error)
	// GameURL deep-links the source's page for an external id.
	GameURL(externalID string) string
}

// FetchSequential is the default batch implementation: single fetches in
// order, honoring the provider's retry policy, with a circuit breaker on
// consecutive failures and a pause between batches. Misses are skipped
// silently; they are not failures.
func FetchSequential(ctx context.Context, p Provider, externalIDs []string, logger *slog.Logger) ([]*GameMetadata, error) {
	cfg := p.RateLimit()
	providerID := p.Manifest().ID

	ids := externalIDs
	if cfg.MaxItemsPerSync > 0 && len(ids) > cfg.MaxItemsPerSync {
		logger.Warn("batch truncated to per-sync cap",
			"provider", providerID,
			"requested", len(ids),
			"cap", cfg.MaxItemsPerSync,
		)
		ids = ids[:cfg.MaxItemsPerSync]
	}

	results := make([]*GameMetadata, 0, len(ids))
	consecutiveFailures := 0

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		// Pause between batches of MaxBatchSize items.
		if cfg.MaxBatchSize > 0 && i > 0 && i%cfg.MaxBatchSize == 0 && cfg.BatchInterval > 0 {
			if err := sleepCtx(ctx, cfg.BatchInterval); err != nil {
				return results, err
			}
		}

		md, err := FetchWithRetry(ctx, p, id)
		if err != nil {
			consecutiveFailures++
			logger.Warn("batch item failed",
				"provider", providerID,
				"external_id", id,
				"consecutive_failures", consecutiveFailures,
				"error", err,
			)
			if cfg.MaxConsecutiveFailures > 0 && consecutiveFailures >= cfg.MaxConsecutiveFailures {
				return results, WrapError(providerID, "getGames", id,
					fmt.Errorf("aborting batch after %d consecutive failures: %w", consecutiveFailures, err))
			}
			continue
		}

		consecutiveFailures = 0
		if md != nil {
			results = append(results, md)
		}
	}

	return results, nil
}

// FetchWithRetry fetches one record, retrying transient failures up to the
// provider's MaxRetries with RetryDelay between attempts. Permanent misses
// return (nil, nil) immediately.
func FetchWithRetry(ctx context.Context, p Provider, externalID string) (*GameMetadata, error) {
	cfg := p.RateLimit()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 && cfg.RetryDelay > 0 {
			if err := sleepCtx(ctx, cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		md, err := p.GetGame(ctx, externalID)
		if err == nil {
			return md, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// sleepCtx waits for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
