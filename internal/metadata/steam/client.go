// Package steam integrates the Steam store catalog as a metadata provider.
package steam

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/ratelimit"
)

const (
	providerID = "steam"

	defaultStoreURL = "https://store.steampowered.com"

	// The store API starts throttling aggressively below ~1.5s spacing.
	minRequestInterval = 1500 * time.Millisecond

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited Steam store catalog client.
type Client struct {
	http    *http.Client
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
	baseURL string
}

// New creates a new Steam adapter. Steam requires no API key.
func New(logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		pacer:   ratelimit.NewPacer(minRequestInterval),
		logger:  logger,
		baseURL: defaultStoreURL,
	}
}

// Manifest returns the adapter's static identity.
func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "Steam",
		RequiresKey: false,
		URLTemplate: defaultStoreURL + "/app/%s",
		TitleTypes:  []domain.TitleType{domain.TitleTypeVideoGame},
	}
}

// Capabilities returns the adapter's capability flags. Steam reports
// multiplayer categories but no concrete player counts, so it does not
// claim the accurate-player-counts capability.
func (c *Client) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{
		StoreURLs:    true,
		Search:       true,
		Descriptions: true,
		CoverImages:  true,
	}
}

// RateLimit returns the adapter's outbound traffic policy.
func (c *Client) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{
		MinRequestInterval:     minRequestInterval,
		MaxBatchSize:           20,
		BatchInterval:          10 * time.Second,
		MaxItemsPerSync:        200,
		RetryDelay:             5 * time.Second,
		MaxRetries:             2,
		MaxConsecutiveFailures: 5,
	}
}

// GameURL deep-links the store page for an app id.
func (c *Client) GameURL(externalID string) string {
	return fmt.Sprintf("%s/app/%s", defaultStoreURL, externalID)
}

// GetGames fetches several records sequentially; the store API has no
// batch endpoint.
func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

// doRequest executes a paced GET and maps HTTP status onto the shared
// error taxonomy.
func (c *Client) doRequest(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("steam request", "op", op, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, metadata.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
