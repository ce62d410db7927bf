// Package bgg integrates BoardGameGeek's XMLAPI2 as the primary tabletop
// metadata provider. No API key is required, but the service queues
// heavy requests behind a 202 response and throttles aggressively, so
// the adapter runs with a generous inter-request interval.
package bgg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/ratelimit"
)

const (
	providerID = "bgg"

	defaultBaseURL = "https://boardgamegeek.com"

	minRequestInterval = 2 * time.Second
	defaultTimeout     = 60 * time.Second
)

var thingIDRegex = regexp.MustCompile(`^[0-9]{1,10}$`)

// Client talks to the BGG XMLAPI2.
type Client struct {
	http    *http.Client
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
	baseURL string
}

func New(logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		pacer:   ratelimit.NewPacer(minRequestInterval),
		logger:  logger,
		baseURL: defaultBaseURL,
	}
}

func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "BoardGameGeek",
		RequiresKey: false,
		URLTemplate: "https://boardgamegeek.com/boardgame/%s",
		TitleTypes:  []domain.TitleType{domain.TitleTypeTabletop},
	}
}

func (c *Client) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{
		AccuratePlayerCounts: true,
		Search:               true,
		Descriptions:         true,
		CoverImages:          true,
	}
}

func (c *Client) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{
		MinRequestInterval:     minRequestInterval,
		MaxBatchSize:           10,
		BatchInterval:          30 * time.Second,
		MaxItemsPerSync:        100,
		RetryDelay:             15 * time.Second,
		MaxRetries:             3,
		MaxConsecutiveFailures: 3,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://boardgamegeek.com/boardgame/" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

// doRequest executes a paced GET and maps HTTP status onto the shared
// error taxonomy. A 202 means the request was queued server-side and
// should be retried, so it classifies as rate-limited.
func (c *Client) doRequest(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	c.logger.Debug("bgg request", "op", op, "path", path)

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
	case resp.StatusCode == http.StatusAccepted:
		return nil, metadata.ErrRateLimited
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, metadata.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
