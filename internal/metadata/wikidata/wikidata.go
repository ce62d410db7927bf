// Package wikidata integrates the Wikidata knowledge graph as a metadata
// provider. Wikidata's own entity search is noisy for game titles (a query
// often surfaces films, places or people with the same name), so results
// are scored and filtered before use, and a SPARQL query serves as a
// second search strategy when entity search comes up empty.
package wikidata

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
	providerID = "wikidata"

	defaultAPIBaseURL    = "https://www.wikidata.org"
	defaultSPARQLBaseURL = "https://query.wikidata.org"

	userAgent = "InventoryManagement/1.0 (https://github.com/JulianiusM/InventoryManagement-sub002)"

	minRequestInterval = 1500 * time.Millisecond
	defaultTimeout     = 45 * time.Second
)

var entityIDRegex = regexp.MustCompile(`^Q[0-9]{1,12}$`)

// Client queries the Wikidata action API and the SPARQL query service.
// Both endpoints share one pacer since they hit the same upstream.
type Client struct {
	http          *http.Client
	pacer         *ratelimit.Pacer
	logger        *slog.Logger
	apiBaseURL    string
	sparqlBaseURL string
}

func New(logger *slog.Logger) *Client {
	return &Client{
		http:          &http.Client{Timeout: defaultTimeout},
		pacer:         ratelimit.NewPacer(minRequestInterval),
		logger:        logger,
		apiBaseURL:    defaultAPIBaseURL,
		sparqlBaseURL: defaultSPARQLBaseURL,
	}
}

func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "Wikidata",
		RequiresKey: false,
		URLTemplate: "https://www.wikidata.org/wiki/%s",
		TitleTypes: []domain.TitleType{
			domain.TitleTypeVideoGame,
			domain.TitleTypeTabletop,
		},
	}
}

func (c *Client) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{
		Search:       true,
		Descriptions: true,
		CoverImages:  true,
	}
}

func (c *Client) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{
		MinRequestInterval:     minRequestInterval,
		MaxBatchSize:           10,
		BatchInterval:          15 * time.Second,
		MaxItemsPerSync:        100,
		RetryDelay:             10 * time.Second,
		MaxRetries:             2,
		MaxConsecutiveFailures: 3,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://www.wikidata.org/wiki/" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

// doGet executes a paced GET against one of the two endpoints and maps
// the HTTP status onto the shared error taxonomy.
func (c *Client) doGet(ctx context.Context, op, rawURL string) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("wikidata request", "op", op)

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
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func (c *Client) apiURL(params url.Values) string {
	return c.apiBaseURL + "/w/api.php?" + params.Encode()
}

func (c *Client) sparqlURL(query string) string {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")
	return c.sparqlBaseURL + "/sparql?" + params.Encode()
}
