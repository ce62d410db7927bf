// Package rawg integrates the RAWG community game database as a metadata
// provider. RAWG requires an API key; without one the adapter degrades to
// returning no results.
package rawg

import (
	"context"
	"encoding/json/v2"
	"errors"
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
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

const (
	providerID = "rawg"

	defaultBaseURL = "https://api.rawg.io"

	minRequestInterval = time.Second
	defaultTimeout     = 30 * time.Second
)

var gameIDRegex = regexp.MustCompile(`^[0-9]{1,10}$`)

// Client is a rate-limited RAWG API client.
type Client struct {
	http    *http.Client
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
	baseURL string
	apiKey  string
}

// New creates a new RAWG adapter. An empty apiKey leaves the adapter
// registered but unavailable.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		pacer:   ratelimit.NewPacer(minRequestInterval),
		logger:  logger,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "RAWG",
		RequiresKey: true,
		URLTemplate: "https://rawg.io/games/%s",
		TitleTypes:  []domain.TitleType{domain.TitleTypeVideoGame},
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
		MaxBatchSize:           25,
		BatchInterval:          5 * time.Second,
		MaxItemsPerSync:        500,
		RetryDelay:             3 * time.Second,
		MaxRetries:             2,
		MaxConsecutiveFailures: 5,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://rawg.io/games/" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

// available reports whether the adapter holds a credential, warning once
// per call site when it does not.
func (c *Client) available(op string) bool {
	if c.apiKey != "" {
		return true
	}
	c.logger.Warn("rawg adapter unavailable: no API key configured", "op", op)
	return false
}

// Search queries RAWG's game search.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	if !c.available("search") {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", query)
	if limit > 0 {
		params.Set("page_size", fmt.Sprint(limit))
	}

	body, err := c.doRequest(ctx, "search", "/api/games", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	results := make([]metadata.SearchResult, 0, len(resp.Results))
	for _, g := range resp.Results {
		r := metadata.SearchResult{
			Provider:   providerID,
			ExternalID: fmt.Sprint(g.ID),
			Name:       g.Name,
			CoverURL:   g.BackgroundImage,
		}
		if len(g.Released) >= 4 {
			if ts, err := time.Parse("2006-01-02", g.Released); err == nil {
				r.ReleaseYear = ts.Year()
			}
		}
		results = append(results, r)
	}

	return results, nil
}

// GetGame fetches the full record for one RAWG game id.
func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !c.available("getGame") {
		return nil, nil
	}
	if !gameIDRegex.MatchString(externalID) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, "getGame", "/api/games/"+externalID, params)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var g rawGame
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	md := &metadata.GameMetadata{
		ExternalID:  externalID,
		Name:        g.Name,
		Description: textnorm.CleanDescription(g.DescriptionRaw),
		CoverURL:    g.BackgroundImage,
		RawPayload:  body,
	}

	if md.Description == "" {
		md.Description = textnorm.CleanDescription(g.Description)
	}

	for _, genre := range g.Genres {
		md.Genres = append(md.Genres, genre.Name)
	}
	for _, d := range g.Developers {
		md.Developers = append(md.Developers, d.Name)
	}
	for _, p := range g.Publishers {
		md.Publishers = append(md.Publishers, p.Name)
	}
	for _, p := range g.Platforms {
		md.Platforms = append(md.Platforms, p.Platform.Name)
	}

	if g.Released != "" {
		if ts, err := time.Parse("2006-01-02", g.Released); err == nil {
			md.ReleaseDate = &ts
		}
	}
	if g.Metacritic > 0 {
		md.ReviewScore = metadata.Float(float64(g.Metacritic))
	}
	if g.ESRBRating != nil {
		md.AgeRating = g.ESRBRating.Name
	}

	return md, nil
}

// doRequest executes a paced GET and maps HTTP status onto the shared
// error taxonomy.
func (c *Client) doRequest(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("rawg request", "op", op, "path", path)

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
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, metadata.ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, metadata.ErrMissingCredentials
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
