// Package gamesdb integrates TheGamesDB, a community maintained game
// database with strong retro platform coverage. An API key is required.
package gamesdb

import (
	"context"
	"encoding/json/v2"
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
	providerID = "gamesdb"

	defaultBaseURL = "https://api.thegamesdb.net"

	minRequestInterval = 1200 * time.Millisecond
	defaultTimeout     = 30 * time.Second
)

var gameIDRegex = regexp.MustCompile(`^[0-9]{1,10}$`)

// Client talks to TheGamesDB v1 JSON API.
type Client struct {
	http    *http.Client
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
	baseURL string
	apiKey  string
}

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
		DisplayName: "TheGamesDB",
		RequiresKey: true,
		URLTemplate: "https://thegamesdb.net/game.php?id=%s",
		TitleTypes:  []domain.TitleType{domain.TitleTypeVideoGame},
	}
}

func (c *Client) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{
		Search:       true,
		Descriptions: true,
		CoverImages:  true,
		BatchFetch:   true,
	}
}

func (c *Client) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{
		MinRequestInterval:     minRequestInterval,
		MaxBatchSize:           20,
		BatchInterval:          10 * time.Second,
		MaxItemsPerSync:        300,
		RetryDelay:             5 * time.Second,
		MaxRetries:             2,
		MaxConsecutiveFailures: 5,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://thegamesdb.net/game.php?id=" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

func (c *Client) available(op string) bool {
	if c.apiKey != "" {
		return true
	}
	c.logger.Warn("gamesdb adapter unavailable: no API key configured", "op", op)
	return false
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	if !c.available("search") {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("name", query)
	params.Set("fields", "overview,players")
	params.Set("include", "boxart")

	body, err := c.doRequest(ctx, "search", "/v1.1/Games/ByGameName", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	games := resp.Data.Games
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}

	results := make([]metadata.SearchResult, 0, len(games))
	for _, g := range games {
		r := metadata.SearchResult{
			Provider:   providerID,
			ExternalID: fmt.Sprint(g.ID),
			Name:       g.GameTitle,
			CoverURL:   resp.coverURL(g.ID),
		}
		if len(g.ReleaseDate) >= 4 {
			if ts, err := time.Parse("2006-01-02", g.ReleaseDate); err == nil {
				r.ReleaseYear = ts.Year()
			}
		}
		results = append(results, r)
	}

	return results, nil
}

func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !c.available("getGame") {
		return nil, nil
	}
	if !gameIDRegex.MatchString(externalID) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("id", externalID)
	params.Set("fields", "overview,players,publishers,rating,platform")
	params.Set("include", "boxart,platform")

	body, err := c.doRequest(ctx, "getGame", "/v1/Games/ByGameID", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	// The API answers 200 with an empty game list for unknown ids.
	if len(resp.Data.Games) == 0 {
		return nil, nil
	}
	g := resp.Data.Games[0]

	md := &metadata.GameMetadata{
		ExternalID:  externalID,
		Name:        g.GameTitle,
		Description: textnorm.CleanDescription(g.Overview),
		CoverURL:    resp.coverURL(g.ID),
		AgeRating:   g.Rating,
		RawPayload:  body,
	}

	if platform, ok := resp.Include.Platform.Data[fmt.Sprint(g.Platform)]; ok {
		md.Platforms = []string{platform.Name}
	}
	if g.ReleaseDate != "" {
		if ts, err := time.Parse("2006-01-02", g.ReleaseDate); err == nil {
			md.ReleaseDate = &ts
		}
	}
	if g.Players > 1 {
		md.Players = &metadata.PlayerInfo{
			SupportsLocal:   metadata.Bool(true),
			MaxPlayersLocal: metadata.Int(g.Players),
		}
	} else if g.Players == 1 {
		md.Players = &metadata.PlayerInfo{SupportsLocal: metadata.Bool(false)}
	}

	return md, nil
}

func (c *Client) doRequest(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("gamesdb request", "op", op, "path", path)

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
	case resp.StatusCode == http.StatusForbidden:
		return nil, metadata.ErrMissingCredentials
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
