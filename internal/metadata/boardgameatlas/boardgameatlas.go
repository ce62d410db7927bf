// Package boardgameatlas integrates the Board Game Atlas API as the
// secondary tabletop metadata provider. A client id is required; without
// one the adapter degrades to returning no results.
package boardgameatlas

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
	providerID = "boardgameatlas"

	defaultBaseURL = "https://api.boardgameatlas.com"

	minRequestInterval = time.Second
	defaultTimeout     = 30 * time.Second
)

// Board Game Atlas ids are short alphanumeric handles.
var gameIDRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

type Client struct {
	http     *http.Client
	pacer    *ratelimit.Pacer
	logger   *slog.Logger
	baseURL  string
	clientID string
}

func New(clientID string, logger *slog.Logger) *Client {
	return &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		pacer:    ratelimit.NewPacer(minRequestInterval),
		logger:   logger,
		baseURL:  defaultBaseURL,
		clientID: clientID,
	}
}

func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "Board Game Atlas",
		RequiresKey: true,
		URLTemplate: "https://www.boardgameatlas.com/game/%s",
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
		MaxBatchSize:           20,
		BatchInterval:          5 * time.Second,
		MaxItemsPerSync:        200,
		RetryDelay:             5 * time.Second,
		MaxRetries:             2,
		MaxConsecutiveFailures: 5,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://www.boardgameatlas.com/game/" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

func (c *Client) available(op string) bool {
	if c.clientID != "" {
		return true
	}
	c.logger.Warn("boardgameatlas adapter unavailable: no client id configured", "op", op)
	return false
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	if !c.available("search") {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("name", query)
	params.Set("limit", fmt.Sprint(limit))

	body, err := c.doRequest(ctx, "search", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	results := make([]metadata.SearchResult, 0, len(resp.Games))
	for _, g := range resp.Games {
		results = append(results, metadata.SearchResult{
			Provider:    providerID,
			ExternalID:  g.ID,
			Name:        textnorm.DecodeEntities(g.Name),
			ReleaseYear: g.YearPublished,
			CoverURL:    g.ImageURL,
		})
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
	params.Set("client_id", c.clientID)
	params.Set("ids", externalID)

	body, err := c.doRequest(ctx, "getGame", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	// Unknown ids answer 200 with an empty game list.
	if len(resp.Games) == 0 {
		return nil, nil
	}
	g := resp.Games[0]

	md := &metadata.GameMetadata{
		ExternalID:  externalID,
		Name:        textnorm.DecodeEntities(g.Name),
		Description: textnorm.CleanDescription(g.Description),
		CoverURL:    g.ImageURL,
		Players:     playersFromGame(g),
		RawPayload:  body,
	}

	for _, p := range g.Publishers {
		if p.Name != "" {
			md.Publishers = append(md.Publishers, p.Name)
		}
	}
	for _, d := range g.Designers {
		if d.Name != "" {
			md.Developers = append(md.Developers, d.Name)
		}
	}
	for _, cat := range g.Categories {
		if cat.Name != "" {
			md.Genres = append(md.Genres, cat.Name)
		}
	}

	if g.YearPublished > 0 {
		ts := time.Date(g.YearPublished, time.January, 1, 0, 0, 0, 0, time.UTC)
		md.ReleaseDate = &ts
	}
	if g.MinAge > 0 {
		md.AgeRating = fmt.Sprintf("%d+", g.MinAge)
	}
	if g.AverageUserRating > 0 {
		// Ratings are out of 5.
		md.ReviewScore = metadata.Float(g.AverageUserRating * 20)
	}
	if g.MSRP > 0 {
		md.Price = &metadata.PriceInfo{Current: g.MSRP, Currency: "USD"}
	}

	return md, nil
}

func playersFromGame(g rawGame) *metadata.PlayerInfo {
	info := &metadata.PlayerInfo{
		SupportsPhysical: metadata.Bool(true),
	}
	if g.MinPlayers > 0 {
		info.MinPlayers = metadata.Int(g.MinPlayers)
		info.MinPlayersPhysical = metadata.Int(g.MinPlayers)
	}
	if g.MaxPlayers > 0 {
		info.MaxPlayers = metadata.Int(g.MaxPlayers)
		info.MaxPlayersPhysical = metadata.Int(g.MaxPlayers)
	}
	return info
}

func (c *Client) doRequest(ctx context.Context, op string, query url.Values) ([]byte, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("boardgameatlas request", "op", op)

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
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, metadata.ErrMissingCredentials
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
