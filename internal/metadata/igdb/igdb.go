// Package igdb integrates IGDB, a title database gated behind Twitch
// OAuth client credentials. It is the primary source for accurate
// per-mode player counts on video games. Without a client id and secret
// the adapter degrades to returning no results.
package igdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"encoding/json/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/ratelimit"
)

const (
	providerID = "igdb"

	defaultBaseURL  = "https://api.igdb.com/v4"
	defaultAuthURL  = "https://id.twitch.tv/oauth2/token"
	tokenExpirySlop = 60 * time.Second

	minRequestInterval = 250 * time.Millisecond
	defaultTimeout     = 30 * time.Second
)

var gameIDRegex = regexp.MustCompile(`^[0-9]{1,12}$`)

// Client talks to the IGDB v4 API, refreshing its Twitch app access
// token as needed.
type Client struct {
	http         *http.Client
	pacer        *ratelimit.Pacer
	logger       *slog.Logger
	baseURL      string
	authURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(clientID, clientSecret string, logger *slog.Logger) *Client {
	return &Client{
		http:         &http.Client{Timeout: defaultTimeout},
		pacer:        ratelimit.NewPacer(minRequestInterval),
		logger:       logger,
		baseURL:      defaultBaseURL,
		authURL:      defaultAuthURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (c *Client) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          providerID,
		DisplayName: "IGDB",
		RequiresKey: true,
		URLTemplate: "https://www.igdb.com/games/%s",
		TitleTypes:  []domain.TitleType{domain.TitleTypeVideoGame},
	}
}

func (c *Client) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{
		AccuratePlayerCounts: true,
		Search:               true,
		Descriptions:         true,
		CoverImages:          true,
		BatchFetch:           true,
	}
}

func (c *Client) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{
		MinRequestInterval:     minRequestInterval,
		MaxBatchSize:           50,
		BatchInterval:          2 * time.Second,
		MaxItemsPerSync:        1000,
		RetryDelay:             2 * time.Second,
		MaxRetries:             3,
		MaxConsecutiveFailures: 5,
	}
}

func (c *Client) GameURL(externalID string) string {
	return "https://www.igdb.com/games/" + externalID
}

func (c *Client) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	return metadata.FetchSequential(ctx, c, externalIDs, c.logger)
}

func (c *Client) available(op string) bool {
	if c.clientID != "" && c.clientSecret != "" {
		return true
	}
	c.logger.Warn("igdb adapter unavailable: no Twitch client credentials configured", "op", op)
	return false
}

// accessToken returns a valid app access token, fetching a fresh one
// from Twitch when the cached token is missing or about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpirySlop)) {
		return c.token, nil
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	c.logger.Debug("igdb fetching app access token")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", metadata.ErrMissingCredentials
	case resp.StatusCode >= 500:
		return "", metadata.ErrServer
	default:
		return "", fmt.Errorf("token endpoint status %d", resp.StatusCode)
	}

	var tok rawTokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", metadata.ErrMissingCredentials
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.token, nil
}

// query posts an apicalypse query body to an endpoint and returns the
// raw JSON response.
func (c *Client) query(ctx context.Context, op, endpoint, apicalypse string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(apicalypse))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("igdb request", "op", op, "endpoint", endpoint)

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
	case resp.StatusCode == http.StatusUnauthorized:
		// Token may have been revoked; drop it so the next call refreshes.
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return nil, metadata.ErrMissingCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, metadata.ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, metadata.ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
