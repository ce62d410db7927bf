package igdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/ratelimit"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

const tokenResponse = `{"access_token": "test-token", "expires_in": 5000, "token_type": "bearer"}`

// newTestClient points both the Twitch token endpoint and the API at the
// same test server; handlers route on path ("/oauth2/token" vs "/games").
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New("test-client-id", "test-secret", slog.New(slog.DiscardHandler))
	client.http = server.Client()
	client.baseURL = server.URL
	client.authURL = server.URL + "/oauth2/token"
	client.pacer = ratelimit.NewPacer(0)
	return client
}

func TestSearch(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			assert.Equal(t, "test-client-id", r.URL.Query().Get("client_id"))
			assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
			io.WriteString(w, tokenResponse)
		case "/games":
			assert.Equal(t, "test-client-id", r.Header.Get("Client-ID"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `search "cyberpunk"`)
			w.Write(fixture)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	results, err := client.Search(context.Background(), "cyberpunk", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "igdb", results[0].Provider)
	assert.Equal(t, "1877", results[0].ExternalID)
	assert.Equal(t, "Cyberpunk 2077", results[0].Name)
	assert.Equal(t, 2020, results[0].ReleaseYear)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co2mjs.jpg", results[0].CoverURL)

	assert.Empty(t, results[1].CoverURL)
}

func TestSearchWithoutCredentials(t *testing.T) {
	client := New("", "", slog.New(slog.DiscardHandler))

	results, err := client.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTokenReuse(t *testing.T) {
	var tokenCalls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			tokenCalls++
			io.WriteString(w, tokenResponse)
		case "/games":
			io.WriteString(w, "[]")
		}
	}))

	for range 3 {
		_, err := client.Search(context.Background(), "query", 5)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, tokenCalls, "token should be cached across requests")
}

func TestTokenRefreshOnExpiry(t *testing.T) {
	var tokenCalls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			tokenCalls++
			io.WriteString(w, tokenResponse)
		case "/games":
			io.WriteString(w, "[]")
		}
	}))

	_, err := client.Search(context.Background(), "query", 5)
	require.NoError(t, err)

	// Force the cached token past its expiry slop.
	client.mu.Lock()
	client.tokenExpiry = time.Now()
	client.mu.Unlock()

	_, err = client.Search(context.Background(), "query", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, tokenCalls)
}

func TestTokenRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Search(context.Background(), "query", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrMissingCredentials))
}

func TestGetGame(t *testing.T) {
	fixture := loadFixture(t, "game_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			io.WriteString(w, tokenResponse)
		case "/games":
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "where id = 11156;")
			w.Write(fixture)
		}
	}))

	md, err := client.GetGame(context.Background(), "11156")
	require.NoError(t, err)
	require.NotNil(t, md)

	assert.Equal(t, "11156", md.ExternalID)
	assert.Equal(t, "Overcooked!", md.Name)
	assert.Contains(t, md.Description, "couch co-op")
	assert.Equal(t, []string{"Strategy", "Indie"}, md.Genres)
	assert.Equal(t, []string{"Ghost Town Games"}, md.Developers)
	assert.Equal(t, []string{"Team17"}, md.Publishers)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co1ucc.jpg", md.CoverURL)

	require.NotNil(t, md.ReviewScore)
	assert.InDelta(t, 80.5, *md.ReviewScore, 0.01)
	require.NotNil(t, md.ReleaseDate)
	assert.Equal(t, 2016, md.ReleaseDate.Year())
}

func TestGetGamePlayerCounts(t *testing.T) {
	fixture := loadFixture(t, "game_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			io.WriteString(w, tokenResponse)
		case "/games":
			w.Write(fixture)
		}
	}))

	md, err := client.GetGame(context.Background(), "11156")
	require.NoError(t, err)
	require.NotNil(t, md)

	// Local co-op for four, no online play recorded.
	require.NotNil(t, md.Players.SupportsLocal)
	assert.True(t, *md.Players.SupportsLocal)
	require.NotNil(t, md.Players.MaxPlayersLocal)
	assert.Equal(t, 4, *md.Players.MaxPlayersLocal)
	assert.Nil(t, md.Players.SupportsOnline)
	assert.Nil(t, md.Players.MaxPlayersOnline)

	assert.True(t, md.Players.HasSpecificCounts())
}

func TestGetGameMisses(t *testing.T) {
	t.Run("empty result set", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/oauth2/token":
				io.WriteString(w, tokenResponse)
			case "/games":
				io.WriteString(w, "[]")
			}
		}))

		md, err := client.GetGame(context.Background(), "999999")
		require.NoError(t, err)
		assert.Nil(t, md)
	})

	t.Run("malformed id", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent for a malformed id")
		}))

		md, err := client.GetGame(context.Background(), "overcooked")
		require.NoError(t, err)
		assert.Nil(t, md)
	})
}

func TestTransientErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"rate limited", http.StatusTooManyRequests, metadata.ErrRateLimited},
		{"server error", http.StatusInternalServerError, metadata.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/oauth2/token" {
					io.WriteString(w, tokenResponse)
					return
				}
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetGame(context.Background(), "11156")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestManifestAndCapabilities(t *testing.T) {
	client := New("id", "secret", slog.New(slog.DiscardHandler))

	m := client.Manifest()
	assert.Equal(t, "igdb", m.ID)
	assert.True(t, m.RequiresKey)

	caps := client.Capabilities()
	assert.True(t, caps.Has(metadata.CapAccuratePlayerCounts))
	assert.True(t, caps.Has(metadata.CapSearch))

	assert.Equal(t, "https://www.igdb.com/games/1877", client.GameURL("1877"))
}
