package gamesdb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

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

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New("test-key", slog.New(slog.DiscardHandler))
	client.http = server.Client()
	client.baseURL = server.URL
	client.pacer = ratelimit.NewPacer(0)
	return client
}

func TestSearch(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.1/Games/ByGameName", r.URL.Path)
		assert.Equal(t, "chrono", r.URL.Query().Get("name"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write(fixture)
	}))

	results, err := client.Search(context.Background(), "chrono", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "gamesdb", results[0].Provider)
	assert.Equal(t, "136", results[0].ExternalID)
	assert.Equal(t, "Chrono Trigger", results[0].Name)
	assert.Equal(t, 1995, results[0].ReleaseYear)
	assert.Equal(t, "https://cdn.thegamesdb.net/images/original/boxart/front/136-1.jpg", results[0].CoverURL)

	// Second game has no boxart entry in the include block.
	assert.Empty(t, results[1].CoverURL)
}

func TestSearchHonorsLimit(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	}))

	results, err := client.Search(context.Background(), "chrono", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchWithoutKey(t *testing.T) {
	client := New("", slog.New(slog.DiscardHandler))

	results, err := client.Search(context.Background(), "chrono", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetGame(t *testing.T) {
	fixture := loadFixture(t, "game_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/Games/ByGameID", r.URL.Path)
		assert.Equal(t, "136", r.URL.Query().Get("id"))
		w.Write(fixture)
	}))

	md, err := client.GetGame(context.Background(), "136")
	require.NoError(t, err)
	require.NotNil(t, md)

	assert.Equal(t, "136", md.ExternalID)
	assert.Equal(t, "Chrono Trigger", md.Name)
	assert.Contains(t, md.Description, "Crono's chance encounter")
	assert.NotContains(t, md.Description, "&#39;")
	assert.Equal(t, []string{"Super Nintendo (SNES)"}, md.Platforms)
	assert.Equal(t, "E10+ - Everyone 10+", md.AgeRating)
	assert.Equal(t, "https://cdn.thegamesdb.net/images/original/boxart/front/136-1.jpg", md.CoverURL)

	require.NotNil(t, md.ReleaseDate)
	assert.Equal(t, 1995, md.ReleaseDate.Year())

	require.NotNil(t, md.Players.SupportsLocal)
	assert.True(t, *md.Players.SupportsLocal)
	require.NotNil(t, md.Players.MaxPlayersLocal)
	assert.Equal(t, 2, *md.Players.MaxPlayersLocal)
}

func TestGetGameMisses(t *testing.T) {
	t.Run("empty game list", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": 200, "data": {"count": 0, "games": []}}`))
		}))

		md, err := client.GetGame(context.Background(), "424242")
		require.NoError(t, err)
		assert.Nil(t, md)
	})

	t.Run("malformed id", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent for a malformed id")
		}))

		md, err := client.GetGame(context.Background(), "../etc")
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
		{"server error", http.StatusBadGateway, metadata.ErrServer},
		{"exhausted key", http.StatusForbidden, metadata.ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetGame(context.Background(), "136")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestManifestAndCapabilities(t *testing.T) {
	client := New("key", slog.New(slog.DiscardHandler))

	m := client.Manifest()
	assert.Equal(t, "gamesdb", m.ID)
	assert.True(t, m.RequiresKey)

	caps := client.Capabilities()
	assert.True(t, caps.Has(metadata.CapSearch))
	assert.True(t, caps.Has(metadata.CapBatchFetch))
	assert.False(t, caps.Has(metadata.CapStoreURLs))

	assert.Equal(t, "https://thegamesdb.net/game.php?id=136", client.GameURL("136"))
}
