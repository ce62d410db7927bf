package wikidata

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

// newTestClient points both the action API and the query service at the
// same test server; handlers route on path.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(slog.New(slog.DiscardHandler))
	client.http = server.Client()
	client.apiBaseURL = server.URL
	client.sparqlBaseURL = server.URL
	client.pacer = ratelimit.NewPacer(0)
	return client
}

func TestSearchRanksEntityHits(t *testing.T) {
	fixture := loadFixture(t, "entity_search_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "wbsearchentities", r.URL.Query().Get("action"))
		assert.Equal(t, "hollow knight", r.URL.Query().Get("search"))
		w.Write(fixture)
	}))

	results, err := client.Search(context.Background(), "hollow knight", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// The exact-name video game outranks the longer-named sequel, and the
	// novel is penalized below the floor entirely.
	assert.Equal(t, "Q2382445", results[0].ExternalID)
	assert.Equal(t, "Hollow Knight", results[0].Name)
	assert.Equal(t, "wikidata", results[0].Provider)

	for _, r := range results {
		assert.NotEqual(t, "Q12345678", r.ExternalID, "novel should score below the floor")
	}
}

func TestSearchFallsBackToSPARQL(t *testing.T) {
	sparqlFixture := loadFixture(t, "sparql_search_response.json")

	var sparqlCalled bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			w.Write([]byte(`{"search": []}`))
		case "/sparql":
			sparqlCalled = true
			assert.Contains(t, r.URL.Query().Get("query"), "EntitySearch")
			w.Write(sparqlFixture)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	results, err := client.Search(context.Background(), "hollow knight", 10)
	require.NoError(t, err)
	assert.True(t, sparqlCalled)
	require.Len(t, results, 1)
	assert.Equal(t, "Q2382445", results[0].ExternalID)
}

func TestSearchTransientError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Search(context.Background(), "anything", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrRateLimited))
}

func TestGetGame(t *testing.T) {
	fixture := loadFixture(t, "sparql_game_response.json")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sparql", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("query"), "wd:Q2382445")
		w.Write(fixture)
	}))

	md, err := client.GetGame(context.Background(), "Q2382445")
	require.NoError(t, err)
	require.NotNil(t, md)

	assert.Equal(t, "Q2382445", md.ExternalID)
	assert.Equal(t, "Hollow Knight", md.Name)
	assert.Contains(t, md.Description, "metroidvania")
	assert.Equal(t, []string{"Metroidvania", "platform game"}, md.Genres)
	assert.Equal(t, []string{"Team Cherry"}, md.Developers)
	assert.Equal(t, []string{"Nintendo Switch", "PlayStation 4", "Microsoft Windows"}, md.Platforms)
	assert.NotEmpty(t, md.CoverURL)

	require.NotNil(t, md.ReleaseDate)
	assert.Equal(t, 2017, md.ReleaseDate.Year())
}

func TestGetGameMisses(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent for a malformed id")
		}))

		md, err := client.GetGame(context.Background(), "12345")
		require.NoError(t, err)
		assert.Nil(t, md)
	})

	t.Run("unknown entity echoes id as label", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": {"bindings": [{"itemLabel": {"type": "literal", "value": "Q999999999"}}]}}`))
		}))

		md, err := client.GetGame(context.Background(), "Q999999999")
		require.NoError(t, err)
		assert.Nil(t, md)
	})

	t.Run("no bindings", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": {"bindings": []}}`))
		}))

		md, err := client.GetGame(context.Background(), "Q1")
		require.NoError(t, err)
		assert.Nil(t, md)
	})
}

func TestEntityIDFromURI(t *testing.T) {
	assert.Equal(t, "Q42", entityIDFromURI("http://www.wikidata.org/entity/Q42"))
	assert.Equal(t, "", entityIDFromURI("http://www.wikidata.org/entity/L42"))
	assert.Equal(t, "", entityIDFromURI(""))
}

func TestManifestAndCapabilities(t *testing.T) {
	client := New(slog.New(slog.DiscardHandler))

	m := client.Manifest()
	assert.Equal(t, "wikidata", m.ID)
	assert.False(t, m.RequiresKey)
	assert.Len(t, m.TitleTypes, 2)

	caps := client.Capabilities()
	assert.True(t, caps.Has(metadata.CapSearch))
	assert.False(t, caps.Has(metadata.CapAccuratePlayerCounts))

	assert.Equal(t, "https://www.wikidata.org/wiki/Q42", client.GameURL("Q42"))
}
