package wikidata

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

// sparqlSearchQuery finds entities whose label matches the query and that
// are instances of a game class. wdt:P31/wdt:P279* walks the subclass
// tree so both video games (Q7889) and tabletop games (Q131436) match.
const sparqlSearchQuery = `SELECT ?item ?itemLabel ?itemDescription WHERE {
  SERVICE wikibase:mwapi {
    bd:serviceParam wikibase:endpoint "www.wikidata.org";
                    wikibase:api "EntitySearch";
                    mwapi:search %q;
                    mwapi:language "en".
    ?item wikibase:apiOutputItem mwapi:item.
  }
  { ?item wdt:P31/wdt:P279* wd:Q7889. } UNION { ?item wdt:P31/wdt:P279* wd:Q131436. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
} LIMIT %d`

// Search runs entity search first and falls back to a class-restricted
// SPARQL query when entity search yields nothing usable. Both paths feed
// the shared candidate ranking, since raw hits may name films, places or
// people rather than games.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	candidates, err := c.searchEntities(ctx, query, limit)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	ranked := metadata.RankCandidates(query, candidates)
	if len(ranked) > 0 {
		return ranked, nil
	}

	candidates, err = c.searchSPARQL(ctx, query, limit)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	return metadata.RankCandidates(query, candidates), nil
}

// searchEntities is the primary strategy: the wbsearchentities action API.
// Fast, but unfiltered by entity class.
func (c *Client) searchEntities(ctx context.Context, query string, limit int) ([]metadata.Candidate, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("type", "item")
	params.Set("limit", fmt.Sprint(limit))
	params.Set("format", "json")

	body, err := c.doGet(ctx, "searchEntities", c.apiURL(params))
	if err != nil {
		return nil, err
	}

	var resp rawEntitySearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	candidates := make([]metadata.Candidate, 0, len(resp.Search))
	for _, hit := range resp.Search {
		candidates = append(candidates, metadata.Candidate{
			Result: metadata.SearchResult{
				Provider:   providerID,
				ExternalID: hit.ID,
				Name:       textnorm.DecodeEntities(hit.Label),
			},
			Description: textnorm.DecodeEntities(hit.Description),
		})
	}
	return candidates, nil
}

// searchSPARQL is the fallback strategy: the same label search routed
// through the query service but restricted to game classes, so a query
// drowned out by homonyms still finds the game.
func (c *Client) searchSPARQL(ctx context.Context, query string, limit int) ([]metadata.Candidate, error) {
	sparql := fmt.Sprintf(sparqlSearchQuery, query, limit)

	body, err := c.doGet(ctx, "searchSPARQL", c.sparqlURL(sparql))
	if err != nil {
		return nil, err
	}

	var resp rawSPARQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	candidates := make([]metadata.Candidate, 0, len(resp.Results.Bindings))
	for _, row := range resp.Results.Bindings {
		id := entityIDFromURI(binding(row, "item"))
		if id == "" {
			continue
		}
		candidates = append(candidates, metadata.Candidate{
			Result: metadata.SearchResult{
				Provider:   providerID,
				ExternalID: id,
				Name:       textnorm.DecodeEntities(binding(row, "itemLabel")),
			},
			Description: textnorm.DecodeEntities(binding(row, "itemDescription")),
		})
	}
	return candidates, nil
}

// entityIDFromURI extracts "Q123" from a full entity URI.
func entityIDFromURI(uri string) string {
	id := uri[strings.LastIndex(uri, "/")+1:]
	if !entityIDRegex.MatchString(id) {
		return ""
	}
	return id
}
