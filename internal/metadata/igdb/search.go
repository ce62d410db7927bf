package igdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strconv"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
)

// Search runs IGDB's own full-text search, which is reliable enough to
// use unranked.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	if !c.available("search") {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	apicalypse := fmt.Sprintf("search %s; fields name, slug, first_release_date, cover.url; limit %d;",
		strconv.Quote(query), limit)

	body, err := c.query(ctx, "search", "/games", apicalypse)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var games []rawGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	results := make([]metadata.SearchResult, 0, len(games))
	for _, g := range games {
		r := metadata.SearchResult{
			Provider:   providerID,
			ExternalID: fmt.Sprint(g.ID),
			Name:       g.Name,
		}
		if g.Cover != nil {
			r.CoverURL = coverURL(g.Cover.URL)
		}
		if g.FirstReleaseDate > 0 {
			r.ReleaseYear = time.Unix(g.FirstReleaseDate, 0).UTC().Year()
		}
		results = append(results, r)
	}

	return results, nil
}
