package steam

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
)

// Search queries the store's search endpoint.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	params := url.Values{}
	params.Set("term", query)
	params.Set("cc", "us")
	params.Set("l", "en")

	body, err := c.doRequest(ctx, "search", "/api/storesearch/", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	if limit <= 0 || limit > len(resp.Items) {
		limit = len(resp.Items)
	}

	results := make([]metadata.SearchResult, 0, limit)
	for _, item := range resp.Items[:limit] {
		results = append(results, metadata.SearchResult{
			Provider:   providerID,
			ExternalID: strconv.FormatInt(item.ID, 10),
			Name:       item.Name,
			CoverURL:   item.TinyImage,
		})
	}

	return results, nil
}
