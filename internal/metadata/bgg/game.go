package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

// Search queries the XMLAPI2 search endpoint for board games and
// expansions.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "boardgame,boardgameexpansion")

	body, err := c.doRequest(ctx, "search", "/xmlapi2/search", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "search", "", err)
	}

	var items rawItems
	if err := xml.Unmarshal(body, &items); err != nil {
		return nil, metadata.WrapError(providerID, "search", "", fmt.Errorf("parse response: %w", err))
	}

	if limit > 0 && len(items.Items) > limit {
		items.Items = items.Items[:limit]
	}

	results := make([]metadata.SearchResult, 0, len(items.Items))
	for _, item := range items.Items {
		r := metadata.SearchResult{
			Provider:   providerID,
			ExternalID: item.ID,
			Name:       textnorm.DecodeEntities(item.primaryName()),
		}
		if year, err := strconv.Atoi(item.YearPublished.Value); err == nil {
			r.ReleaseYear = year
		}
		results = append(results, r)
	}

	return results, nil
}

// GetGame fetches one thing record with statistics.
func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !thingIDRegex.MatchString(externalID) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("id", externalID)
	params.Set("stats", "1")

	body, err := c.doRequest(ctx, "getGame", "/xmlapi2/thing", params)
	if err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var items rawItems
	if err := xml.Unmarshal(body, &items); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	// Unknown ids answer 200 with an empty item list.
	if len(items.Items) == 0 {
		return nil, nil
	}
	item := items.Items[0]

	md := &metadata.GameMetadata{
		ExternalID: externalID,
		Name:       textnorm.DecodeEntities(item.primaryName()),
		// Descriptions arrive double-escaped: the XML decoder unescapes
		// once, the entity pass cleans up what remains.
		Description: textnorm.CleanDescription(item.Description),
		CoverURL:    item.Image,
		Genres:      decodeAll(item.linkValues("boardgamecategory")),
		Developers:  decodeAll(item.linkValues("boardgamedesigner")),
		Publishers:  decodeAll(item.linkValues("boardgamepublisher")),
		Players:     playersFromItem(item),
	}

	if year, err := strconv.Atoi(item.YearPublished.Value); err == nil && year != 0 {
		ts := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		md.ReleaseDate = &ts
	}
	if item.MinAge.Value != "" && item.MinAge.Value != "0" {
		md.AgeRating = item.MinAge.Value + "+"
	}
	if item.Statistics != nil {
		if avg, err := strconv.ParseFloat(item.Statistics.Ratings.Average.Value, 64); err == nil && avg > 0 {
			// BGG rates out of 10.
			md.ReviewScore = metadata.Float(avg * 10)
		}
	}

	return md, nil
}

// playersFromItem maps the published player range onto the physical
// play mode. A tabletop game is always physically playable.
func playersFromItem(item rawItem) *metadata.PlayerInfo {
	info := &metadata.PlayerInfo{
		SupportsPhysical: metadata.Bool(true),
	}

	if v, err := strconv.Atoi(item.MinPlayers.Value); err == nil && v > 0 {
		info.MinPlayers = metadata.Int(v)
		info.MinPlayersPhysical = metadata.Int(v)
	}
	if v, err := strconv.Atoi(item.MaxPlayers.Value); err == nil && v > 0 {
		info.MaxPlayers = metadata.Int(v)
		info.MaxPlayersPhysical = metadata.Int(v)
	}

	return info
}

func decodeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = textnorm.DecodeEntities(v)
	}
	return out
}
