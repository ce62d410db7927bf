package steam

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

// App ids are plain positive integers.
var appIDRegex = regexp.MustCompile(`^[0-9]{1,10}$`)

// GetGame fetches the full store record for one app id.
// A malformed id or an unsuccessful appdetails entry is a permanent miss.
func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !appIDRegex.MatchString(externalID) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("appids", externalID)
	params.Set("cc", "us")
	params.Set("l", "en")

	body, err := c.doRequest(ctx, "getGame", "/api/appdetails", params)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	// The payload is keyed by the requested app id.
	var resp map[string]rawAppDetails
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}

	entry, ok := resp[externalID]
	if !ok || !entry.Success {
		// The store explicitly reports "no such app": permanent miss.
		return nil, nil
	}

	return c.convertApp(externalID, &entry.Data, body), nil
}

// convertApp maps the store payload onto the canonical shape.
func (c *Client) convertApp(externalID string, app *rawAppData, raw []byte) *metadata.GameMetadata {
	md := &metadata.GameMetadata{
		ExternalID:       externalID,
		Name:             app.Name,
		Description:      textnorm.CleanDescription(app.DetailedDesc),
		ShortDescription: textnorm.CleanDescription(app.ShortDescription),
		CoverURL:         app.HeaderImage,
		Developers:       app.Developers,
		Publishers:       app.Publishers,
		StoreURL:         c.GameURL(externalID),
		RawPayload:       raw,
	}

	if md.Description == "" {
		md.Description = textnorm.CleanDescription(app.AboutTheGame)
	}

	for _, g := range app.Genres {
		if g.Description != "" {
			md.Genres = append(md.Genres, g.Description)
		}
	}

	if app.Platforms.Windows {
		md.Platforms = append(md.Platforms, "Windows")
	}
	if app.Platforms.Mac {
		md.Platforms = append(md.Platforms, "Mac")
	}
	if app.Platforms.Linux {
		md.Platforms = append(md.Platforms, "Linux")
	}

	if !app.ReleaseDate.ComingSoon && app.ReleaseDate.Date != "" {
		// Store dates look like "10 Sep, 2020".
		if ts, err := time.Parse("2 Jan, 2006", app.ReleaseDate.Date); err == nil {
			md.ReleaseDate = &ts
		}
	}

	if app.Metacritic != nil && app.Metacritic.Score > 0 {
		md.ReviewScore = metadata.Float(float64(app.Metacritic.Score))
	}

	if app.RequiredAge > 0 {
		md.AgeRating = strconv.Itoa(app.RequiredAge) + "+"
	}

	if app.PriceOverview != nil {
		md.Price = &metadata.PriceInfo{
			Currency:    app.PriceOverview.Currency,
			Current:     float64(app.PriceOverview.Final) / 100,
			Initial:     float64(app.PriceOverview.Initial) / 100,
			DiscountPct: app.PriceOverview.DiscountPercent,
		}
	} else if app.IsFree {
		md.Price = &metadata.PriceInfo{IsFreeToPlay: true}
	}

	md.Players = playersFromCategories(app.Categories)

	return md
}

// playersFromCategories derives mode support flags from store categories.
// The store never reports concrete counts, so only flags are set; the
// enrichment pass supplies numbers from a counts-capable source.
func playersFromCategories(categories []rawCategory) *metadata.PlayerInfo {
	if len(categories) == 0 {
		return nil
	}

	info := &metadata.PlayerInfo{}
	touched := false
	for _, cat := range categories {
		switch cat.ID {
		case categoryOnlinePvP, categoryOnlineCoop:
			info.SupportsOnline = metadata.Bool(true)
			touched = true
		case categoryLocalMultiplayer, categoryLocalCoop:
			info.SupportsLocal = metadata.Bool(true)
			touched = true
		case categoryMultiplayer:
			// Generic multiplayer without mode detail: assume online.
			if info.SupportsOnline == nil {
				info.SupportsOnline = metadata.Bool(true)
			}
			touched = true
		case categorySinglePlayer:
			if info.MinPlayers == nil {
				info.MinPlayers = metadata.Int(1)
			}
			touched = true
		}
	}

	if !touched {
		return nil
	}
	return info
}
