package igdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

const gameFields = `fields name, slug, summary, first_release_date, aggregated_rating,
cover.url, genres.name, platforms.name, game_modes.name,
involved_companies.company.name, involved_companies.developer, involved_companies.publisher,
multiplayer_modes.onlinemax, multiplayer_modes.onlinecoopmax, multiplayer_modes.offlinemax,
multiplayer_modes.offlinecoop, multiplayer_modes.lancoop, multiplayer_modes.splitscreen,
multiplayer_modes.campaigncoop;`

// GetGame fetches one IGDB game by numeric id.
func (c *Client) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	if !c.available("getGame") {
		return nil, nil
	}
	if !gameIDRegex.MatchString(externalID) {
		return nil, nil
	}

	apicalypse := fmt.Sprintf("%s where id = %s;", gameFields, externalID)

	body, err := c.query(ctx, "getGame", "/games", apicalypse)
	if err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, err)
	}

	var games []rawGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, metadata.WrapError(providerID, "getGame", externalID, fmt.Errorf("parse response: %w", err))
	}
	if len(games) == 0 {
		return nil, nil
	}

	return convertGame(externalID, games[0], body), nil
}

func convertGame(externalID string, g rawGame, raw []byte) *metadata.GameMetadata {
	md := &metadata.GameMetadata{
		ExternalID:  externalID,
		Name:        g.Name,
		Description: textnorm.CleanDescription(g.Summary),
		Players:     playersFromModes(g),
		RawPayload:  raw,
	}

	if g.Cover != nil {
		md.CoverURL = coverURL(g.Cover.URL)
	}
	for _, genre := range g.Genres {
		md.Genres = append(md.Genres, genre.Name)
	}
	for _, p := range g.Platforms {
		md.Platforms = append(md.Platforms, p.Name)
	}
	for _, ic := range g.InvolvedCompanies {
		if ic.Developer {
			md.Developers = append(md.Developers, ic.Company.Name)
		}
		if ic.Publisher {
			md.Publishers = append(md.Publishers, ic.Company.Name)
		}
	}
	if g.FirstReleaseDate > 0 {
		ts := time.Unix(g.FirstReleaseDate, 0).UTC()
		md.ReleaseDate = &ts
	}
	if g.AggregatedRating > 0 {
		md.ReviewScore = metadata.Float(g.AggregatedRating)
	}

	return md
}

// playersFromModes folds IGDB's per-platform multiplayer records into
// one player-count view, taking the maximum across platforms. Zero
// counts mean "not filled in" and are skipped.
func playersFromModes(g rawGame) *metadata.PlayerInfo {
	var info metadata.PlayerInfo

	var onlineMax, localMax int
	var localCoop bool
	for _, m := range g.MultiplayerModes {
		onlineMax = max(onlineMax, m.OnlineMax, m.OnlineCoopMax)
		localMax = max(localMax, m.OfflineMax)
		if m.OfflineCoop || m.SplitScreen || m.LANCoop {
			localCoop = true
		}
	}

	if onlineMax > 0 {
		info.SupportsOnline = metadata.Bool(true)
		info.MaxPlayersOnline = metadata.Int(onlineMax)
	}
	if localMax > 1 || localCoop {
		info.SupportsLocal = metadata.Bool(true)
		if localMax > 1 {
			info.MaxPlayersLocal = metadata.Int(localMax)
		}
	}

	// Game modes flag support even when no multiplayer record exists.
	for _, mode := range g.GameModes {
		name := strings.ToLower(mode.Name)
		if strings.Contains(name, "multiplayer") && info.SupportsOnline == nil {
			info.SupportsOnline = metadata.Bool(true)
		}
		if strings.Contains(name, "split screen") && info.SupportsLocal == nil {
			info.SupportsLocal = metadata.Bool(true)
		}
	}

	if info.IsZero() {
		return nil
	}
	return &info
}

// coverURL upgrades IGDB's protocol-relative thumbnail URL to a full
// size https URL.
func coverURL(raw string) string {
	if raw == "" {
		return ""
	}
	full := strings.Replace(raw, "t_thumb", "t_cover_big", 1)
	if strings.HasPrefix(full, "//") {
		full = "https:" + full
	}
	return full
}
