// Package metadata defines the capability contract every external
// metadata source is integrated behind, plus the registry and shared
// helpers the orchestration service dispatches through.
package metadata

import (
	"encoding/json/jsontext"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
)

// Manifest is the static identity of a provider adapter.
type Manifest struct {
	// ID is the stable machine name, e.g. "steam" or "bgg".
	ID string `json:"id"`
	// DisplayName is shown in provenance messages and pickers.
	DisplayName string `json:"display_name"`
	// RequiresKey marks adapters that are unavailable without a credential.
	RequiresKey bool `json:"requires_key"`
	// URLTemplate deep-links an external id, with %s as the placeholder.
	URLTemplate string `json:"url_template,omitempty"`
	// TitleTypes lists the title types this adapter serves.
	TitleTypes []domain.TitleType `json:"title_types"`
}

// ServesType reports whether the adapter covers the given title type.
func (m Manifest) ServesType(t domain.TitleType) bool {
	for _, tt := range m.TitleTypes {
		if tt == t {
			return true
		}
	}
	return false
}

// Capability is one boolean property of an adapter, used for dispatch
// instead of adapter identity.
type Capability string

const (
	CapAccuratePlayerCounts Capability = "accurate_player_counts"
	CapStoreURLs            Capability = "store_urls"
	CapBatchFetch           Capability = "batch_fetch"
	CapSearch               Capability = "search"
	CapDescriptions         Capability = "descriptions"
	CapCoverImages          Capability = "cover_images"
)

// Capabilities declares what data an adapter can supply.
type Capabilities struct {
	AccuratePlayerCounts bool `json:"accurate_player_counts"`
	StoreURLs            bool `json:"store_urls"`
	BatchFetch           bool `json:"batch_fetch"`
	Search               bool `json:"search"`
	Descriptions         bool `json:"descriptions"`
	CoverImages          bool `json:"cover_images"`
}

// Has reports whether the capability flag is set.
func (c Capabilities) Has(flag Capability) bool {
	switch flag {
	case CapAccuratePlayerCounts:
		return c.AccuratePlayerCounts
	case CapStoreURLs:
		return c.StoreURLs
	case CapBatchFetch:
		return c.BatchFetch
	case CapSearch:
		return c.Search
	case CapDescriptions:
		return c.Descriptions
	case CapCoverImages:
		return c.CoverImages
	}
	return false
}

// RateLimitConfig is the per-adapter outbound traffic policy.
type RateLimitConfig struct {
	// MinRequestInterval is the minimum delay between individual requests.
	MinRequestInterval time.Duration `json:"min_request_interval"`
	// MaxBatchSize is how many items a batch fetch processes before pausing.
	MaxBatchSize int `json:"max_batch_size"`
	// BatchInterval is the pause between batches.
	BatchInterval time.Duration `json:"batch_interval"`
	// MaxItemsPerSync caps how many items one sync run may fetch.
	MaxItemsPerSync int `json:"max_items_per_sync"`
	// RetryDelay is the wait before retrying a transient failure.
	RetryDelay time.Duration `json:"retry_delay"`
	// MaxRetries bounds transient retries per item.
	MaxRetries int `json:"max_retries"`
	// MaxConsecutiveFailures aborts a batch once this many items fail in a row.
	MaxConsecutiveFailures int `json:"max_consecutive_failures"`
}

// PlayerInfo carries player-count data for a game. Pointer fields
// distinguish "the source did not say" from "known zero/false".
type PlayerInfo struct {
	MinPlayers *int `json:"min_players,omitempty"`
	MaxPlayers *int `json:"max_players,omitempty"`

	SupportsOnline   *bool `json:"supports_online,omitempty"`
	MinPlayersOnline *int  `json:"min_players_online,omitempty"`
	MaxPlayersOnline *int  `json:"max_players_online,omitempty"`

	SupportsLocal   *bool `json:"supports_local,omitempty"`
	MinPlayersLocal *int  `json:"min_players_local,omitempty"`
	MaxPlayersLocal *int  `json:"max_players_local,omitempty"`

	SupportsPhysical   *bool `json:"supports_physical,omitempty"`
	MinPlayersPhysical *int  `json:"min_players_physical,omitempty"`
	MaxPlayersPhysical *int  `json:"max_players_physical,omitempty"`
}

// IsZero reports whether the record carries no information at all.
func (p *PlayerInfo) IsZero() bool {
	if p == nil {
		return true
	}
	return p.MinPlayers == nil && p.MaxPlayers == nil &&
		p.SupportsOnline == nil && p.MinPlayersOnline == nil && p.MaxPlayersOnline == nil &&
		p.SupportsLocal == nil && p.MinPlayersLocal == nil && p.MaxPlayersLocal == nil &&
		p.SupportsPhysical == nil && p.MinPlayersPhysical == nil && p.MaxPlayersPhysical == nil
}

// ClaimsMultiplayer reports whether any mode is flagged as supported.
func (p *PlayerInfo) ClaimsMultiplayer() bool {
	if p == nil {
		return false
	}
	return boolVal(p.SupportsOnline) || boolVal(p.SupportsLocal) || boolVal(p.SupportsPhysical)
}

// HasSpecificCounts reports whether at least one supported mode carries a
// concrete max-player number.
func (p *PlayerInfo) HasSpecificCounts() bool {
	if p == nil {
		return false
	}
	if boolVal(p.SupportsOnline) && p.MaxPlayersOnline != nil {
		return true
	}
	if boolVal(p.SupportsLocal) && p.MaxPlayersLocal != nil {
		return true
	}
	if boolVal(p.SupportsPhysical) && p.MaxPlayersPhysical != nil {
		return true
	}
	return false
}

// PriceInfo is current store pricing, where the source exposes it.
type PriceInfo struct {
	Currency     string  `json:"currency"`
	Current      float64 `json:"current"`
	Initial      float64 `json:"initial,omitempty"`
	DiscountPct  int     `json:"discount_pct,omitempty"`
	IsFreeToPlay bool    `json:"is_free_to_play,omitempty"`
}

// GameMetadata is the canonical result shape an adapter returns for one
// external title. ExternalID and Name are always present; everything else
// is optional, with pointers where absence must be distinguishable from a
// known false/zero value.
type GameMetadata struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`

	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`

	CoverURL       string   `json:"cover_url,omitempty"`
	ScreenshotURLs []string `json:"screenshot_urls,omitempty"`

	Genres     []string `json:"genres,omitempty"`
	Developers []string `json:"developers,omitempty"`
	Publishers []string `json:"publishers,omitempty"`

	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Platforms   []string   `json:"platforms,omitempty"`

	ReviewScore *float64 `json:"review_score,omitempty"`
	AgeRating   string   `json:"age_rating,omitempty"`
	StoreURL    string   `json:"store_url,omitempty"`

	Players *PlayerInfo `json:"players,omitempty"`
	Price   *PriceInfo  `json:"price,omitempty"`

	// RawPayload preserves the source response for diagnostics.
	RawPayload jsontext.Value `json:"raw_payload,omitempty"`
}

// SearchResult is a lightweight candidate used for ranking before a full
// fetch, tagged with the provider that produced it.
type SearchResult struct {
	Provider    string `json:"provider"`
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	ReleaseYear int    `json:"release_year,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// Pointer helpers for optional fields.

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func boolVal(b *bool) bool { return b != nil && *b }
