// Package domain defines the core entities of the game catalog.
package domain

import "time"

// TitleType distinguishes the two kinds of collectible titles in the catalog.
// Most metadata providers register for a single type; a general-purpose source
// may serve both.
type TitleType string

const (
	TitleTypeVideoGame TitleType = "video_game"
	TitleTypeTabletop  TitleType = "tabletop"
)

// Valid returns true if this is a recognized title type.
func (t TitleType) Valid() bool {
	return t == TitleTypeVideoGame || t == TitleTypeTabletop
}

// GameTitle is the canonical record for one collectible title.
// The metadata engine only ever adds or corrects fields on it; it never
// deletes user-entered data.
type GameTitle struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Type        TitleType `json:"type"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`

	// Overall player counts, independent of mode.
	MinPlayers int `json:"min_players,omitempty"`
	MaxPlayers int `json:"max_players,omitempty"`

	// Per-mode support flags and player counts. A mode's counts are only
	// meaningful while its support flag is true.
	SupportsOnline     bool `json:"supports_online"`
	MinPlayersOnline   int  `json:"min_players_online,omitempty"`
	MaxPlayersOnline   int  `json:"max_players_online,omitempty"`
	SupportsLocal      bool `json:"supports_local"`
	MinPlayersLocal    int  `json:"min_players_local,omitempty"`
	MaxPlayersLocal    int  `json:"max_players_local,omitempty"`
	SupportsPhysical   bool `json:"supports_physical"`
	MinPlayersPhysical int  `json:"min_players_physical,omitempty"`
	MaxPlayersPhysical int  `json:"max_players_physical,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitlePatch is a field-level partial update for a GameTitle.
// Nil pointers mean "leave the field alone"; set pointers overwrite.
// This is the shape the persistence contract applies atomically.
type TitlePatch struct {
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`

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

// IsEmpty reports whether the patch changes nothing.
func (p *TitlePatch) IsEmpty() bool {
	return p.Description == nil && p.CoverURL == nil &&
		p.MinPlayers == nil && p.MaxPlayers == nil &&
		p.SupportsOnline == nil && p.MinPlayersOnline == nil && p.MaxPlayersOnline == nil &&
		p.SupportsLocal == nil && p.MinPlayersLocal == nil && p.MaxPlayersLocal == nil &&
		p.SupportsPhysical == nil && p.MinPlayersPhysical == nil && p.MaxPlayersPhysical == nil
}
