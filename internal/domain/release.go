package domain

import "time"

// Release ties a title to the platform it was released on. Releases are the
// records repointed when two platforms are merged.
type Release struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TitleID    string    `json:"title_id"`
	PlatformID string    `json:"platform_id"`
	Edition    string    `json:"edition,omitempty"`
	Barcode    string    `json:"barcode,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
