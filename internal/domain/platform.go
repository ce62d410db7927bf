package domain

import (
	"strings"
	"time"
)

// Platform is a per-user canonical platform record. Platform names are
// unique per owner; the alias list holds every free-text variant that
// resolves to this platform.
type Platform struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsDefault   bool      `json:"is_default"`
	Aliases     []string  `json:"aliases,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasAlias reports whether the platform carries the given alias,
// case-insensitively and ignoring surrounding whitespace.
func (p *Platform) HasAlias(name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}
	for _, a := range p.Aliases {
		if strings.ToLower(strings.TrimSpace(a)) == needle {
			return true
		}
	}
	return false
}

// AddAlias appends an alias unless it is empty, equal to the platform's own
// name, or already present.
func (p *Platform) AddAlias(name string) {
	alias := strings.TrimSpace(name)
	if alias == "" {
		return
	}
	if strings.EqualFold(alias, p.Name) {
		return
	}
	if p.HasAlias(alias) {
		return
	}
	p.Aliases = append(p.Aliases, alias)
}

// JoinAliases renders the alias list in its stored comma-joined form.
func JoinAliases(aliases []string) string {
	return strings.Join(aliases, ",")
}

// SplitAliases parses the stored comma-joined alias form, dropping empties.
func SplitAliases(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
