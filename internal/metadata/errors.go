package metadata

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying adapter failures. Every adapter maps its
// source's failure modes onto exactly these:
//
//   - permanent misses (malformed id, source says "no such item") are NOT
//     errors; the adapter returns an absent result instead
//   - transient failures (rate limited, server error) are returned as
//     errors wrapping ErrRateLimited or ErrServer so callers may retry
//   - a missing credential is ErrMissingCredentials; the adapter degrades
//     to empty results rather than failing the pipeline
var (
	ErrRateLimited        = errors.New("metadata: rate limited by source")
	ErrServer             = errors.New("metadata: source server error")
	ErrMissingCredentials = errors.New("metadata: missing credentials")
	ErrInvalidID          = errors.New("metadata: invalid external id")
)

// IsTransient reports whether an error is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer)
}

// Error wraps an adapter failure with operation context.
type Error struct {
	Provider string // Adapter id, e.g. "steam"
	Op       string // Operation: "search", "getGame", "getGames"
	ID       string // External id, if applicable
	Err      error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s [%s]: %v", e.Provider, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError creates an Error with context. Adapters use this so every
// failure names its provider, operation, and item.
func WrapError(provider, op, id string, err error) error {
	return &Error{Provider: provider, Op: op, ID: id, Err: err}
}
