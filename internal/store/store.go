// Package store defines the persistence contracts the metadata engine
// consumes, plus the on-disk metadata cache shared by all adapters.
package store

import (
	"context"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
)

// TitleStore is the catalog-side contract for reading and patching
// titles. Patches apply atomically per call.
type TitleStore interface {
	GetTitle(ctx context.Context, id string) (*domain.GameTitle, error)
	ListTitles(ctx context.Context, ownerID string) ([]domain.GameTitle, error)
	UpdateTitle(ctx context.Context, id string, patch *domain.TitlePatch) error
}

// PlatformStore manages a user's platforms, their alias lists, and the
// merge operation that collapses duplicate platforms.
type PlatformStore interface {
	CreatePlatform(ctx context.Context, p *domain.Platform) error
	GetPlatform(ctx context.Context, id string) (*domain.Platform, error)
	ListPlatforms(ctx context.Context, ownerID string) ([]domain.Platform, error)
	UpdatePlatform(ctx context.Context, p *domain.Platform) error
	DeletePlatform(ctx context.Context, id string) error

	// MergePlatforms folds platform sourceID into targetID: the source's
	// name and aliases join the target's alias list, every release
	// pointing at the source is repointed, and the source is deleted.
	// All three steps commit together or not at all.
	MergePlatforms(ctx context.Context, ownerID, sourceID, targetID string) error
}

// ReleaseStore manages owned release records (a physical or digital copy
// of a title on a platform).
type ReleaseStore interface {
	CreateRelease(ctx context.Context, r *domain.Release) error
	GetRelease(ctx context.Context, id string) (*domain.Release, error)
	ListReleasesByTitle(ctx context.Context, ownerID, titleID string) ([]domain.Release, error)
	ListReleasesByPlatform(ctx context.Context, ownerID, platformID string) ([]domain.Release, error)
	DeleteRelease(ctx context.Context, id string) error
}
