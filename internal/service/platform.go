package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/id"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/platform"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/store"
)

// defaultPlatforms is the starter platform set seeded for every new
// user. Names match the canonical names in the built-in alias table so
// resolution lands on them immediately.
var defaultPlatforms = []string{
	"PC",
	"PlayStation 5",
	"Xbox Series X/S",
	"Nintendo Switch",
	"Tabletop",
}

// PlatformService manages a user's platform records: seeding the
// default set, resolving free-text names to canonical platforms, and
// merging duplicates.
type PlatformService struct {
	platforms store.PlatformStore
	logger    *slog.Logger
}

func NewPlatformService(platforms store.PlatformStore, logger *slog.Logger) *PlatformService {
	return &PlatformService{
		platforms: platforms,
		logger:    logger,
	}
}

// SeedDefaults creates the starter platform set for a new user. Seeding
// is idempotent: platforms the user already has (by name) are left
// alone.
func (s *PlatformService) SeedDefaults(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperrors.Validation("owner id is required")
	}

	existing, err := s.platforms.ListPlatforms(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list platforms: %w", err)
	}

	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[strings.ToLower(p.Name)] = true
	}

	for _, name := range defaultPlatforms {
		if have[strings.ToLower(name)] {
			continue
		}
		p := &domain.Platform{
			ID:        id.MustGenerate("plat"),
			OwnerID:   ownerID,
			Name:      name,
			IsDefault: true,
		}
		if err := s.platforms.CreatePlatform(ctx, p); err != nil {
			return fmt.Errorf("seed platform %q: %w", name, err)
		}
	}
	return nil
}

// ResolveName maps a free-text platform name to the user's canonical
// platform name, without creating anything.
func (s *PlatformService) ResolveName(ctx context.Context, ownerID, input string) (string, error) {
	existing, err := s.platforms.ListPlatforms(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("list platforms: %w", err)
	}
	return platform.Resolve(input, existing), nil
}

// ResolveOrCreate maps a free-text name to one of the user's platforms,
// creating a platform under the resolved canonical name when none
// exists yet.
func (s *PlatformService) ResolveOrCreate(ctx context.Context, ownerID, input string) (*domain.Platform, error) {
	if strings.TrimSpace(input) == "" {
		return nil, apperrors.Validation("platform name is required")
	}

	existing, err := s.platforms.ListPlatforms(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}

	canonical := platform.Resolve(input, existing)
	for i := range existing {
		if strings.EqualFold(existing[i].Name, canonical) {
			return &existing[i], nil
		}
	}

	p := &domain.Platform{
		ID:      id.MustGenerate("plat"),
		OwnerID: ownerID,
		Name:    canonical,
	}
	// Remember the spelling the user actually typed.
	p.AddAlias(input)

	if err := s.platforms.CreatePlatform(ctx, p); err != nil {
		return nil, fmt.Errorf("create platform %q: %w", canonical, err)
	}
	s.logger.Info("created platform from free-text name",
		"ownerID", ownerID, "input", input, "canonical", canonical)
	return p, nil
}

// Merge folds the source platform into the target platform for one
// user: aliases union, releases repoint, source deleted, atomically.
func (s *PlatformService) Merge(ctx context.Context, ownerID, sourceID, targetID string) error {
	if err := s.platforms.MergePlatforms(ctx, ownerID, sourceID, targetID); err != nil {
		return err
	}
	s.logger.Info("merged platforms",
		"ownerID", ownerID, "sourceID", sourceID, "targetID", targetID)
	return nil
}
