package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
)

func newTestPlatformService(t *testing.T) (*PlatformService, *fakePlatformStore) {
	t.Helper()
	store := newFakePlatformStore()
	return NewPlatformService(store, slog.New(slog.DiscardHandler)), store
}

func TestSeedDefaults(t *testing.T) {
	svc, store := newTestPlatformService(t)

	require.NoError(t, svc.SeedDefaults(context.Background(), "user-1"))

	platforms, err := store.ListPlatforms(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, platforms, len(defaultPlatforms))

	names := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		names[p.Name] = true
		assert.True(t, p.IsDefault)
		assert.NotEmpty(t, p.ID)
	}
	assert.True(t, names["PC"])
	assert.True(t, names["Nintendo Switch"])
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	svc, store := newTestPlatformService(t)

	// The user already created a PC platform by hand; seeding must not
	// duplicate or replace it.
	existing := &domain.Platform{ID: "plat-mine", OwnerID: "user-1", Name: "pc"}
	require.NoError(t, store.CreatePlatform(context.Background(), existing))

	require.NoError(t, svc.SeedDefaults(context.Background(), "user-1"))
	require.NoError(t, svc.SeedDefaults(context.Background(), "user-1"))

	platforms, err := store.ListPlatforms(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, platforms, len(defaultPlatforms))

	kept, err := store.GetPlatform(context.Background(), "plat-mine")
	require.NoError(t, err)
	assert.Equal(t, "pc", kept.Name)
	assert.False(t, kept.IsDefault)
}

func TestSeedDefaultsEmptyOwner(t *testing.T) {
	svc, _ := newTestPlatformService(t)
	err := svc.SeedDefaults(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolveName(t *testing.T) {
	svc, store := newTestPlatformService(t)
	require.NoError(t, store.CreatePlatform(context.Background(), &domain.Platform{
		ID: "plat-1", OwnerID: "user-1", Name: "PlayStation 5",
	}))

	name, err := svc.ResolveName(context.Background(), "user-1", "ps5")
	require.NoError(t, err)
	assert.Equal(t, "PlayStation 5", name)
}

func TestResolveOrCreateExisting(t *testing.T) {
	svc, store := newTestPlatformService(t)
	require.NoError(t, store.CreatePlatform(context.Background(), &domain.Platform{
		ID: "plat-1", OwnerID: "user-1", Name: "PlayStation 5",
	}))

	p, err := svc.ResolveOrCreate(context.Background(), "user-1", "ps5")
	require.NoError(t, err)
	assert.Equal(t, "plat-1", p.ID, "resolution reuses the existing platform")

	platforms, err := store.ListPlatforms(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, platforms, 1)
}

func TestResolveOrCreateNew(t *testing.T) {
	svc, store := newTestPlatformService(t)

	p, err := svc.ResolveOrCreate(context.Background(), "user-1", "snes")
	require.NoError(t, err)
	assert.Equal(t, "Super Nintendo Entertainment System", p.Name,
		"default alias table supplies the canonical name")
	assert.True(t, p.HasAlias("snes"), "the typed spelling is remembered as an alias")

	platforms, err := store.ListPlatforms(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, platforms, 1)
}

func TestResolveOrCreateUnknownNameKeptVerbatim(t *testing.T) {
	svc, _ := newTestPlatformService(t)

	p, err := svc.ResolveOrCreate(context.Background(), "user-1", "  Amico  ")
	require.NoError(t, err)
	assert.Equal(t, "Amico", p.Name, "unmatched input becomes its own platform, trimmed")
}

func TestResolveOrCreateEmptyInput(t *testing.T) {
	svc, _ := newTestPlatformService(t)
	_, err := svc.ResolveOrCreate(context.Background(), "user-1", "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMergeDelegatesToStore(t *testing.T) {
	svc, store := newTestPlatformService(t)

	require.NoError(t, svc.Merge(context.Background(), "user-1", "plat-src", "plat-dst"))
	require.Len(t, store.mergeCalls, 1)
	assert.Equal(t, "user-1:plat-src->plat-dst", store.mergeCalls[0])
}

func TestMergePropagatesStoreError(t *testing.T) {
	svc, store := newTestPlatformService(t)
	store.mergeErr = apperrors.NotFound("source platform not found")

	err := svc.Merge(context.Background(), "user-1", "plat-src", "plat-dst")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
