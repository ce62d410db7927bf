package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
)

func TestReleaseRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTitle(ctx, newTitle("t1", "Hades")))
	require.NoError(t, s.CreatePlatform(ctx, newPlatform("p1", "Switch")))

	r := &domain.Release{
		ID: "r1", OwnerID: "user1", TitleID: "t1", PlatformID: "p1",
		Edition: "Deluxe Edition", Barcode: "0045496598",
	}
	require.NoError(t, s.CreateRelease(ctx, r))

	got, err := s.GetRelease(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.TitleID)
	assert.Equal(t, "p1", got.PlatformID)
	assert.Equal(t, "Deluxe Edition", got.Edition)
	assert.Equal(t, "0045496598", got.Barcode)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateReleaseValidatesReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.CreateRelease(ctx, &domain.Release{
		ID: "r1", OwnerID: "user1", TitleID: "nope", PlatformID: "nope",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestListReleasesByTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTitle(ctx, newTitle("t1", "Hades")))
	require.NoError(t, s.CreatePlatform(ctx, newPlatform("p1", "Switch")))
	require.NoError(t, s.CreatePlatform(ctx, newPlatform("p2", "PC")))

	require.NoError(t, s.CreateRelease(ctx, &domain.Release{ID: "r1", OwnerID: "user1", TitleID: "t1", PlatformID: "p1"}))
	require.NoError(t, s.CreateRelease(ctx, &domain.Release{ID: "r2", OwnerID: "user1", TitleID: "t1", PlatformID: "p2"}))

	releases, err := s.ListReleasesByTitle(ctx, "user1", "t1")
	require.NoError(t, err)
	assert.Len(t, releases, 2)
}

func TestDeleteRelease(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTitle(ctx, newTitle("t1", "Hades")))
	require.NoError(t, s.CreatePlatform(ctx, newPlatform("p1", "Switch")))
	require.NoError(t, s.CreateRelease(ctx, &domain.Release{ID: "r1", OwnerID: "user1", TitleID: "t1", PlatformID: "p1"}))

	require.NoError(t, s.DeleteRelease(ctx, "r1"))

	_, err := s.GetRelease(ctx, "r1")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	err = s.DeleteRelease(ctx, "r1")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
