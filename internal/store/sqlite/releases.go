package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
)

const releaseColumns = `id, owner_id, title_id, platform_id, edition, barcode, created_at`

func scanRelease(scanner interface{ Scan(dest ...any) error }) (*domain.Release, error) {
	var r domain.Release
	var createdAt string

	err := scanner.Scan(
		&r.ID,
		&r.OwnerID,
		&r.TitleID,
		&r.PlatformID,
		&r.Edition,
		&r.Barcode,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRelease inserts a new release.
func (s *Store) CreateRelease(ctx context.Context, r *domain.Release) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO releases (id, owner_id, title_id, platform_id, edition, barcode, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OwnerID, r.TitleID, r.PlatformID, r.Edition, r.Barcode, formatTime(r.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperrors.Validation("release references a missing title or platform")
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.AlreadyExistsf("release %s already exists", r.ID)
		}
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

// GetRelease retrieves one release by id.
func (s *Store) GetRelease(ctx context.Context, id string) (*domain.Release, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+releaseColumns+` FROM releases WHERE id = ?`, id)

	r, err := scanRelease(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("release %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get release: %w", err)
	}
	return r, nil
}

// ListReleasesByTitle returns a title's releases, oldest first.
func (s *Store) ListReleasesByTitle(ctx context.Context, ownerID, titleID string) ([]domain.Release, error) {
	return s.listReleases(ctx,
		`SELECT `+releaseColumns+` FROM releases WHERE owner_id = ? AND title_id = ? ORDER BY created_at`,
		ownerID, titleID)
}

// ListReleasesByPlatform returns a platform's releases, oldest first.
func (s *Store) ListReleasesByPlatform(ctx context.Context, ownerID, platformID string) ([]domain.Release, error) {
	return s.listReleases(ctx,
		`SELECT `+releaseColumns+` FROM releases WHERE owner_id = ? AND platform_id = ? ORDER BY created_at`,
		ownerID, platformID)
}

func (s *Store) listReleases(ctx context.Context, query string, args ...any) ([]domain.Release, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var releases []domain.Release
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		releases = append(releases, *r)
	}
	return releases, rows.Err()
}

// DeleteRelease removes one release.
func (s *Store) DeleteRelease(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM releases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete release: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete release rows: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("release %s not found", id)
	}
	return nil
}
