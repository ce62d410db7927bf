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

const platformColumns = `id, owner_id, name, description, is_default, aliases, created_at, updated_at`

func scanPlatform(scanner interface{ Scan(dest ...any) error }) (*domain.Platform, error) {
	var p domain.Platform

	var (
		isDefault int
		aliases   string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&isDefault,
		&aliases,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.IsDefault = isDefault != 0
	p.Aliases = domain.SplitAliases(aliases)

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePlatform inserts a new platform. Names are unique per owner.
func (s *Store) CreatePlatform(ctx context.Context, p *domain.Platform) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO platforms (id, owner_id, name, description, is_default, aliases, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.Description, boolToInt(p.IsDefault),
		domain.JoinAliases(p.Aliases), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.AlreadyExistsf("platform %q already exists for this user", p.Name)
		}
		return fmt.Errorf("insert platform: %w", err)
	}
	return nil
}

// GetPlatform retrieves one platform by id.
func (s *Store) GetPlatform(ctx context.Context, id string) (*domain.Platform, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+platformColumns+` FROM platforms WHERE id = ?`, id)

	p, err := scanPlatform(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("platform %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get platform: %w", err)
	}
	return p, nil
}

// ListPlatforms returns every platform owned by a user, ordered by name.
func (s *Store) ListPlatforms(ctx context.Context, ownerID string) ([]domain.Platform, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+platformColumns+` FROM platforms WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	defer rows.Close()

	var platforms []domain.Platform
	for rows.Next() {
		p, err := scanPlatform(rows)
		if err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		platforms = append(platforms, *p)
	}
	return platforms, rows.Err()
}

// UpdatePlatform overwrites one platform's mutable fields.
func (s *Store) UpdatePlatform(ctx context.Context, p *domain.Platform) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE platforms SET name = ?, description = ?, is_default = ?, aliases = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, boolToInt(p.IsDefault),
		domain.JoinAliases(p.Aliases), formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.AlreadyExistsf("platform %q already exists for this user", p.Name)
		}
		return fmt.Errorf("update platform: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update platform rows: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("platform %s not found", p.ID)
	}
	return nil
}

// DeletePlatform removes one platform. Fails while releases still
// reference it.
func (s *Store) DeletePlatform(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM platforms WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperrors.Conflict("platform still has releases; merge or delete them first")
		}
		return fmt.Errorf("delete platform: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete platform rows: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("platform %s not found", id)
	}
	return nil
}

// MergePlatforms folds the source platform into the target: the source's
// own name and every alias it carries join the target's alias list, all
// releases referencing the source are repointed at the target, and the
// source row is deleted. The three steps run in one transaction.
func (s *Store) MergePlatforms(ctx context.Context, ownerID, sourceID, targetID string) error {
	if sourceID == targetID {
		return apperrors.Validation("cannot merge a platform into itself")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge: %w", err)
	}
	defer tx.Rollback()

	loadPlatform := func(id string) (*domain.Platform, error) {
		row := tx.QueryRowContext(ctx,
			`SELECT `+platformColumns+` FROM platforms WHERE id = ? AND owner_id = ?`, id, ownerID)
		p, err := scanPlatform(row)
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundf("platform %s not found", id)
		}
		if err != nil {
			return nil, fmt.Errorf("load platform %s: %w", id, err)
		}
		return p, nil
	}

	source, err := loadPlatform(sourceID)
	if err != nil {
		return err
	}
	target, err := loadPlatform(targetID)
	if err != nil {
		return err
	}

	// Union the source's identity into the target's alias list. AddAlias
	// skips duplicates and the target's own name.
	target.AddAlias(source.Name)
	for _, alias := range source.Aliases {
		target.AddAlias(alias)
	}

	now := formatTime(time.Now().UTC())
	if _, err := tx.ExecContext(ctx,
		`UPDATE platforms SET aliases = ?, updated_at = ? WHERE id = ?`,
		domain.JoinAliases(target.Aliases), now, targetID); err != nil {
		return fmt.Errorf("merge aliases: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE releases SET platform_id = ? WHERE platform_id = ? AND owner_id = ?`,
		targetID, sourceID, ownerID); err != nil {
		return fmt.Errorf("repoint releases: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM platforms WHERE id = ?`, sourceID); err != nil {
		return fmt.Errorf("delete merged platform: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("merged platforms",
			"owner", ownerID, "source", source.Name, "target", target.Name)
	}
	return nil
}
