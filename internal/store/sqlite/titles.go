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

// titleColumns is the ordered list of columns selected in title queries.
// Must match the scan order in scanTitle.
const titleColumns = `id, owner_id, name, type, description, cover_url,
	min_players, max_players,
	supports_online, min_players_online, max_players_online,
	supports_local, min_players_local, max_players_local,
	supports_physical, min_players_physical, max_players_physical,
	created_at, updated_at`

// scanTitle scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.GameTitle.
func scanTitle(scanner interface{ Scan(dest ...any) error }) (*domain.GameTitle, error) {
	var t domain.GameTitle

	var (
		titleType        string
		supportsOnline   int
		supportsLocal    int
		supportsPhysical int
		createdAt        string
		updatedAt        string
	)

	err := scanner.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Name,
		&titleType,
		&t.Description,
		&t.CoverURL,
		&t.MinPlayers,
		&t.MaxPlayers,
		&supportsOnline,
		&t.MinPlayersOnline,
		&t.MaxPlayersOnline,
		&supportsLocal,
		&t.MinPlayersLocal,
		&t.MaxPlayersLocal,
		&supportsPhysical,
		&t.MinPlayersPhysical,
		&t.MaxPlayersPhysical,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TitleType(titleType)
	t.SupportsOnline = supportsOnline != 0
	t.SupportsLocal = supportsLocal != 0
	t.SupportsPhysical = supportsPhysical != 0

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CreateTitle inserts a new title.
func (s *Store) CreateTitle(ctx context.Context, t *domain.GameTitle) error {
	if !t.Type.Valid() {
		return apperrors.Validationf("invalid title type %q", t.Type)
	}

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO titles (
			id, owner_id, name, type, description, cover_url,
			min_players, max_players,
			supports_online, min_players_online, max_players_online,
			supports_local, min_players_local, max_players_local,
			supports_physical, min_players_physical, max_players_physical,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Name, string(t.Type), t.Description, t.CoverURL,
		t.MinPlayers, t.MaxPlayers,
		boolToInt(t.SupportsOnline), t.MinPlayersOnline, t.MaxPlayersOnline,
		boolToInt(t.SupportsLocal), t.MinPlayersLocal, t.MaxPlayersLocal,
		boolToInt(t.SupportsPhysical), t.MinPlayersPhysical, t.MaxPlayersPhysical,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.AlreadyExistsf("title %s already exists", t.ID)
		}
		return fmt.Errorf("insert title: %w", err)
	}
	return nil
}

// GetTitle retrieves one title by id.
func (s *Store) GetTitle(ctx context.Context, id string) (*domain.GameTitle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+titleColumns+` FROM titles WHERE id = ?`, id)

	t, err := scanTitle(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFoundf("title %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get title: %w", err)
	}
	return t, nil
}

// UpdateTitle applies a field-level patch to one title. Nil patch fields
// leave the stored value untouched. The whole patch applies in one
// statement, so per-call atomicity holds.
func (s *Store) UpdateTitle(ctx context.Context, id string, patch *domain.TitlePatch) error {
	if patch == nil || patch.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.CoverURL != nil {
		set("cover_url", *patch.CoverURL)
	}
	if patch.MinPlayers != nil {
		set("min_players", *patch.MinPlayers)
	}
	if patch.MaxPlayers != nil {
		set("max_players", *patch.MaxPlayers)
	}
	if patch.SupportsOnline != nil {
		set("supports_online", boolToInt(*patch.SupportsOnline))
	}
	if patch.MinPlayersOnline != nil {
		set("min_players_online", *patch.MinPlayersOnline)
	}
	if patch.MaxPlayersOnline != nil {
		set("max_players_online", *patch.MaxPlayersOnline)
	}
	if patch.SupportsLocal != nil {
		set("supports_local", boolToInt(*patch.SupportsLocal))
	}
	if patch.MinPlayersLocal != nil {
		set("min_players_local", *patch.MinPlayersLocal)
	}
	if patch.MaxPlayersLocal != nil {
		set("max_players_local", *patch.MaxPlayersLocal)
	}
	if patch.SupportsPhysical != nil {
		set("supports_physical", boolToInt(*patch.SupportsPhysical))
	}
	if patch.MinPlayersPhysical != nil {
		set("min_players_physical", *patch.MinPlayersPhysical)
	}
	if patch.MaxPlayersPhysical != nil {
		set("max_players_physical", *patch.MaxPlayersPhysical)
	}

	set("updated_at", formatTime(time.Now().UTC()))
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE titles SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update title: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update title rows: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("title %s not found", id)
	}
	return nil
}

// ListTitles returns every title owned by a user, ordered by name.
func (s *Store) ListTitles(ctx context.Context, ownerID string) ([]domain.GameTitle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+titleColumns+` FROM titles WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []domain.GameTitle
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, *t)
	}
	return titles, rows.Err()
}

// ListOwners returns every distinct owner id with at least one title.
// The sync daemon iterates this to drive per-owner bulk runs.
func (s *Store) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT owner_id FROM titles ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

// DeleteTitle removes one title. Releases referencing it cascade.
func (s *Store) DeleteTitle(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM titles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete title rows: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("title %s not found", id)
	}
	return nil
}
