package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/courtside/hooprun/internal/domain/profile"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Username    string     `db:"username"`
	DisplayName string     `db:"display_name"`
	ImageURL    string     `db:"image_url"`
	Position    string     `db:"position"`
	City        string     `db:"city"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m profileTableModel) toDomain() profile.Profile {
	return profile.Profile{
		ID:          m.PublicID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		ImageURL:    m.ImageURL,
		Position:    m.Position,
		City:        m.City,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

const profileColumns = `id, public_id, username, display_name, image_url, position, city, created_at, updated_at, deleted_at`

func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (profile.Profile, bool, error) {
	query := `
SELECT ` + profileColumns + `
FROM profiles
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, profileID); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ProfileRepository) GetDisplayByIDs(ctx context.Context, profileIDs []string) (map[string]profile.Display, error) {
	out := make(map[string]profile.Display, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	const query = `
SELECT public_id, username, display_name, image_url
FROM profiles
WHERE public_id = ANY($1)
  AND deleted_at IS NULL`

	var rows []struct {
		PublicID    string `db:"public_id"`
		Username    string `db:"username"`
		DisplayName string `db:"display_name"`
		ImageURL    string `db:"image_url"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(profileIDs)); err != nil {
		return nil, fmt.Errorf("list profile displays: %w", err)
	}

	for _, row := range rows {
		out[row.PublicID] = profile.Display{
			ID:          row.PublicID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			ImageURL:    row.ImageURL,
		}
	}

	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	const query = `
INSERT INTO profiles (public_id, username, display_name, image_url, position, city)
VALUES (:public_id, :username, :display_name, :image_url, :position, :city)
ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    username = EXCLUDED.username,
    display_name = EXCLUDED.display_name,
    image_url = EXCLUDED.image_url,
    position = EXCLUDED.position,
    city = EXCLUDED.city,
    updated_at = NOW()`

	args := map[string]any{
		"public_id":    p.ID,
		"username":     p.Username,
		"display_name": p.DisplayName,
		"image_url":    p.ImageURL,
		"position":     p.Position,
		"city":         p.City,
	}
	upsertSQL, upsertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind upsert profile query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)

	if _, err := r.db.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
