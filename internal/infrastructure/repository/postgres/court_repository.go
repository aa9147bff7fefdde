package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/court"
)

type CourtRepository struct {
	db *sqlx.DB
}

func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

type courtTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Address   string     `db:"address"`
	City      string     `db:"city"`
	Latitude  float64    `db:"latitude"`
	Longitude float64    `db:"longitude"`
	Indoor    bool       `db:"indoor"`
	HoopCount int        `db:"hoop_count"`
	ImageURL  string     `db:"image_url"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m courtTableModel) toDomain() court.Court {
	return court.Court{
		ID:        m.PublicID,
		Name:      m.Name,
		Address:   m.Address,
		City:      m.City,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Indoor:    m.Indoor,
		HoopCount: m.HoopCount,
		ImageURL:  m.ImageURL,
	}
}

const courtColumns = `id, public_id, name, address, city, latitude, longitude, indoor, hoop_count, image_url, created_at, updated_at, deleted_at`

func (r *CourtRepository) List(ctx context.Context, city string) ([]court.Court, error) {
	query := `
SELECT ` + courtColumns + `
FROM courts
WHERE deleted_at IS NULL`
	args := []any{}
	if city != "" {
		query += `
  AND LOWER(city) = LOWER($1)`
		args = append(args, city)
	}
	query += `
ORDER BY name, id`

	var rows []courtTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	out := make([]court.Court, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *CourtRepository) GetByID(ctx context.Context, courtID string) (court.Court, bool, error) {
	query := `
SELECT ` + courtColumns + `
FROM courts
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row courtTableModel
	if err := r.db.GetContext(ctx, &row, query, courtID); err != nil {
		if isNotFound(err) {
			return court.Court{}, false, nil
		}
		return court.Court{}, false, fmt.Errorf("get court: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CourtRepository) Create(ctx context.Context, c court.Court) error {
	const query = `
INSERT INTO courts (public_id, name, address, city, latitude, longitude, indoor, hoop_count, image_url)
VALUES (:public_id, :name, :address, :city, :latitude, :longitude, :indoor, :hoop_count, :image_url)`

	args := map[string]any{
		"public_id":  c.ID,
		"name":       c.Name,
		"address":    c.Address,
		"city":       c.City,
		"latitude":   c.Latitude,
		"longitude":  c.Longitude,
		"indoor":     c.Indoor,
		"hoop_count": c.HoopCount,
		"image_url":  c.ImageURL,
	}
	insertSQL, insertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind insert court query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert court: %w", err)
	}

	return nil
}
