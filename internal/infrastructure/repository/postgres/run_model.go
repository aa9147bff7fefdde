package postgres

import (
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/run"
)

type runTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	HostProfileID string     `db:"host_profile_id"`
	CourtID       string     `db:"court_id"`
	StartsAt      time.Time  `db:"starts_at"`
	EndsAt        *time.Time `db:"ends_at"`
	PlayerLimit   int        `db:"player_limit"`
	SkillLevel    string     `db:"skill_level"`
	TeamType      string     `db:"team_type"`
	CostCents     int64      `db:"cost_cents"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (m runTableModel) toDomain() (run.Run, error) {
	status, err := run.ParseStatus(m.Status)
	if err != nil {
		return run.Run{}, fmt.Errorf("run %s: %w", m.PublicID, err)
	}

	out := run.Run{
		ID:            m.PublicID,
		HostProfileID: m.HostProfileID,
		CourtID:       m.CourtID,
		StartsAt:      m.StartsAt,
		PlayerLimit:   m.PlayerLimit,
		SkillLevel:    m.SkillLevel,
		TeamType:      m.TeamType,
		CostCents:     m.CostCents,
		Status:        status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.EndsAt != nil {
		out.EndsAt = *m.EndsAt
	}

	return out, nil
}
