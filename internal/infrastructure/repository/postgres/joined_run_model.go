package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/roster"
)

type joinedRunTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	ProfileID string         `db:"profile_id"`
	RunID     string         `db:"run_id"`
	InvitedAt time.Time      `db:"invited_at"`
	Status    string         `db:"status"`
	Present   bool           `db:"present"`
	JoinType  string         `db:"join_type"`
	SquadID   sql.NullString `db:"squad_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m joinedRunTableModel) toDomain() (roster.JoinedRun, error) {
	status, err := roster.ParseInviteStatus(m.Status)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("joined run %s: %w", m.PublicID, err)
	}
	joinType, err := roster.ParseJoinType(m.JoinType)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("joined run %s: %w", m.PublicID, err)
	}

	return roster.JoinedRun{
		ID:        m.PublicID,
		ProfileID: m.ProfileID,
		RunID:     m.RunID,
		InvitedAt: m.InvitedAt,
		Status:    status,
		Present:   m.Present,
		Type:      joinType,
		SquadID:   fromNullString(m.SquadID),
	}, nil
}
