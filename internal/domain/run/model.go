package run

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a run. Runs are never hard-deleted;
// cancellation and removal are status changes.
type Status string

const (
	StatusActive    Status = "Active"
	StatusRemoved   Status = "Removed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusActive, StatusRemoved, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown run status %q", raw)
	}
}

// Run is a scheduled pickup-game event hosted by a profile at a court.
type Run struct {
	ID            string
	HostProfileID string
	CourtID       string
	StartsAt      time.Time
	EndsAt        time.Time
	PlayerLimit   int
	SkillLevel    string
	TeamType      string
	CostCents     int64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r Run) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if r.HostProfileID == "" {
		return fmt.Errorf("run host profile id is required")
	}
	if r.CourtID == "" {
		return fmt.Errorf("run court id is required")
	}
	if r.StartsAt.IsZero() {
		return fmt.Errorf("run start time is required")
	}
	if !r.EndsAt.IsZero() && !r.EndsAt.After(r.StartsAt) {
		return fmt.Errorf("run end time must be after start time")
	}
	if r.PlayerLimit < 0 {
		return fmt.Errorf("run player limit cannot be negative")
	}
	if r.CostCents < 0 {
		return fmt.Errorf("run cost cannot be negative")
	}

	return nil
}

// IsPaid reports whether joining this run creates an order.
func (r Run) IsPaid() bool {
	return r.CostCents > 0
}

// Filter narrows run browsing. Zero values mean "no constraint".
type Filter struct {
	CourtID       string
	HostProfileID string
	SkillLevel    string
	Status        Status
	StartsAfter   time.Time
	StartsBefore  time.Time
	Limit         int
}
