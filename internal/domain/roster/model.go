package roster

import (
	"fmt"
	"time"
)

// InviteStatus is the closed set of states a joined run can be in. It is a
// tagged enum internally; the exact wire strings below are produced and
// consumed only at serialization boundaries (HTTP, database).
type InviteStatus uint8

const (
	InviteUndecided InviteStatus = iota
	InviteAccepted
	InviteAcceptedPending
	InviteDeclined
	InviteRefund
)

const (
	wireUndecided       = "Undecided"
	wireAccepted        = "Accepted"
	wireAcceptedPending = "Accepted / Pending"
	wireDeclined        = "Declined"
	wireRefund          = "Refund"
)

// String returns the wire form expected by existing clients. The strings are
// load-bearing and case-sensitive.
func (s InviteStatus) String() string {
	switch s {
	case InviteAccepted:
		return wireAccepted
	case InviteAcceptedPending:
		return wireAcceptedPending
	case InviteDeclined:
		return wireDeclined
	case InviteRefund:
		return wireRefund
	default:
		return wireUndecided
	}
}

// ParseInviteStatus maps a wire string to its status. An empty string is the
// legacy encoding of Undecided.
func ParseInviteStatus(raw string) (InviteStatus, error) {
	switch raw {
	case wireUndecided, "":
		return InviteUndecided, nil
	case wireAccepted:
		return InviteAccepted, nil
	case wireAcceptedPending:
		return InviteAcceptedPending, nil
	case wireDeclined:
		return InviteDeclined, nil
	case wireRefund:
		return InviteRefund, nil
	default:
		return InviteUndecided, fmt.Errorf("unknown invite status %q", raw)
	}
}

// JoinType records how a profile ended up on a roster.
type JoinType string

const (
	JoinTypeInvite  JoinType = "Invite"
	JoinTypeRequest JoinType = "Request"
	JoinTypeSquad   JoinType = "Squad"
)

func ParseJoinType(raw string) (JoinType, error) {
	switch JoinType(raw) {
	case "":
		return JoinTypeInvite, nil
	case JoinTypeInvite, JoinTypeRequest, JoinTypeSquad:
		return JoinType(raw), nil
	default:
		return "", fmt.Errorf("unknown join type %q", raw)
	}
}

// JoinedRun is one profile's invitation/membership record for a run. At most
// one exists per (profile, run) pair.
type JoinedRun struct {
	ID        string
	ProfileID string
	RunID     string
	InvitedAt time.Time
	Status    InviteStatus
	Present   bool
	Type      JoinType
	SquadID   string
}

func (j JoinedRun) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("joined run id is required")
	}
	if j.ProfileID == "" {
		return fmt.Errorf("joined run profile id is required")
	}
	if j.RunID == "" {
		return fmt.Errorf("joined run run id is required")
	}

	return nil
}

// Counts are the roster aggregate buckets. Accepted covers Accepted and
// Accepted / Pending; Refund records fall outside all three buckets.
type Counts struct {
	Accepted  int
	Declined  int
	Undecided int
}

// Add places one invite into its bucket. The three buckets partition the
// invite set minus Refund records.
func (c *Counts) Add(status InviteStatus) {
	switch status {
	case InviteAccepted, InviteAcceptedPending:
		c.Accepted++
	case InviteDeclined:
		c.Declined++
	case InviteUndecided:
		c.Undecided++
	}
}

// CountInvites buckets a roster in one pass.
func CountInvites(invites []JoinedRun) Counts {
	var counts Counts
	for _, invite := range invites {
		counts.Add(invite.Status)
	}

	return counts
}
