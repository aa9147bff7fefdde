package notification

import (
	"fmt"
	"time"
)

// Kind tags what a notification is about so clients can pick icons and
// deep links.
type Kind string

const (
	KindRunInvite    Kind = "run_invite"
	KindInviteStatus Kind = "invite_status"
	KindRunCancelled Kind = "run_cancelled"
	KindRunUpdated   Kind = "run_updated"
)

// Notification is one in-app message for a profile. The same record is
// mirrored to the push gateway on a best-effort basis.
type Notification struct {
	ID        string
	ProfileID string
	Kind      Kind
	Title     string
	Body      string
	ImageURL  string
	Data      map[string]string
	Read      bool
	CreatedAt time.Time
}

func (n Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification id is required")
	}
	if n.ProfileID == "" {
		return fmt.Errorf("notification profile id is required")
	}
	if n.Kind == "" {
		return fmt.Errorf("notification kind is required")
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}

	return nil
}

// NewRunInvite formats the message sent when a profile is invited to a run.
func NewRunInvite(profileID, runID, hostName string) Notification {
	return Notification{
		ProfileID: profileID,
		Kind:      KindRunInvite,
		Title:     "You're invited to a run",
		Body:      fmt.Sprintf("%s invited you to a pickup run. Tap to respond.", hostName),
		Data:      map[string]string{"run_id": runID},
	}
}

// NewInviteStatus formats the message sent back to the invitee when their
// invitation status changes.
func NewInviteStatus(profileID, runID, statusLabel string) Notification {
	return Notification{
		ProfileID: profileID,
		Kind:      KindInviteStatus,
		Title:     "Run invitation updated",
		Body:      fmt.Sprintf("Your spot for this run is now %s.", statusLabel),
		Data:      map[string]string{"run_id": runID, "status": statusLabel},
	}
}

// NewRunCancelled formats the message fanned out to the roster when a host
// cancels a run.
func NewRunCancelled(profileID, runID string) Notification {
	return Notification{
		ProfileID: profileID,
		Kind:      KindRunCancelled,
		Title:     "Run cancelled",
		Body:      "A run you joined has been cancelled by the host.",
		Data:      map[string]string{"run_id": runID},
	}
}

// NewRunRescheduled formats the message fanned out when a run moves.
func NewRunRescheduled(profileID, runID string, startsAt time.Time) Notification {
	return Notification{
		ProfileID: profileID,
		Kind:      KindRunUpdated,
		Title:     "Run rescheduled",
		Body:      fmt.Sprintf("A run you joined now starts at %s.", startsAt.Format("Mon Jan 2, 3:04 PM")),
		Data:      map[string]string{"run_id": runID},
	}
}
