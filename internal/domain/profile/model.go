package profile

import (
	"fmt"
	"time"
)

// Profile is a player on the platform. Identity is owned by the external
// account service; this service reads and annotates it for roster display.
type Profile struct {
	ID          string
	Username    string
	DisplayName string
	ImageURL    string
	Position    string
	City        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Display is the subset of profile fields attached to rosters and feeds.
type Display struct {
	ID          string
	Username    string
	DisplayName string
	ImageURL    string
}

func (p Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	if p.Username == "" {
		return fmt.Errorf("profile username is required")
	}

	return nil
}

func (p Profile) AsDisplay() Display {
	return Display{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		ImageURL:    p.ImageURL,
	}
}
