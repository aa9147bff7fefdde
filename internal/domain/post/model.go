package post

import (
	"fmt"
	"time"
)

// Post is one feed entry written by a profile.
type Post struct {
	ID        string
	ProfileID string
	Body      string
	ImageURL  string
	RunID     string
	CreatedAt time.Time
}

const maxBodyLength = 2000

func (p Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("post id is required")
	}
	if p.ProfileID == "" {
		return fmt.Errorf("post profile id is required")
	}
	if p.Body == "" && p.ImageURL == "" {
		return fmt.Errorf("post needs a body or an image")
	}
	if len(p.Body) > maxBodyLength {
		return fmt.Errorf("post body exceeds %d characters", maxBodyLength)
	}

	return nil
}
