package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// ProfileService reads and syncs player profiles. Identity lives in the
// external account service; Upsert mirrors it locally.
type ProfileService struct {
	profiles profile.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewProfileService(profiles profile.Repository, logger *logging.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger, now: time.Now}
}

func (s *ProfileService) GetProfile(ctx context.Context, profileID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.GetProfile")
	defer span.End()

	p, found, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return profile.Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
	}

	return p, nil
}

// SyncProfile upserts the local mirror of an account-service profile.
func (s *ProfileService) SyncProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.SyncProfile")
	defer span.End()

	if err := p.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p.UpdatedAt = s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	return p, nil
}
