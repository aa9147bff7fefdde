package usecase

import (
	"context"
	"fmt"

	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// CourtService lists and registers the places runs happen at.
type CourtService struct {
	courts court.Repository
	idGen  id.Generator
	logger *logging.Logger
}

func NewCourtService(courts court.Repository, idGen id.Generator, logger *logging.Logger) *CourtService {
	return &CourtService{courts: courts, idGen: idGen, logger: logger}
}

func (s *CourtService) ListCourts(ctx context.Context, city string) ([]court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "CourtService.ListCourts")
	defer span.End()

	courts, err := s.courts.List(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	return courts, nil
}

func (s *CourtService) GetCourt(ctx context.Context, courtID string) (court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "CourtService.GetCourt")
	defer span.End()

	c, found, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return court.Court{}, fmt.Errorf("get court: %w", err)
	}
	if !found {
		return court.Court{}, fmt.Errorf("%w: court %s", ErrNotFound, courtID)
	}

	return c, nil
}

type CreateCourtInput struct {
	Name      string
	Address   string
	City      string
	Latitude  float64
	Longitude float64
	Indoor    bool
	HoopCount int
	ImageURL  string
}

func (s *CourtService) CreateCourt(ctx context.Context, in CreateCourtInput) (court.Court, error) {
	ctx, span := startUsecaseSpan(ctx, "CourtService.CreateCourt")
	defer span.End()

	cid, err := s.idGen.NewID()
	if err != nil {
		return court.Court{}, fmt.Errorf("generate court id: %w", err)
	}

	c := court.Court{
		ID:        cid,
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Indoor:    in.Indoor,
		HoopCount: in.HoopCount,
		ImageURL:  in.ImageURL,
	}
	if err := c.Validate(); err != nil {
		return court.Court{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.courts.Create(ctx, c); err != nil {
		return court.Court{}, fmt.Errorf("create court: %w", err)
	}

	return c, nil
}
