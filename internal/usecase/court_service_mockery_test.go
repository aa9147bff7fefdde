package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/courtside/hooprun/internal/domain/court"
	courtmock "github.com/courtside/hooprun/internal/mocks/domain/court"
	"github.com/courtside/hooprun/internal/platform/logging"
)

func TestCourtService_ListCourts_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	courtRepo := courtmock.NewRepository(t)
	service := NewCourtService(courtRepo, &seqIDGenerator{}, logging.NewNop())

	expected := []court.Court{
		{ID: "nyc-rucker-park", Name: "Rucker Park", City: "New York"},
		{ID: "nyc-west-4th", Name: "West 4th Street Courts", City: "New York"},
	}

	courtRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "New York").
		Return(expected, nil).
		Once()

	got, err := service.ListCourts(ctx, "New York")
	if err != nil {
		t.Fatalf("list courts: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected court count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected court id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
}

func TestCourtService_GetCourt_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	courtRepo := courtmock.NewRepository(t)
	service := NewCourtService(courtRepo, &seqIDGenerator{}, logging.NewNop())

	courtRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "missing-court").
		Return(court.Court{}, false, nil).
		Once()

	_, err := service.GetCourt(ctx, "missing-court")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCourtService_CreateCourt_PersistsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	courtRepo := courtmock.NewRepository(t)
	service := NewCourtService(courtRepo, &seqIDGenerator{}, logging.NewNop())

	courtRepo.
		On("Create", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(c court.Court) bool {
			return c.ID != "" && c.Name == "Venice Beach Courts"
		})).
		Return(nil).
		Once()

	created, err := service.CreateCourt(ctx, CreateCourtInput{
		Name:    "Venice Beach Courts",
		Address: "1800 Ocean Front Walk",
		City:    "Los Angeles",
	})
	if err != nil {
		t.Fatalf("create court: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated court id")
	}
}
