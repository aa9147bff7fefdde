package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/platform/logging"
)

type runFixture struct {
	service    *RunService
	runs       *memory.RunRepository
	joinedRuns *memory.JoinedRunRepository
	notifier   *recordingNotifier
	now        time.Time
}

func newRunFixture(t *testing.T) runFixture {
	t.Helper()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	orderRepo := memory.NewOrderRepository(nil)
	joinedRepo := memory.NewJoinedRunRepository(orderRepo, nil)
	runRepo := memory.NewRunRepository(memory.SeedRuns(now))
	notifier := &recordingNotifier{}

	service := NewRunService(
		runRepo,
		memory.NewCourtRepository(memory.SeedCourts()),
		memory.NewProfileRepository(memory.SeedProfiles()),
		joinedRepo,
		notifier,
		&seqIDGenerator{},
		logging.NewNop(),
	)
	service.now = func() time.Time { return now }

	return runFixture{service: service, runs: runRepo, joinedRuns: joinedRepo, notifier: notifier, now: now}
}

func TestRunService_CreateRun(t *testing.T) {
	fx := newRunFixture(t)

	created, err := fx.service.CreateRun(t.Context(), CreateRunInput{
		HostProfileID: memory.ProfileIDJordan,
		CourtID:       memory.CourtIDVenice,
		StartsAt:      fx.now.Add(24 * time.Hour),
		EndsAt:        fx.now.Add(26 * time.Hour),
		PlayerLimit:   10,
		SkillLevel:    "Open",
		TeamType:      "5v5",
	})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}
	if created.Status != run.StatusActive {
		t.Fatalf("expected new run to be Active, got %s", created.Status)
	}

	if _, err := fx.service.CreateRun(t.Context(), CreateRunInput{
		HostProfileID: memory.ProfileIDJordan,
		CourtID:       "missing-court",
		StartsAt:      fx.now.Add(24 * time.Hour),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown court, got %v", err)
	}

	if _, err := fx.service.CreateRun(t.Context(), CreateRunInput{
		HostProfileID: memory.ProfileIDJordan,
		CourtID:       memory.CourtIDVenice,
		StartsAt:      fx.now.Add(-time.Hour),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for past start, got %v", err)
	}
}

func TestRunService_BrowseRuns_AnnotatesHostAndCounts(t *testing.T) {
	fx := newRunFixture(t)

	seedRosterRecord(t, fx, memory.ProfileIDMarcus, "run-rucker-sat")

	views, err := fx.service.BrowseRuns(t.Context(), run.Filter{Status: run.StatusActive})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 active runs, got %d", len(views))
	}

	byID := make(map[string]RunView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	rucker := byID["run-rucker-sat"]
	if rucker.Host.Username != "jbanks23" {
		t.Fatalf("expected host jbanks23, got %q", rucker.Host.Username)
	}
	if rucker.Counts.Undecided != 1 {
		t.Fatalf("expected 1 undecided invite, got %+v", rucker.Counts)
	}
	if paid := byID["run-west4th-paid"]; paid.Counts.Accepted != 0 || paid.Counts.Undecided != 0 {
		t.Fatalf("expected empty counts for untouched run, got %+v", paid.Counts)
	}
}

func seedRosterRecord(t *testing.T, fx runFixture, profileID, runID string) {
	t.Helper()

	rosterSvc := NewRosterService(
		fx.joinedRuns,
		fx.runs,
		memory.NewProfileRepository(memory.SeedProfiles()),
		memory.NewOrderRepository(nil),
		fx.notifier,
		&seqIDGenerator{},
		logging.NewNop(),
	)
	if _, err := rosterSvc.Invite(t.Context(), InviteInput{ProfileID: profileID, RunID: runID}); err != nil {
		t.Fatalf("seed invite failed: %v", err)
	}
}

func TestRunService_RescheduleRun_NotifiesRoster(t *testing.T) {
	fx := newRunFixture(t)
	seedRosterRecord(t, fx, memory.ProfileIDMarcus, "run-rucker-sat")

	newStart := fx.now.Add(96 * time.Hour)
	updated, err := fx.service.RescheduleRun(t.Context(), memory.ProfileIDJordan, "run-rucker-sat", newStart, newStart.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !updated.StartsAt.Equal(newStart) {
		t.Fatalf("expected start %v, got %v", newStart, updated.StartsAt)
	}

	if got := fx.notifier.byKind(notification.KindRunUpdated); len(got) != 1 {
		t.Fatalf("expected 1 reschedule notification, got %d", len(got))
	}

	if _, err := fx.service.RescheduleRun(t.Context(), memory.ProfileIDMarcus, "run-rucker-sat", newStart, time.Time{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-host, got %v", err)
	}
}

func TestRunService_CancelRun_ClearsRosterAndNotifies(t *testing.T) {
	fx := newRunFixture(t)
	seedRosterRecord(t, fx, memory.ProfileIDMarcus, "run-rucker-sat")

	if err := fx.service.CancelRun(t.Context(), memory.ProfileIDJordan, "run-rucker-sat"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	r, _, err := fx.runs.GetByID(t.Context(), "run-rucker-sat")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if r.Status != run.StatusCancelled {
		t.Fatalf("expected Cancelled, got %s", r.Status)
	}

	members, err := fx.joinedRuns.ListByRun(t.Context(), "run-rucker-sat")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected cleared roster, got %d members", len(members))
	}

	if got := fx.notifier.byKind(notification.KindRunCancelled); len(got) != 1 {
		t.Fatalf("expected 1 cancellation notification, got %d", len(got))
	}

	// Cancelling twice fails because the run is no longer active.
	if err := fx.service.CancelRun(t.Context(), memory.ProfileIDJordan, "run-rucker-sat"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for repeat cancel, got %v", err)
	}
}

func TestRunService_CompletePastRuns(t *testing.T) {
	fx := newRunFixture(t)

	past, err := fx.service.CreateRun(t.Context(), CreateRunInput{
		HostProfileID: memory.ProfileIDJordan,
		CourtID:       memory.CourtIDRucker,
		StartsAt:      fx.now.Add(time.Hour),
		EndsAt:        fx.now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	fx.service.now = func() time.Time { return fx.now.Add(3 * time.Hour) }

	changed, err := fx.service.CompletePastRuns(t.Context())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 completed run, got %d", changed)
	}

	r, _, err := fx.runs.GetByID(t.Context(), past.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if r.Status != run.StatusCompleted {
		t.Fatalf("expected Completed, got %s", r.Status)
	}
}
