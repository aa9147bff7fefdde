package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/domain/roster"
	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// RunService owns the run lifecycle: scheduling, browsing, rescheduling,
// cancellation, and the sweep that completes past runs.
type RunService struct {
	runs       run.Repository
	courts     court.Repository
	profiles   profile.Repository
	joinedRuns roster.Repository
	notifier   Notifier
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRunService(
	runs run.Repository,
	courts court.Repository,
	profiles profile.Repository,
	joinedRuns roster.Repository,
	notifier Notifier,
	idGen id.Generator,
	logger *logging.Logger,
) *RunService {
	return &RunService{
		runs:       runs,
		courts:     courts,
		profiles:   profiles,
		joinedRuns: joinedRuns,
		notifier:   notifier,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateRunInput struct {
	HostProfileID string
	CourtID       string
	StartsAt      time.Time
	EndsAt        time.Time
	PlayerLimit   int
	SkillLevel    string
	TeamType      string
	CostCents     int64
}

func (s *RunService) CreateRun(ctx context.Context, in CreateRunInput) (run.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "RunService.CreateRun")
	defer span.End()

	if _, found, err := s.profiles.GetByID(ctx, in.HostProfileID); err != nil {
		return run.Run{}, fmt.Errorf("get host profile: %w", err)
	} else if !found {
		return run.Run{}, fmt.Errorf("%w: host profile %s", ErrNotFound, in.HostProfileID)
	}
	if _, found, err := s.courts.GetByID(ctx, in.CourtID); err != nil {
		return run.Run{}, fmt.Errorf("get court: %w", err)
	} else if !found {
		return run.Run{}, fmt.Errorf("%w: court %s", ErrNotFound, in.CourtID)
	}

	rid, err := s.idGen.NewID()
	if err != nil {
		return run.Run{}, fmt.Errorf("generate run id: %w", err)
	}

	now := s.now()
	r := run.Run{
		ID:            rid,
		HostProfileID: in.HostProfileID,
		CourtID:       in.CourtID,
		StartsAt:      in.StartsAt,
		EndsAt:        in.EndsAt,
		PlayerLimit:   in.PlayerLimit,
		SkillLevel:    in.SkillLevel,
		TeamType:      in.TeamType,
		CostCents:     in.CostCents,
		Status:        run.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.Validate(); err != nil {
		return run.Run{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if r.StartsAt.Before(now) {
		return run.Run{}, fmt.Errorf("%w: run cannot start in the past", ErrInvalidInput)
	}

	if err := s.runs.Create(ctx, r); err != nil {
		return run.Run{}, fmt.Errorf("create run: %w", err)
	}

	return r, nil
}

// RunView is a run annotated with its host and roster breakdown.
type RunView struct {
	run.Run
	Host   profile.Display
	Counts roster.Counts
}

func (s *RunService) GetRun(ctx context.Context, runID string) (RunView, error) {
	ctx, span := startUsecaseSpan(ctx, "RunService.GetRun")
	defer span.End()

	r, found, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return RunView{}, fmt.Errorf("get run: %w", err)
	}
	if !found {
		return RunView{}, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}

	views, err := s.annotate(ctx, []run.Run{r})
	if err != nil {
		return RunView{}, err
	}

	return views[0], nil
}

// BrowseRuns lists runs matching the filter, each annotated with host and
// counts. The roster breakdown and host profiles are fetched with one
// grouped query and one bulk lookup running concurrently.
func (s *RunService) BrowseRuns(ctx context.Context, filter run.Filter) ([]RunView, error) {
	ctx, span := startUsecaseSpan(ctx, "RunService.BrowseRuns")
	defer span.End()

	runs, err := s.runs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return s.annotate(ctx, runs)
}

func (s *RunService) annotate(ctx context.Context, runs []run.Run) ([]RunView, error) {
	if len(runs) == 0 {
		return []RunView{}, nil
	}

	runIDs := make([]string, 0, len(runs))
	hostIDs := make([]string, 0, len(runs))
	for _, r := range runs {
		runIDs = append(runIDs, r.ID)
		hostIDs = append(hostIDs, r.HostProfileID)
	}

	var (
		counts map[string]roster.Counts
		hosts  map[string]profile.Display
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		counts, err = s.joinedRuns.CountsByRuns(ctx, runIDs)
		if err != nil {
			return fmt.Errorf("count rosters: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		hosts, err = s.profiles.GetDisplayByIDs(ctx, hostIDs)
		if err != nil {
			return fmt.Errorf("load host profiles: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	views := make([]RunView, 0, len(runs))
	for _, r := range runs {
		views = append(views, RunView{Run: r, Host: hosts[r.HostProfileID], Counts: counts[r.ID]})
	}

	return views, nil
}

// RescheduleRun moves a run to a new window. Only the host may do it; the
// roster is notified afterwards.
func (s *RunService) RescheduleRun(ctx context.Context, hostProfileID, runID string, startsAt, endsAt time.Time) (run.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "RunService.RescheduleRun")
	defer span.End()

	r, err := s.ownedActiveRun(ctx, hostProfileID, runID)
	if err != nil {
		return run.Run{}, err
	}

	if startsAt.IsZero() {
		return run.Run{}, fmt.Errorf("%w: new start time is required", ErrInvalidInput)
	}
	if !endsAt.IsZero() && !endsAt.After(startsAt) {
		return run.Run{}, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	r.StartsAt = startsAt
	r.EndsAt = endsAt
	r.UpdatedAt = s.now()

	if err := s.runs.Update(ctx, r); err != nil {
		return run.Run{}, fmt.Errorf("update run: %w", err)
	}

	s.fanOutToRoster(ctx, runID, func(profileID string) notification.Notification {
		return notification.NewRunRescheduled(profileID, runID, startsAt)
	})

	return r, nil
}

// CancelRun marks the run cancelled, clears its roster, and notifies
// everyone who was on it. The run row itself is kept for history.
func (s *RunService) CancelRun(ctx context.Context, hostProfileID, runID string) error {
	ctx, span := startUsecaseSpan(ctx, "RunService.CancelRun")
	defer span.End()

	r, err := s.ownedActiveRun(ctx, hostProfileID, runID)
	if err != nil {
		return err
	}

	// Snapshot the roster before clearing it so the fan-out still knows
	// who to tell.
	members, err := s.joinedRuns.ListByRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}

	r.Status = run.StatusCancelled
	r.UpdatedAt = s.now()
	if err := s.runs.Update(ctx, r); err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	if err := s.joinedRuns.DeleteByRun(ctx, runID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}

	for _, m := range members {
		s.notifier.Dispatch(ctx, notification.NewRunCancelled(m.ProfileID, runID))
	}

	return nil
}

func (s *RunService) ownedActiveRun(ctx context.Context, hostProfileID, runID string) (run.Run, error) {
	r, found, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return run.Run{}, fmt.Errorf("get run: %w", err)
	}
	if !found {
		return run.Run{}, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}
	if r.HostProfileID != hostProfileID {
		return run.Run{}, fmt.Errorf("%w: only the host may change a run", ErrUnauthorized)
	}
	if r.Status != run.StatusActive {
		return run.Run{}, fmt.Errorf("%w: run is %s", ErrInvalidInput, r.Status)
	}

	return r, nil
}

func (s *RunService) fanOutToRoster(ctx context.Context, runID string, build func(profileID string) notification.Notification) {
	members, err := s.joinedRuns.ListByRun(ctx, runID)
	if err != nil {
		s.logger.ErrorContext(ctx, "roster fan-out skipped", "run_id", runID, "error", err)
		return
	}
	for _, m := range members {
		s.notifier.Dispatch(ctx, build(m.ProfileID))
	}
}

// CompletePastRuns flips Active runs whose window has passed to Completed.
// Called from the internal jobs endpoint on a schedule.
func (s *RunService) CompletePastRuns(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "RunService.CompletePastRuns")
	defer span.End()

	changed, err := s.runs.MarkCompletedBefore(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("complete past runs: %w", err)
	}
	if changed > 0 {
		s.logger.InfoContext(ctx, "completed past runs", "count", changed)
	}

	return changed, nil
}
