package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/domain/roster"
	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// RosterService owns the invite lifecycle of a run: who is invited, what
// they answered, whether they showed up, and how a paid run's order follows
// their answer.
type RosterService struct {
	joinedRuns roster.Repository
	runs       run.Repository
	profiles   profile.Repository
	orders     order.Repository
	reconciler OrderReconciler
	notifier   Notifier
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	joinedRuns roster.Repository,
	runs run.Repository,
	profiles profile.Repository,
	orders order.Repository,
	notifier Notifier,
	idGen id.Generator,
	logger *logging.Logger,
) *RosterService {
	return &RosterService{
		joinedRuns: joinedRuns,
		runs:       runs,
		profiles:   profiles,
		orders:     orders,
		reconciler: NewOrderReconciler(),
		notifier:   notifier,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// InviteInput names the profile being added to a run and how they got there.
type InviteInput struct {
	ProfileID string
	RunID     string
	Type      string
}

// Invite adds a profile to a run's roster in the Undecided state. For paid
// runs a pending order is opened alongside the invite. The storage
// uniqueness constraint is the final arbiter under concurrent invites; the
// existence pre-check only gives a friendlier fast path.
func (s *RosterService) Invite(ctx context.Context, in InviteInput) (roster.JoinedRun, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.Invite")
	defer span.End()

	joinType, err := roster.ParseJoinType(in.Type)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.ProfileID == "" || in.RunID == "" {
		return roster.JoinedRun{}, fmt.Errorf("%w: profile id and run id are required", ErrInvalidInput)
	}

	r, found, err := s.runs.GetByID(ctx, in.RunID)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("get run: %w", err)
	}
	if !found {
		return roster.JoinedRun{}, fmt.Errorf("%w: run %s", ErrNotFound, in.RunID)
	}
	if r.Status != run.StatusActive {
		return roster.JoinedRun{}, fmt.Errorf("%w: run is %s", ErrInvalidInput, r.Status)
	}

	exists, err := s.joinedRuns.ExistsByProfileAndRun(ctx, in.ProfileID, in.RunID)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("check existing invite: %w", err)
	}
	if exists {
		return roster.JoinedRun{}, ErrDuplicateInvite
	}

	jid, err := s.idGen.NewID()
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("generate joined run id: %w", err)
	}

	j := roster.JoinedRun{
		ID:        jid,
		ProfileID: in.ProfileID,
		RunID:     in.RunID,
		InvitedAt: s.now(),
		Status:    roster.InviteUndecided,
		Present:   false,
		Type:      joinType,
	}

	if err := s.joinedRuns.Create(ctx, j); err != nil {
		if errors.Is(err, roster.ErrDuplicate) {
			return roster.JoinedRun{}, ErrDuplicateInvite
		}
		return roster.JoinedRun{}, fmt.Errorf("create joined run: %w", err)
	}

	if r.IsPaid() {
		if err := s.openOrder(ctx, r, j); err != nil {
			// Compensate so a retry is not rejected as a duplicate.
			if _, delErr := s.joinedRuns.DeleteByProfileAndRun(ctx, in.ProfileID, in.RunID); delErr != nil {
				s.logger.ErrorContext(ctx, "invite compensation failed",
					"profile_id", in.ProfileID, "run_id", in.RunID, "error", delErr)
			}
			return roster.JoinedRun{}, fmt.Errorf("open order: %w", err)
		}
	}

	s.notifyInvited(ctx, r, j)

	return j, nil
}

func (s *RosterService) openOrder(ctx context.Context, r run.Run, j roster.JoinedRun) error {
	oid, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate order id: %w", err)
	}

	return s.orders.Create(ctx, order.Order{
		ID:          oid,
		ProfileID:   j.ProfileID,
		RunID:       j.RunID,
		JoinedRunID: j.ID,
		Status:      order.StatusPending,
		AmountCents: r.CostCents,
		CreatedAt:   s.now(),
	})
}

func (s *RosterService) notifyInvited(ctx context.Context, r run.Run, j roster.JoinedRun) {
	hostName := "The host"
	if host, found, err := s.profiles.GetByID(ctx, r.HostProfileID); err == nil && found {
		if host.DisplayName != "" {
			hostName = host.DisplayName
		} else {
			hostName = host.Username
		}
	}

	s.notifier.Dispatch(ctx, notification.NewRunInvite(j.ProfileID, j.RunID, hostName))
}

// UpdateInvitationStatus records the invitee's answer and, through the same
// storage transaction, the order change that answer implies. rawStatus must
// be one of the five wire values; anything else is rejected before any write.
func (s *RosterService) UpdateInvitationStatus(ctx context.Context, profileID, joinedRunID, rawStatus string) (roster.JoinedRun, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UpdateInvitationStatus")
	defer span.End()

	status, err := roster.ParseInviteStatus(rawStatus)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	j, found, err := s.joinedRuns.GetByID(ctx, profileID, joinedRunID)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("get joined run: %w", err)
	}
	if !found {
		return roster.JoinedRun{}, ErrInviteNotFound
	}

	if err := s.checkCapacity(ctx, j, status); err != nil {
		return roster.JoinedRun{}, err
	}

	var orderStatus *order.Status
	if target, change := s.reconciler.TargetStatus(status); change {
		orderStatus = &target
	}

	ok, err := s.joinedRuns.UpdateStatus(ctx, profileID, joinedRunID, status, orderStatus)
	if err != nil {
		return roster.JoinedRun{}, fmt.Errorf("update invite status: %w", err)
	}
	if !ok {
		return roster.JoinedRun{}, ErrInviteNotFound
	}

	j.Status = status
	s.notifier.Dispatch(ctx, notification.NewInviteStatus(j.ProfileID, j.RunID, status.String()))

	return j, nil
}

// checkCapacity enforces the player limit at the moment an invite turns into
// an accepted spot. Records already counting toward the roster may restate
// their acceptance freely.
func (s *RosterService) checkCapacity(ctx context.Context, j roster.JoinedRun, next roster.InviteStatus) error {
	if next != roster.InviteAccepted && next != roster.InviteAcceptedPending {
		return nil
	}
	if j.Status == roster.InviteAccepted || j.Status == roster.InviteAcceptedPending {
		return nil
	}

	r, found, err := s.runs.GetByID(ctx, j.RunID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if !found || r.PlayerLimit <= 0 {
		return nil
	}

	counts, err := s.joinedRuns.CountsByRuns(ctx, []string{j.RunID})
	if err != nil {
		return fmt.Errorf("count roster: %w", err)
	}
	if counts[j.RunID].Accepted >= r.PlayerLimit {
		return ErrRunFull
	}

	return nil
}

// UpdatePresence flips the attendance flag on a joined run.
func (s *RosterService) UpdatePresence(ctx context.Context, profileID, joinedRunID string, present bool) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UpdatePresence")
	defer span.End()

	ok, err := s.joinedRuns.UpdatePresence(ctx, profileID, joinedRunID, present)
	if err != nil {
		return fmt.Errorf("update presence: %w", err)
	}
	if !ok {
		return ErrInviteNotFound
	}

	return nil
}

// RemoveProfileFromRun takes a profile off a run's roster. Removing a
// profile that is not on the roster reports removed=false without error.
func (s *RosterService) RemoveProfileFromRun(ctx context.Context, profileID, runID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RemoveProfileFromRun")
	defer span.End()

	removed, err := s.joinedRuns.DeleteByProfileAndRun(ctx, profileID, runID)
	if err != nil {
		return false, fmt.Errorf("remove from roster: %w", err)
	}

	return removed, nil
}

// RemoveFromRoster removes targetProfileID from a run on behalf of actor.
// Profiles may remove themselves; only the host may remove anyone else.
func (s *RosterService) RemoveFromRoster(ctx context.Context, actorProfileID, targetProfileID, runID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.RemoveFromRoster")
	defer span.End()

	if actorProfileID != targetProfileID {
		r, found, err := s.runs.GetByID(ctx, runID)
		if err != nil {
			return false, fmt.Errorf("get run: %w", err)
		}
		if !found {
			return false, fmt.Errorf("%w: run %s", ErrNotFound, runID)
		}
		if r.HostProfileID != actorProfileID {
			return false, fmt.Errorf("%w: only the host may remove other profiles", ErrUnauthorized)
		}
	}

	return s.RemoveProfileFromRun(ctx, targetProfileID, runID)
}

// ClearAllForRun empties a run's roster, typically on cancellation.
func (s *RosterService) ClearAllForRun(ctx context.Context, runID string) error {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ClearAllForRun")
	defer span.End()

	if err := s.joinedRuns.DeleteByRun(ctx, runID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}

	return nil
}

// IsProfileAlreadyInvited reports whether the pair already has a roster
// record, regardless of its status.
func (s *RosterService) IsProfileAlreadyInvited(ctx context.Context, profileID, runID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.IsProfileAlreadyInvited")
	defer span.End()

	exists, err := s.joinedRuns.ExistsByProfileAndRun(ctx, profileID, runID)
	if err != nil {
		return false, fmt.Errorf("check invite: %w", err)
	}

	return exists, nil
}

// RosterMember is one roster row annotated with the invitee's display
// profile.
type RosterMember struct {
	roster.JoinedRun
	Profile profile.Display
}

// RosterView is a run's full roster plus its status breakdown.
type RosterView struct {
	RunID   string
	Members []RosterMember
	Counts  roster.Counts
}

// GetRosterWithCounts returns everyone on a run's roster with their display
// profiles and the accepted/declined/undecided breakdown. One roster query
// and one bulk profile lookup, regardless of roster size.
func (s *RosterService) GetRosterWithCounts(ctx context.Context, runID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetRosterWithCounts")
	defer span.End()

	if _, found, err := s.runs.GetByID(ctx, runID); err != nil {
		return RosterView{}, fmt.Errorf("get run: %w", err)
	} else if !found {
		return RosterView{}, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}

	members, err := s.joinedRuns.ListByRun(ctx, runID)
	if err != nil {
		return RosterView{}, fmt.Errorf("list roster: %w", err)
	}

	profileIDs := make([]string, 0, len(members))
	for _, m := range members {
		profileIDs = append(profileIDs, m.ProfileID)
	}

	displays, err := s.profiles.GetDisplayByIDs(ctx, profileIDs)
	if err != nil {
		return RosterView{}, fmt.Errorf("load profiles: %w", err)
	}

	view := RosterView{
		RunID:   runID,
		Members: make([]RosterMember, 0, len(members)),
		Counts:  roster.CountInvites(members),
	}
	for _, m := range members {
		view.Members = append(view.Members, RosterMember{JoinedRun: m, Profile: displays[m.ProfileID]})
	}

	return view, nil
}
