package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/domain/roster"
	"github.com/courtside/hooprun/internal/usecase"
)

type inviteRequest struct {
	ProfileID string `json:"profile_id" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=Invite Request Squad"`
}

type updateInviteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updatePresenceRequest struct {
	Present bool `json:"present"`
}

type joinedRunDTO struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	RunID     string `json:"run_id"`
	InvitedAt string `json:"invited_at"`
	Status    string `json:"status"`
	Present   bool   `json:"present"`
	Type      string `json:"type"`
	SquadID   string `json:"squad_id,omitempty"`
}

type rosterMemberDTO struct {
	joinedRunDTO
	Profile profileDisplayDTO `json:"profile"`
}

type rosterViewDTO struct {
	RunID   string            `json:"run_id"`
	Members []rosterMemberDTO `json:"members"`
	Counts  countsDTO         `json:"counts"`
}

func joinedRunToDTO(j roster.JoinedRun) joinedRunDTO {
	return joinedRunDTO{
		ID:        j.ID,
		ProfileID: j.ProfileID,
		RunID:     j.RunID,
		InvitedAt: j.InvitedAt.Format(time.RFC3339),
		Status:    j.Status.String(),
		Present:   j.Present,
		Type:      string(j.Type),
		SquadID:   j.SquadID,
	}
}

func (h *Handler) InviteToRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InviteToRun")
	defer span.End()

	var req inviteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.Invite(ctx, usecase.InviteInput{
		ProfileID: req.ProfileID,
		RunID:     r.PathValue("runID"),
		Type:      req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "invite failed", "profile_id", req.ProfileID, "run_id", r.PathValue("runID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, joinedRunToDTO(created))
}

func (h *Handler) UpdateInvitationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateInvitationStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateInviteStatusRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.UpdateInvitationStatus(ctx, principal.ProfileID, r.PathValue("joinedRunID"), req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "invitation status update failed",
			"profile_id", principal.ProfileID, "joined_run_id", r.PathValue("joinedRunID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinedRunToDTO(updated))
}

func (h *Handler) UpdatePresence(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePresence")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updatePresenceRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.rosterService.UpdatePresence(ctx, principal.ProfileID, r.PathValue("joinedRunID"), req.Present); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"present": req.Present})
}

func (h *Handler) RemoveFromRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFromRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	removed, err := h.rosterService.RemoveFromRoster(ctx, principal.ProfileID, r.PathValue("profileID"), r.PathValue("runID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !removed {
		writeError(ctx, w, fmt.Errorf("%w: profile %s is not on this roster", usecase.ErrNotFound, r.PathValue("profileID")))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) CheckInvited(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckInvited")
	defer span.End()

	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		writeError(ctx, w, fmt.Errorf("%w: profile_id query parameter is required", usecase.ErrInvalidInput))
		return
	}

	invited, err := h.rosterService.IsProfileAlreadyInvited(ctx, profileID, r.PathValue("runID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"invited": invited})
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	view, err := h.rosterService.GetRosterWithCounts(ctx, r.PathValue("runID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	members := make([]rosterMemberDTO, 0, len(view.Members))
	for _, m := range view.Members {
		members = append(members, rosterMemberDTO{
			joinedRunDTO: joinedRunToDTO(m.JoinedRun),
			Profile:      displayToDTO(m.Profile),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, rosterViewDTO{
		RunID:   view.RunID,
		Members: members,
		Counts:  countsDTO{Accepted: view.Counts.Accepted, Declined: view.Counts.Declined, Undecided: view.Counts.Undecided},
	})
}
