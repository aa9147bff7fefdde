package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/usecase"
)

type createRunRequest struct {
	CourtID     string `json:"court_id" validate:"required"`
	StartsAt    string `json:"starts_at" validate:"required"`
	EndsAt      string `json:"ends_at" validate:"omitempty"`
	PlayerLimit int    `json:"player_limit" validate:"gte=0,lte=100"`
	SkillLevel  string `json:"skill_level" validate:"omitempty,max=50"`
	TeamType    string `json:"team_type" validate:"omitempty,max=20"`
	CostCents   int64  `json:"cost_cents" validate:"gte=0"`
}

type rescheduleRunRequest struct {
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at" validate:"omitempty"`
}

type runDTO struct {
	ID            string `json:"id"`
	HostProfileID string `json:"host_profile_id"`
	CourtID       string `json:"court_id"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at,omitempty"`
	PlayerLimit   int    `json:"player_limit,omitempty"`
	SkillLevel    string `json:"skill_level,omitempty"`
	TeamType      string `json:"team_type,omitempty"`
	CostCents     int64  `json:"cost_cents"`
	Status        string `json:"status"`
}

type runViewDTO struct {
	runDTO
	Host   profileDisplayDTO `json:"host"`
	Counts countsDTO         `json:"counts"`
}

type countsDTO struct {
	Accepted  int `json:"accepted"`
	Declined  int `json:"declined"`
	Undecided int `json:"undecided"`
}

func runToDTO(r run.Run) runDTO {
	dto := runDTO{
		ID:            r.ID,
		HostProfileID: r.HostProfileID,
		CourtID:       r.CourtID,
		StartsAt:      r.StartsAt.Format(time.RFC3339),
		PlayerLimit:   r.PlayerLimit,
		SkillLevel:    r.SkillLevel,
		TeamType:      r.TeamType,
		CostCents:     r.CostCents,
		Status:        string(r.Status),
	}
	if !r.EndsAt.IsZero() {
		dto.EndsAt = r.EndsAt.Format(time.RFC3339)
	}

	return dto
}

func runViewToDTO(v usecase.RunView) runViewDTO {
	return runViewDTO{
		runDTO: runToDTO(v.Run),
		Host:   displayToDTO(v.Host),
		Counts: countsDTO{Accepted: v.Counts.Accepted, Declined: v.Counts.Declined, Undecided: v.Counts.Undecided},
	}
}

func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRun")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createRunRequest
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

	startsAt, endsAt, err := parseRunWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.runService.CreateRun(ctx, usecase.CreateRunInput{
		HostProfileID: principal.ProfileID,
		CourtID:       req.CourtID,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		PlayerLimit:   req.PlayerLimit,
		SkillLevel:    req.SkillLevel,
		TeamType:      req.TeamType,
		CostCents:     req.CostCents,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create run failed", "profile_id", principal.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, runToDTO(created))
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRun")
	defer span.End()

	view, err := h.runService.GetRun(ctx, r.PathValue("runID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runViewToDTO(view))
}

func (h *Handler) BrowseRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BrowseRuns")
	defer span.End()

	filter, err := parseRunFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.runService.BrowseRuns(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "browse runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]runViewDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, runViewToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) RescheduleRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescheduleRun")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req rescheduleRunRequest
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

	startsAt, endsAt, err := parseRunWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.runService.RescheduleRun(ctx, principal.ProfileID, r.PathValue("runID"), startsAt, endsAt)
	if err != nil {
		h.logger.WarnContext(ctx, "reschedule run failed", "profile_id", principal.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runToDTO(updated))
}

func (h *Handler) CancelRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelRun")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.runService.CancelRun(ctx, principal.ProfileID, r.PathValue("runID")); err != nil {
		h.logger.WarnContext(ctx, "cancel run failed", "profile_id", principal.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func parseRunWindow(startsAtRaw, endsAtRaw string) (time.Time, time.Time, error) {
	startsAt, err := time.Parse(time.RFC3339, startsAtRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: starts_at must be RFC 3339: %v", usecase.ErrInvalidInput, err)
	}

	var endsAt time.Time
	if endsAtRaw != "" {
		endsAt, err = time.Parse(time.RFC3339, endsAtRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: ends_at must be RFC 3339: %v", usecase.ErrInvalidInput, err)
		}
	}

	return startsAt, endsAt, nil
}

func parseRunFilter(r *http.Request) (run.Filter, error) {
	query := r.URL.Query()
	filter := run.Filter{
		CourtID:       query.Get("court_id"),
		HostProfileID: query.Get("host_profile_id"),
		SkillLevel:    query.Get("skill_level"),
	}

	if raw := query.Get("status"); raw != "" {
		status, err := run.ParseStatus(raw)
		if err != nil {
			return run.Filter{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.Status = status
	}
	if raw := query.Get("starts_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return run.Filter{}, fmt.Errorf("%w: starts_after must be RFC 3339: %v", usecase.ErrInvalidInput, err)
		}
		filter.StartsAfter = t
	}
	if raw := query.Get("starts_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return run.Filter{}, fmt.Errorf("%w: starts_before must be RFC 3339: %v", usecase.ErrInvalidInput, err)
		}
		filter.StartsBefore = t
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return run.Filter{}, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput)
		}
		filter.Limit = limit
	}

	return filter, nil
}
