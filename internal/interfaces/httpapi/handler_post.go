package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/usecase"
)

type createPostRequest struct {
	Body     string `json:"body" validate:"required,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	RunID    string `json:"run_id" validate:"omitempty"`
}

type postDTO struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url,omitempty"`
	RunID     string `json:"run_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type feedEntryDTO struct {
	postDTO
	Author profileDisplayDTO `json:"author"`
}

func feedToDTOs(entries []usecase.FeedEntry) []feedEntryDTO {
	dtos := make([]feedEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, feedEntryDTO{
			postDTO: postDTO{
				ID:        e.ID,
				ProfileID: e.ProfileID,
				Body:      e.Body,
				ImageURL:  e.ImageURL,
				RunID:     e.RunID,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
			},
			Author: displayToDTO(e.Author),
		})
	}

	return dtos
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePost")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPostRequest
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

	created, err := h.postService.CreatePost(ctx, usecase.CreatePostInput{
		ProfileID: principal.ProfileID,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		RunID:     req.RunID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create post failed", "profile_id", principal.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, postDTO{
		ID:        created.ID,
		ProfileID: created.ProfileID,
		Body:      created.Body,
		ImageURL:  created.ImageURL,
		RunID:     created.RunID,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFeed")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.postService.GetFeed(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feedToDTOs(entries))
}

func (h *Handler) GetProfilePosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfilePosts")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.postService.GetProfilePosts(ctx, r.PathValue("profileID"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feedToDTOs(entries))
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput)
	}

	return limit, nil
}
