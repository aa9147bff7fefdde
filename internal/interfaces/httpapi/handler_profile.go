package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/usecase"
)

type syncProfileRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Position    string `json:"position" validate:"omitempty,max=30"`
	City        string `json:"city" validate:"omitempty,max=100"`
}

type profileDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Position    string `json:"position,omitempty"`
	City        string `json:"city,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type profileDisplayDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

func profileToDTO(p profile.Profile) profileDTO {
	return profileDTO{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		ImageURL:    p.ImageURL,
		Position:    p.Position,
		City:        p.City,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func displayToDTO(d profile.Display) profileDisplayDTO {
	return profileDisplayDTO{
		ID:          d.ID,
		Username:    d.Username,
		DisplayName: d.DisplayName,
		ImageURL:    d.ImageURL,
	}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	p, err := h.profileService.GetProfile(ctx, r.PathValue("profileID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(p))
}

// SyncMyProfile upserts the caller's profile from the account provider's
// identity. The profile ID always comes from the verified token, never the
// request body.
func (h *Handler) SyncMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req syncProfileRequest
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

	synced, err := h.profileService.SyncProfile(ctx, profile.Profile{
		ID:          principal.ProfileID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
		City:        req.City,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "profile sync failed", "profile_id", principal.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(synced))
}
