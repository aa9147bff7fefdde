package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/usecase"
)

type createCourtRequest struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Address   string  `json:"address" validate:"required,max=200"`
	City      string  `json:"city" validate:"required,max=100"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Indoor    bool    `json:"indoor"`
	HoopCount int     `json:"hoop_count" validate:"gte=0,lte=50"`
	ImageURL  string  `json:"image_url" validate:"omitempty,url"`
}

type courtDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Indoor    bool    `json:"indoor"`
	HoopCount int     `json:"hoop_count,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

func courtToDTO(c court.Court) courtDTO {
	return courtDTO{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Indoor:    c.Indoor,
		HoopCount: c.HoopCount,
		ImageURL:  c.ImageURL,
	}
}

func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCourts")
	defer span.End()

	courts, err := h.courtService.ListCourts(ctx, r.URL.Query().Get("city"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list courts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]courtDTO, 0, len(courts))
	for _, c := range courts {
		dtos = append(dtos, courtToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) GetCourt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCourt")
	defer span.End()

	c, err := h.courtService.GetCourt(ctx, r.PathValue("courtID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, courtToDTO(c))
}

func (h *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCourt")
	defer span.End()

	var req createCourtRequest
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

	created, err := h.courtService.CreateCourt(ctx, usecase.CreateCourtInput{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Indoor:    req.Indoor,
		HoopCount: req.HoopCount,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create court failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, courtToDTO(created))
}
