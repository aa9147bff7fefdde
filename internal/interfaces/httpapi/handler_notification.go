package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/usecase"
)

type notificationDTO struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body,omitempty"`
	ImageURL  string            `json:"image_url,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt string            `json:"created_at"`
}

func notificationToDTO(n notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		ImageURL:  n.ImageURL,
		Data:      n.Data,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyNotifications")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	notifications, err := h.notificationService.ListMine(ctx, principal.ProfileID, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]notificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, notificationToDTO(n))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkNotificationRead")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.notificationService.MarkRead(ctx, principal.ProfileID, r.PathValue("notificationID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handler) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnreadNotificationCount")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	count, err := h.notificationService.UnreadCount(ctx, principal.ProfileID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"unread": count})
}
