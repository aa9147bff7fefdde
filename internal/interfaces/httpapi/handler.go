package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/usecase"
)

type Handler struct {
	runService          *usecase.RunService
	rosterService       *usecase.RosterService
	courtService        *usecase.CourtService
	profileService      *usecase.ProfileService
	productService      *usecase.ProductService
	postService         *usecase.PostService
	notificationService *usecase.NotificationService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	runService *usecase.RunService,
	rosterService *usecase.RosterService,
	courtService *usecase.CourtService,
	profileService *usecase.ProfileService,
	productService *usecase.ProductService,
	postService *usecase.PostService,
	notificationService *usecase.NotificationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		runService:          runService,
		rosterService:       rosterService,
		courtService:        courtService,
		profileService:      profileService,
		productService:      productService,
		postService:         postService,
		notificationService: notificationService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
