package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/product"
	"github.com/courtside/hooprun/internal/usecase"
)

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url,omitempty"`
	InStock     bool   `json:"in_stock"`
}

type orderDTO struct {
	ID          string `json:"id"`
	RunID       string `json:"run_id,omitempty"`
	JoinedRunID string `json:"joined_run_id,omitempty"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func productToDTO(p product.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
}

func orderToDTO(o order.Order) orderDTO {
	return orderDTO{
		ID:          o.ID,
		RunID:       o.RunID,
		JoinedRunID: o.JoinedRunID,
		Status:      string(o.Status),
		AmountCents: o.AmountCents,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProducts")
	defer span.End()

	products, err := h.productService.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list products failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]productDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, productToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProduct")
	defer span.End()

	p, err := h.productService.GetProduct(ctx, r.PathValue("productID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, productToDTO(p))
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyOrders")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	orders, err := h.productService.ListMyOrders(ctx, principal.ProfileID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, orderToDTO(o))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}
