package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashikwekenneth/Akawo-App/internal/cart"
	"github.com/ashikwekenneth/Akawo-App/internal/catalog"
)

type CartHandler struct {
	stores  *CartStores
	catalog catalog.Service
	timeout time.Duration
}

func NewCartHandler(stores *CartStores, cat catalog.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		stores:  stores,
		catalog: cat,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID  string            `json:"product_id"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type ApplyCouponRequestDTO struct {
	Code string `json:"code"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, store.State().Cart)
}

func (h *CartHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, store.Totals())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := catalog.FindProduct(ctx, h.catalog, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog is unavailable")
		return
	}

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.AddToCart(ctx, *product, req.Quantity, req.Attributes); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item to cart")
		return
	}

	respondJSON(w, http.StatusCreated, store.State().Cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.UpdateItem(ctx, productID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart item")
		return
	}

	respondJSON(w, http.StatusOK, store.State().Cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.RemoveItem(ctx, productID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove item from cart")
		return
	}

	respondJSON(w, http.StatusOK, store.State().Cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.Clear(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, store.State().Cart)
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ApplyCouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_coupon", "coupon code is required")
		return
	}

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.ApplyCoupon(ctx, req.Code); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to apply coupon")
		return
	}

	respondJSON(w, http.StatusOK, store.State().Cart)
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "invalid_coupon", "coupon code is required")
		return
	}

	store, ok := h.ownerStore(ctx, w, r)
	if !ok {
		return
	}
	if err := store.RemoveCoupon(ctx, code); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove coupon")
		return
	}

	respondJSON(w, http.StatusOK, store.State().Cart)
}

// ownerStore resolves the request owner's cart store, responding with
// an error itself when the cart cannot be loaded.
func (h *CartHandler) ownerStore(ctx context.Context, w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	owner := userIDFromContext(r.Context())
	store, err := h.stores.For(ctx, owner)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load your shopping cart")
		return nil, false
	}
	return store, true
}
