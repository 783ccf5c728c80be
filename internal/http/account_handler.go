package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashikwekenneth/Akawo-App/internal/account"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

type AccountHandler struct {
	svc     account.Service
	timeout time.Duration
}

func NewAccountHandler(svc account.Service, timeout time.Duration) *AccountHandler {
	return &AccountHandler{
		svc:     svc,
		timeout: timeout,
	}
}

func (h *AccountHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	orders, err := h.svc.Orders(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AccountHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	order, err := h.svc.Order(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, account.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}
	if order.UserID != userID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	addresses, err := h.svc.Addresses(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load addresses")
		return
	}
	respondJSON(w, http.StatusOK, addresses)
}

func (h *AccountHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	methods, err := h.svc.PaymentMethods(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load payment methods")
		return
	}
	respondJSON(w, http.StatusOK, methods)
}

func (h *AccountHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	favorites, err := h.svc.Favorites(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load favorites")
		return
	}
	respondJSON(w, http.StatusOK, favorites)
}

func (h *AccountHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	notes, err := h.svc.Notifications(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load notifications")
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

// requireUser rejects requests running as the guest pseudo-user.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := userIDFromContext(r.Context())
	if userID == domain.GuestUserID {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return "", false
	}
	return userID, true
}
