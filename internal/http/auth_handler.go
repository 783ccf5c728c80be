package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/auth"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

type AuthHandler struct {
	store   *auth.Store
	timeout time.Duration
}

func NewAuthHandler(store *auth.Store, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		store:   store,
		timeout: timeout,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequestDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SessionResponseDTO struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type UpdateProfileDTO struct {
	Email             *string             `json:"email,omitempty"`
	FirstName         *string             `json:"first_name,omitempty"`
	LastName          *string             `json:"last_name,omitempty"`
	DefaultCurrency   *string             `json:"default_currency,omitempty"`
	PreferredLanguage *string             `json:"preferred_language,omitempty"`
	Preferences       *domain.Preferences `json:"preferences,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	if err := h.store.Login(ctx, req.Email, req.Password); err != nil {
		handleAuthError(w, err)
		return
	}

	state := h.store.State()
	respondJSON(w, http.StatusOK, SessionResponseDTO{User: state.User, Token: state.Token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	input := auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.store.Register(ctx, input); err != nil {
		handleAuthError(w, err)
		return
	}

	state := h.store.State()
	respondJSON(w, http.StatusCreated, SessionResponseDTO{User: state.User, Token: state.Token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.store.Logout(ctx)
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	state, ok := h.sessionFor(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "not signed in")
		return
	}
	respondJSON(w, http.StatusOK, state.User)
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if _, ok := h.sessionFor(r); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "not signed in")
		return
	}

	var req UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.store.UpdateUser(ctx, auth.UserUpdate{
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DefaultCurrency:   req.DefaultCurrency,
		PreferredLanguage: req.PreferredLanguage,
		Preferences:       req.Preferences,
	})

	respondJSON(w, http.StatusOK, h.store.State().User)
}

// sessionFor returns the active session state only when the request's
// bearer subject is the signed-in user. The store holds one session;
// another user's valid token must not read or edit this profile.
func (h *AuthHandler) sessionFor(r *http.Request) (auth.State, bool) {
	state := h.store.State()
	if !state.IsAuthenticated || state.User == nil {
		return auth.State{}, false
	}
	if userIDFromContext(r.Context()) != state.User.ID {
		return auth.State{}, false
	}
	return state, true
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
