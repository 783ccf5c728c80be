package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/auth"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
	"github.com/ashikwekenneth/Akawo-App/internal/storage"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	svc := auth.NewMockService([]byte("test-secret"), 0)
	if err := svc.Seed(domain.User{
		ID:        "user-demo",
		Email:     "demo@akawo.shop",
		FirstName: "Demo",
		LastName:  "Shopper",
	}, "password123"); err != nil {
		t.Fatalf("Failed to seed auth service: %v", err)
	}

	store := auth.NewStore(svc, storage.NewMemoryStore(), storage.NewKeys("test", "session"))
	return NewAuthHandler(store, 5*time.Second)
}

func login(t *testing.T, handler *AuthHandler) {
	t.Helper()
	body, _ := json.Marshal(LoginRequestDTO{Email: "demo@akawo.shop", Password: "password123"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))

	handler.Login(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Login setup failed with status %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestLogin_Success(t *testing.T) {
	handler := newTestAuthHandler(t)

	body, _ := json.Marshal(LoginRequestDTO{Email: "demo@akawo.shop", Password: "password123"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))

	handler.Login(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response SessionResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.User == nil || response.User.Email != "demo@akawo.shop" {
		t.Errorf("Expected demo user in response, got %+v", response.User)
	}
	if response.Token == "" {
		t.Error("Expected a session token in response")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	handler := newTestAuthHandler(t)

	body, _ := json.Marshal(LoginRequestDTO{Email: "demo@akawo.shop", Password: "wrong"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))

	handler.Login(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_credentials" {
		t.Errorf("Expected error code 'invalid_credentials', got '%s'", response.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	handler := newTestAuthHandler(t)

	body, _ := json.Marshal(LoginRequestDTO{Email: "demo@akawo.shop"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))

	handler.Login(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := newTestAuthHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))

	handler.Login(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestRegister_Success(t *testing.T) {
	handler := newTestAuthHandler(t)

	body, _ := json.Marshal(RegisterRequestDTO{
		Email:     "new@akawo.shop",
		Password:  "secret123",
		FirstName: "New",
		LastName:  "Shopper",
	})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))

	handler.Register(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response SessionResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.User == nil || response.User.Email != "new@akawo.shop" {
		t.Errorf("Expected new user in response, got %+v", response.User)
	}
	if response.Token == "" {
		t.Error("Expected a session token in response")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler := newTestAuthHandler(t)

	body, _ := json.Marshal(RegisterRequestDTO{Email: "demo@akawo.shop", Password: "secret123"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))

	handler.Register(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "email_taken" {
		t.Errorf("Expected error code 'email_taken', got '%s'", response.Code)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	handler := newTestAuthHandler(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/me", nil)

	handler.Me(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "unauthenticated" {
		t.Errorf("Expected error code 'unauthenticated', got '%s'", response.Code)
	}
}

func TestMe_Authenticated(t *testing.T) {
	handler := newTestAuthHandler(t)
	login(t, handler)

	recorder := httptest.NewRecorder()
	request := asUser(httptest.NewRequest("GET", "/me", nil), "user-demo")

	handler.Me(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.User
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Email != "demo@akawo.shop" {
		t.Errorf("Expected demo user, got '%s'", response.Email)
	}
}

func TestUpdateMe_Success(t *testing.T) {
	handler := newTestAuthHandler(t)
	login(t, handler)

	firstName := "Updated"
	body, _ := json.Marshal(UpdateProfileDTO{FirstName: &firstName})
	recorder := httptest.NewRecorder()
	request := asUser(httptest.NewRequest("PATCH", "/me", bytes.NewReader(body)), "user-demo")

	handler.UpdateMe(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.User
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.FirstName != "Updated" {
		t.Errorf("Expected first name 'Updated', got '%s'", response.FirstName)
	}
	if response.LastName != "Shopper" {
		t.Errorf("Expected untouched last name 'Shopper', got '%s'", response.LastName)
	}
}

func TestMe_OtherUsersTokenRejected(t *testing.T) {
	handler := newTestAuthHandler(t)
	login(t, handler)

	recorder := httptest.NewRecorder()
	// A valid token for a different user must not expose this session's
	// profile.
	request := asUser(httptest.NewRequest("GET", "/me", nil), "user-other")

	handler.Me(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestUpdateMe_OtherUsersTokenRejected(t *testing.T) {
	handler := newTestAuthHandler(t)
	login(t, handler)

	firstName := "Hijacked"
	body, _ := json.Marshal(UpdateProfileDTO{FirstName: &firstName})
	recorder := httptest.NewRecorder()
	request := asUser(httptest.NewRequest("PATCH", "/me", bytes.NewReader(body)), "user-other")

	handler.UpdateMe(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	meRecorder := httptest.NewRecorder()
	meRequest := asUser(httptest.NewRequest("GET", "/me", nil), "user-demo")
	handler.Me(meRecorder, meRequest)

	var response domain.User
	if err := json.NewDecoder(meRecorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.FirstName != "Demo" {
		t.Errorf("Expected profile to be untouched, got first name '%s'", response.FirstName)
	}
}

func TestUpdateMe_Unauthenticated(t *testing.T) {
	handler := newTestAuthHandler(t)

	firstName := "Updated"
	body, _ := json.Marshal(UpdateProfileDTO{FirstName: &firstName})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PATCH", "/me", bytes.NewReader(body))

	handler.UpdateMe(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	handler := newTestAuthHandler(t)
	login(t, handler)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/auth/logout", nil)

	handler.Logout(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("Expected status code %d, got %d", http.StatusNoContent, recorder.Code)
	}

	meRecorder := httptest.NewRecorder()
	meRequest := httptest.NewRequest("GET", "/me", nil)
	handler.Me(meRecorder, meRequest)

	if meRecorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d after logout, got %d", http.StatusUnauthorized, meRecorder.Code)
	}
}
