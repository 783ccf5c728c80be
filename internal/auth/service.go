package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Session pairs a user with an opaque session token. Exists only while
// authenticated.
type Session struct {
	User  domain.User
	Token string
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Service is the backend collaborator the auth store depends on. The
// store never talks to a network itself, so a real backend can replace
// MockService without touching store logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, input RegisterInput) (*Session, error)
}

type account struct {
	user         domain.User
	passwordHash []byte
}

// MockService simulates the auth backend: an in-memory account table,
// bcrypt password checks, HS256 session tokens and fixed latency.
type MockService struct {
	mu       sync.RWMutex
	accounts map[string]*account
	secret   []byte
	latency  time.Duration
	tokenTTL time.Duration
}

func NewMockService(secret []byte, latency time.Duration) *MockService {
	return &MockService{
		accounts: make(map[string]*account),
		secret:   secret,
		latency:  latency,
		tokenTTL: 24 * time.Hour,
	}
}

// Seed registers an account without latency, for bootstrapping demo
// users at startup.
func (s *MockService) Seed(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[normalizeEmail(user.Email)] = &account{user: user, passwordHash: hash}
	return nil
}

func (s *MockService) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	acc, ok := s.accounts[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(acc.user)
	if err != nil {
		return nil, err
	}
	return &Session{User: acc.user, Token: token}, nil
}

func (s *MockService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		ID:                uuid.NewString(),
		Email:             email,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Role:              domain.RoleCustomer,
		Status:            domain.StatusActive,
		DefaultCurrency:   "USD",
		PreferredLanguage: "en",
		Preferences: domain.Preferences{
			Notifications: domain.NotificationPrefs{Email: true, Push: true},
			Marketing:     true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		return nil, ErrEmailTaken
	}
	s.accounts[email] = &account{user: user, passwordHash: hash}
	s.mu.Unlock()

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func (s *MockService) issueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *MockService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyToken parses a session token and returns the user id it was
// issued for.
func VerifyToken(secret []byte, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
