package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
	"github.com/ashikwekenneth/Akawo-App/internal/events"
	"github.com/ashikwekenneth/Akawo-App/internal/storage"
)

// Store is the observable state container for the authentication
// slice. A single logical writer dispatches actions through reduce;
// observers never see a partially applied transition.
type Store struct {
	mu    sync.Mutex
	state State
	subs  []func(State)

	svc   Service
	store storage.Store
	keys  storage.Keys
	pub   events.Publisher
}

type Option func(*Store)

func WithPublisher(pub events.Publisher) Option {
	return func(s *Store) { s.pub = pub }
}

func NewStore(svc Service, store storage.Store, keys storage.Keys, opts ...Option) *Store {
	s := &Store{
		svc:   svc,
		store: store,
		keys:  keys,
		pub:   events.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates a previously persisted session. When both the user
// and the token are present the store transitions straight to the
// authenticated state; the token is not re-validated against a server.
func (s *Store) Load(ctx context.Context) {
	userData, err := s.store.Get(ctx, s.keys.User())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("failed to load stored user: %v", err)
		}
		return
	}
	tokenData, err := s.store.Get(ctx, s.keys.Token())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("failed to load stored token: %v", err)
		}
		return
	}

	var user domain.User
	if err := json.Unmarshal(userData, &user); err != nil {
		log.Printf("failed to decode stored user: %v", err)
		return
	}

	s.dispatch(action{kind: actionSuccess, user: &user, token: string(tokenData)})
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	s.dispatch(action{kind: actionStart})

	session, err := s.svc.Login(ctx, email, password)
	if err != nil {
		s.dispatch(action{kind: actionFailure, err: err.Error()})
		return err
	}

	s.completeSession(ctx, session, events.TypeUserLoggedIn)
	return nil
}

func (s *Store) Register(ctx context.Context, input RegisterInput) error {
	s.dispatch(action{kind: actionStart})

	session, err := s.svc.Register(ctx, input)
	if err != nil {
		s.dispatch(action{kind: actionFailure, err: err.Error()})
		return err
	}

	s.completeSession(ctx, session, events.TypeUserRegistered)
	return nil
}

func (s *Store) completeSession(ctx context.Context, session *Session, eventType string) {
	if err := s.persistSession(ctx, session); err != nil {
		log.Printf("failed to persist session: %v", err)
	}

	s.dispatch(action{kind: actionSuccess, user: &session.User, token: session.Token})

	if err := s.pub.Publish(ctx, events.Event{Type: eventType, UserID: session.User.ID}); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

// Logout clears the persisted session and resets the state. It always
// succeeds; storage failures are logged and swallowed.
func (s *Store) Logout(ctx context.Context) {
	userID := ""
	if u := s.State().User; u != nil {
		userID = u.ID
	}

	if err := s.store.Delete(ctx, s.keys.User()); err != nil {
		log.Printf("failed to clear stored user: %v", err)
	}
	if err := s.store.Delete(ctx, s.keys.Token()); err != nil {
		log.Printf("failed to clear stored token: %v", err)
	}

	s.dispatch(action{kind: actionLogout})

	if userID != "" {
		if err := s.pub.Publish(ctx, events.Event{Type: events.TypeUserLoggedOut, UserID: userID}); err != nil {
			log.Printf("failed to publish logout event: %v", err)
		}
	}
}

// UserUpdate is a partial profile update. Nil fields stay untouched.
type UserUpdate struct {
	Email             *string
	FirstName         *string
	LastName          *string
	DefaultCurrency   *string
	PreferredLanguage *string
	Preferences       *domain.Preferences
}

func (u UserUpdate) apply(user *domain.User) {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.DefaultCurrency != nil {
		user.DefaultCurrency = *u.DefaultCurrency
	}
	if u.PreferredLanguage != nil {
		user.PreferredLanguage = *u.PreferredLanguage
	}
	if u.Preferences != nil {
		user.Preferences = *u.Preferences
	}
}

// UpdateUser merges the partial fields into the current user and
// persists the result. A no-op when nobody is signed in; failures are
// logged, never surfaced to state.
func (s *Store) UpdateUser(ctx context.Context, update UserUpdate) {
	current := s.State().User
	if current == nil {
		return
	}

	merged := *current
	update.apply(&merged)
	merged.UpdatedAt = time.Now()

	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("failed to encode updated user: %v", err)
		return
	}
	if err := s.store.Set(ctx, s.keys.User(), data); err != nil {
		log.Printf("failed to persist updated user: %v", err)
		return
	}

	s.dispatch(action{kind: actionUserUpdated, user: &merged})
}

func (s *Store) ClearError() {
	s.dispatch(action{kind: actionClearError})
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer invoked after every transition with
// the new state.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) persistSession(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, s.keys.User(), data); err != nil {
		return err
	}
	return s.store.Set(ctx, s.keys.Token(), []byte(session.Token))
}

func (s *Store) dispatch(a action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	next := s.state
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
