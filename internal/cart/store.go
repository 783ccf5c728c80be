package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
	"github.com/ashikwekenneth/Akawo-App/internal/events"
	"github.com/ashikwekenneth/Akawo-App/internal/storage"
)

var (
	ErrItemNotFound = errors.New("item not found in cart")
	ErrNotLoaded    = errors.New("cart is not loaded")
)

const couponRate = 0.10

// Store is the observable state container for one owner's cart. All
// aggregates are recomputed on every mutation and the full cart is
// persisted after each successful transition.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   []func(State)
	loaded bool

	owner string
	store storage.Store
	keys  storage.Keys
	pub   events.Publisher
	sfg   singleflight.Group // dedupes concurrent startup loads
}

type Option func(*Store)

func WithPublisher(pub events.Publisher) Option {
	return func(s *Store) { s.pub = pub }
}

func NewStore(owner string, store storage.Store, keys storage.Keys, opts ...Option) *Store {
	if owner == "" {
		owner = domain.GuestUserID
	}
	s := &Store{
		owner: owner,
		store: store,
		keys:  keys,
		pub:   events.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the persisted cart, creating and persisting a fresh
// empty one when none exists yet. A no-op once the store is loaded;
// after a failed load the next call retries.
func (s *Store) Load(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}

	_, err, _ := s.sfg.Do("load", func() (interface{}, error) {
		s.dispatch(action{kind: actionStart})

		data, err := s.store.Get(ctx, s.keys.Cart())
		if errors.Is(err, storage.ErrNotFound) {
			fresh := domain.NewCart(s.owner)
			s.persist(ctx, fresh)
			s.markLoaded()
			s.dispatch(action{kind: actionSuccess, cart: fresh})
			return nil, nil
		}
		if err != nil {
			s.dispatch(action{kind: actionFailure, err: "failed to load your shopping cart"})
			return nil, err
		}

		var cart domain.Cart
		if err := json.Unmarshal(data, &cart); err != nil {
			s.dispatch(action{kind: actionFailure, err: "failed to load your shopping cart"})
			return nil, err
		}

		s.markLoaded()
		s.dispatch(action{kind: actionSuccess, cart: &cart})
		return nil, nil
	})
	return err
}

// Loaded reports whether a rehydrate has succeeded. Mutations refuse
// to run before that: fabricating a fresh cart here would overwrite
// whatever snapshot the owner already has persisted.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Store) markLoaded() {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
}

// AddToCart adds quantity of the product under the given attribute
// selection. An existing matching line keeps the unit price captured
// when it was first created; a new line snapshots the product's
// current effective price.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int, attrs map[string]string) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	cart := s.workingCart()
	if i := cart.FindLine(product.ID, attrs); i >= 0 {
		line := &cart.Items[i]
		line.Quantity += quantity
		line.TotalPrice = domain.Round2(float64(line.Quantity) * line.UnitPrice)
	} else {
		unit := product.EffectivePrice()
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.MainImage(),
			Quantity:     quantity,
			UnitPrice:    unit,
			TotalPrice:   domain.Round2(unit * float64(quantity)),
			SellerID:     product.SellerID,
			Attributes:   attrs,
		})
	}

	// Each coupon grant is a snapshot of a total that no longer
	// exists once the lines change, so item mutations drop them.
	cart.Coupons = nil

	s.commit(ctx, cart, events.TypeCartUpdated)
	return nil
}

// UpdateItem overwrites the quantity of the first line for productID.
// Quantity of zero or less removes every line for that product. The
// lookup is product-scoped: attribute-qualified lines are not
// distinguished here.
func (s *Store) UpdateItem(ctx context.Context, productID string, quantity int) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	cart := s.workingCart()
	index := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			index = i
			break
		}
	}
	if index < 0 {
		s.dispatch(action{kind: actionFailure, err: ErrItemNotFound.Error()})
		return ErrItemNotFound
	}

	if quantity <= 0 {
		cart.Items = removeProduct(cart.Items, productID)
	} else {
		line := &cart.Items[index]
		line.Quantity = quantity
		line.TotalPrice = domain.Round2(float64(quantity) * line.UnitPrice)
	}
	cart.Coupons = nil

	s.commit(ctx, cart, events.TypeCartUpdated)
	return nil
}

// RemoveItem deletes every line for productID. Removing an absent
// product is not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	cart := s.workingCart()
	cart.Items = removeProduct(cart.Items, productID)
	cart.Coupons = nil

	s.commit(ctx, cart, events.TypeCartUpdated)
	return nil
}

// Clear replaces the cart with a fresh empty one for the same owner.
func (s *Store) Clear(ctx context.Context) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	owner := s.owner
	if current := s.State().Cart; current != nil {
		owner = current.UserID
	}

	s.commit(ctx, domain.NewCart(owner), events.TypeCartCleared)
	return nil
}

// ApplyCoupon grants a flat 10% of the current total and records the
// grant in the coupon ledger. There is no validation of the code; a
// real discount-rules engine sits behind this in production.
func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	cart := s.workingCart()
	discount := domain.Round2(cart.Total * couponRate)
	cart.Coupons = append(cart.Coupons, domain.Coupon{Code: code, Discount: discount})
	s.commit(ctx, cart, events.TypeCartUpdated)
	return nil
}

// RemoveCoupon takes back exactly the named coupon's recorded
// contribution, leaving any other applied coupons in effect.
func (s *Store) RemoveCoupon(ctx context.Context, code string) error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	s.dispatch(action{kind: actionStart})

	cart := s.workingCart()
	for i, coupon := range cart.Coupons {
		if coupon.Code == code {
			cart.Coupons = append(cart.Coupons[:i], cart.Coupons[i+1:]...)
			break
		}
	}
	s.commit(ctx, cart, events.TypeCartUpdated)
	return nil
}

// Totals is the read-only aggregate projection, all-zero for an empty
// or absent cart.
func (s *Store) Totals() domain.Totals {
	cart := s.State().Cart
	if cart == nil || len(cart.Items) == 0 {
		return domain.Totals{}
	}
	return domain.Totals{
		Subtotal: cart.Subtotal,
		Shipping: cart.Shipping,
		Tax:      cart.Tax,
		Total:    cart.Total,
	}
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

// workingCart clones the current cart, or creates one, so a mutation
// never touches the observable state before its success transition.
func (s *Store) workingCart() *domain.Cart {
	if current := s.State().Cart; current != nil {
		return current.Clone()
	}
	return domain.NewCart(s.owner)
}

// commit recomputes aggregates, publishes the success transition,
// persists the snapshot and emits a domain event. Persistence and
// event failures are logged, never surfaced.
func (s *Store) commit(ctx context.Context, cart *domain.Cart, eventType string) {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	s.dispatch(action{kind: actionSuccess, cart: cart})
	s.persist(ctx, cart)

	event := events.Event{Type: eventType, UserID: cart.UserID, CartID: cart.ID}
	if err := s.pub.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func (s *Store) persist(ctx context.Context, cart *domain.Cart) {
	data, err := json.Marshal(cart)
	if err != nil {
		log.Printf("failed to encode cart: %v", err)
		return
	}
	if err := s.store.Set(ctx, s.keys.Cart(), data); err != nil {
		log.Printf("failed to persist cart: %v", err)
	}
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

func removeProduct(items []domain.CartItem, productID string) []domain.CartItem {
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
