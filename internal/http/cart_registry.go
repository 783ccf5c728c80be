package http

import (
	"context"
	"sync"

	"github.com/ashikwekenneth/Akawo-App/internal/cart"
)

// CartStores hands out one cart store per owner, creating and
// rehydrating it on first use.
type CartStores struct {
	mu       sync.Mutex
	stores   map[string]*cart.Store
	newStore func(owner string) *cart.Store
}

func NewCartStores(newStore func(owner string) *cart.Store) *CartStores {
	return &CartStores{
		stores:   make(map[string]*cart.Store),
		newStore: newStore,
	}
}

func (c *CartStores) For(ctx context.Context, owner string) (*cart.Store, error) {
	c.mu.Lock()
	store, ok := c.stores[owner]
	if !ok {
		store = c.newStore(owner)
		c.stores[owner] = store
	}
	c.mu.Unlock()

	// Rehydrate on first use; a store whose load failed stays cached
	// and retries here on the next request.
	if !store.Loaded() {
		if err := store.Load(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}
