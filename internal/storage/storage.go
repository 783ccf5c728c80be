package storage

import (
	"context"
	"errors"
	"fmt"
)

// Store persists JSON snapshots of storefront state. Each store slice
// writes its snapshot after every successful mutation and reads it back
// once at startup.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")

// Keys builds the key set for one owner. Keys are namespaced by an
// explicit owner id so a shared backend never mixes state across
// identities.
type Keys struct {
	app   string
	owner string
}

func NewKeys(app, owner string) Keys {
	return Keys{app: app, owner: owner}
}

func (k Keys) User() string  { return k.key("user") }
func (k Keys) Token() string { return k.key("token") }
func (k Keys) Cart() string  { return k.key("cart") }

func (k Keys) key(slot string) string {
	return fmt.Sprintf("%s:%s:%s", k.app, k.owner, slot)
}
