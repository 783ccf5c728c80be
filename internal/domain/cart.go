package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// GuestUserID owns carts created before anyone signs in.
	GuestUserID = "guest"

	flatShippingFee = 10.0
	taxRate         = 0.05
)

// CartItem is one line in a cart. Display fields and the unit price
// are denormalized from the product at add-time and never re-read.
type CartItem struct {
	ProductID    string            `json:"product_id"`
	ProductName  string            `json:"product_name"`
	ProductImage string            `json:"product_image,omitempty"`
	Quantity     int               `json:"quantity"`
	UnitPrice    float64           `json:"unit_price"`
	TotalPrice   float64           `json:"total_price"`
	SellerID     string            `json:"seller_id,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// Key identifies the line within its cart. Two lines for the same
// product with different attribute selections are distinct.
func (i CartItem) Key() string {
	return LineKey(i.ProductID, i.Attributes)
}

// LineKey builds the canonical (productID, attributes) identity for a
// cart line. Attribute order does not matter.
func LineKey(productID string, attrs map[string]string) string {
	if len(attrs) == 0 {
		return productID
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(productID)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, attrs[k])
	}
	return b.String()
}

// Coupon records one applied code together with the discount it
// granted, so removing a code takes back exactly its own contribution.
type Coupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// Cart holds an ordered sequence of lines plus derived aggregates.
// Aggregates are only ever written by Recalculate.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Shipping  float64    `json:"shipping"`
	Tax       float64    `json:"tax"`
	Total     float64    `json:"total"`
	Coupons   []Coupon   `json:"coupons,omitempty"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	if userID == "" {
		userID = GuestUserID
	}
	now := time.Now()
	return &Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []CartItem{},
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Totals is the read-only aggregate projection of a cart.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Recalculate rebuilds every aggregate from the current lines and the
// coupon ledger. Must run after every mutation; no code path may leave
// aggregates stale.
func (c *Cart) Recalculate() {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.TotalPrice
	}
	c.Subtotal = Round2(subtotal)

	if len(c.Items) > 0 {
		c.Shipping = flatShippingFee
	} else {
		c.Shipping = 0
	}

	c.Tax = Round2(c.Subtotal * taxRate)

	total := c.Subtotal + c.Shipping + c.Tax
	for _, coupon := range c.Coupons {
		total -= coupon.Discount
	}
	c.Total = Round2(total)
}

// FindLine returns the index of the line matching the exact
// (productID, attributes) identity, or -1.
func (c *Cart) FindLine(productID string, attrs map[string]string) int {
	key := LineKey(productID, attrs)
	for i, item := range c.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Clone deep-copies the cart so a mutation can be prepared without
// touching the currently observable state.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	for i, item := range c.Items {
		if item.Attributes != nil {
			attrs := make(map[string]string, len(item.Attributes))
			for k, v := range item.Attributes {
				attrs[k] = v
			}
			out.Items[i].Attributes = attrs
		}
	}
	if c.Coupons != nil {
		out.Coupons = make([]Coupon, len(c.Coupons))
		copy(out.Coupons, c.Coupons)
	}
	return &out
}

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
