package domain

import "time"

const ShippingFree = "free"

// Product is a read-only catalog entity. The storefront core never
// mutates products, it only reads them when building cart lines and
// search results.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty"`
	CategoryIDs   []string  `json:"category_ids"`
	Images        []string  `json:"images,omitempty"`
	InventoryCount int      `json:"inventory_count"`
	ShippingClass string    `json:"shipping_class,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	SellerID      string    `json:"seller_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EffectivePrice is the discount price when one is set, the list
// price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

func (p Product) OnSale() bool {
	return p.DiscountPrice > 0
}

func (p Product) InStock() bool {
	return p.InventoryCount > 0
}

func (p Product) HasFreeShipping() bool {
	return p.ShippingClass == ShippingFree
}

func (p Product) InCategory(categoryID string) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// MainImage returns the first product image, or an empty string when
// the product has none.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}
