package catalog

import (
	"context"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

// StaticService serves a fixed product set from memory, optionally
// simulating network latency. This stands in for the real catalog
// backend during development and in tests.
type StaticService struct {
	products   []domain.Product
	categories []domain.Category
	latency    time.Duration
}

func NewStaticService(products []domain.Product, categories []domain.Category, latency time.Duration) *StaticService {
	return &StaticService{
		products:   products,
		categories: categories,
		latency:    latency,
	}
}

// NewDemoService returns a static service preloaded with the demo
// storefront catalog.
func NewDemoService(latency time.Duration) *StaticService {
	return NewStaticService(demoProducts(), demoCategories(), latency)
}

func (s *StaticService) Products(ctx context.Context) ([]domain.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *StaticService) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *StaticService) wait(ctx context.Context) error {
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

func demoCategories() []domain.Category {
	return []domain.Category{
		{ID: "electronics", Name: "Electronics", Description: "Explore the latest tech gadgets and electronics."},
		{ID: "clothing", Name: "Clothing & Accessories", Description: "Discover trendy fashion and accessories for all seasons."},
		{ID: "home", Name: "Home & Kitchen", Description: "Everything you need for your home, from appliances to decor."},
		{ID: "beauty", Name: "Beauty & Personal Care", Description: "Premium beauty products and personal care essentials."},
	}
}

func demoProducts() []domain.Product {
	day := 24 * time.Hour
	now := time.Now()
	return []domain.Product{
		{
			ID:             "1",
			Name:           "iPhone 13 Pro Max",
			Description:    "The latest iPhone with A15 Bionic chip, Pro camera system, and Super Retina XDR display.",
			Price:          1099.99,
			CategoryIDs:    []string{"electronics"},
			InventoryCount: 50,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.8,
			SellerID:       "seller-apple",
			CreatedAt:      now.Add(-30 * day),
		},
		{
			ID:             "2",
			Name:           "Samsung Galaxy S22 Ultra",
			Description:    "The most advanced Galaxy smartphone with built-in S Pen and Nightography camera.",
			Price:          1199.99,
			DiscountPrice:  999.99,
			CategoryIDs:    []string{"electronics"},
			InventoryCount: 35,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.7,
			SellerID:       "seller-samsung",
			CreatedAt:      now.Add(-20 * day),
		},
		{
			ID:             "3",
			Name:           "MacBook Pro 16-inch",
			Description:    "Supercharged for pros with M1 Pro or M1 Max chip for groundbreaking performance.",
			Price:          2499.99,
			CategoryIDs:    []string{"electronics"},
			InventoryCount: 20,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.9,
			SellerID:       "seller-apple",
			CreatedAt:      now.Add(-60 * day),
		},
		{
			ID:             "4",
			Name:           "Sony WH-1000XM4 Wireless Headphones",
			Description:    "Industry leading noise canceling with Dual Noise Sensor technology.",
			Price:          399.99,
			DiscountPrice:  349.99,
			CategoryIDs:    []string{"electronics"},
			InventoryCount: 100,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.8,
			SellerID:       "seller-sony",
			CreatedAt:      now.Add(-90 * day),
		},
		{
			ID:             "5",
			Name:           "Nike Air Max 270",
			Description:    "Visible cushioning under every step with a huge Max Air unit and lightweight foam.",
			Price:          150,
			CategoryIDs:    []string{"clothing"},
			InventoryCount: 75,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.6,
			SellerID:       "seller-nike",
			CreatedAt:      now.Add(-45 * day),
		},
		{
			ID:             "6",
			Name:           "Instant Pot Duo 7-in-1",
			Description:    "A 7-in-1 programmable cooker replacing several kitchen appliances with one.",
			Price:          119.99,
			DiscountPrice:  89.99,
			CategoryIDs:    []string{"home"},
			InventoryCount: 120,
			ShippingClass:  domain.ShippingFree,
			Rating:         4.7,
			SellerID:       "seller-instant",
			CreatedAt:      now.Add(-120 * day),
		},
		{
			ID:             "7",
			Name:           "Neutrogena Hydro Boost Water Gel",
			Description:    "This lightweight gel cream instantly quenches and continuously hydrates skin.",
			Price:          19.99,
			CategoryIDs:    []string{"beauty"},
			InventoryCount: 200,
			Rating:         4.5,
			SellerID:       "seller-neutrogena",
			CreatedAt:      now.Add(-150 * day),
		},
		{
			ID:             "8",
			Name:           "Levi's 501 Original Fit Jeans",
			Description:    "The original blue jean since 1873, a classic straight leg fit.",
			Price:          69.99,
			DiscountPrice:  49.99,
			CategoryIDs:    []string{"clothing"},
			InventoryCount: 0,
			Rating:         4.4,
			SellerID:       "seller-levis",
			CreatedAt:      now.Add(-10 * day),
		},
	}
}
