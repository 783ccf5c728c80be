package account

import (
	"context"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/catalog"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

// MockService serves fixture account data with simulated latency. The
// favorites list resolves against the live catalog so it stays
// consistent with whatever catalog source is wired in.
type MockService struct {
	catalog     catalog.Service
	latency     time.Duration
	orders      []Order
	addresses   []Address
	payments    []PaymentMethod
	favoriteIDs map[string][]string
	notes       []Notification
}

func NewMockService(cat catalog.Service, userID string, latency time.Duration) *MockService {
	now := time.Now()
	return &MockService{
		catalog: cat,
		latency: latency,
		orders: []Order{
			{
				ID:     "order-1001",
				UserID: userID,
				Status: OrderDelivered,
				Items: []OrderItem{
					{ProductID: "4", ProductName: "Sony WH-1000XM4 Wireless Headphones", Quantity: 1, UnitPrice: 349.99},
				},
				Total:     377.49,
				CreatedAt: now.Add(-21 * 24 * time.Hour),
			},
			{
				ID:     "order-1002",
				UserID: userID,
				Status: OrderShipped,
				Items: []OrderItem{
					{ProductID: "7", ProductName: "Neutrogena Hydro Boost Water Gel", Quantity: 2, UnitPrice: 19.99},
				},
				Total:     51.98,
				CreatedAt: now.Add(-3 * 24 * time.Hour),
			},
		},
		addresses: []Address{
			{ID: "addr-1", UserID: userID, FullName: "John Doe", Line1: "12 Market Street", City: "Lagos", PostalCode: "100001", Country: "NG", IsDefault: true},
		},
		payments: []PaymentMethod{
			{ID: "pm-1", UserID: userID, Kind: "card", Brand: "visa", Last4: "4242", ExpMonth: 12, ExpYear: 2027, IsDefault: true},
		},
		favoriteIDs: map[string][]string{
			userID: {"2", "4"},
		},
		notes: []Notification{
			{ID: "note-1", UserID: userID, Title: "Order shipped", Body: "Your order order-1002 is on its way.", CreatedAt: now.Add(-2 * 24 * time.Hour)},
			{ID: "note-2", UserID: userID, Title: "Welcome", Body: "Thanks for joining the storefront.", Read: true, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		},
	}
}

func (s *MockService) Orders(ctx context.Context, userID string) ([]Order, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MockService) Order(ctx context.Context, id string) (*Order, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	for _, o := range s.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MockService) Addresses(ctx context.Context, userID string) ([]Address, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []Address
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MockService) PaymentMethods(ctx context.Context, userID string) ([]PaymentMethod, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []PaymentMethod
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MockService) Favorites(ctx context.Context, userID string) ([]domain.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	ids := s.favoriteIDs[userID]
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.Product
	for _, p := range products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MockService) Notifications(ctx context.Context, userID string) ([]Notification, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []Notification
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
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
