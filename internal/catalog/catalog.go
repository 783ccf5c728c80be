package catalog

import (
	"context"
	"errors"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

// Service returns the full product and category collections. No
// filtering is pushed down; the query engine does all of it.
type Service interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

var ErrProductNotFound = errors.New("product not found")

// FindProduct scans the full collection for one product id.
func FindProduct(ctx context.Context, svc Service, id string) (*domain.Product, error) {
	products, err := svc.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
