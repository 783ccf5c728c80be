package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

func fixtureProducts() []domain.Product {
	now := time.Now()
	return []domain.Product{
		{
			ID: "1", Name: "iPhone 13 Pro Max", Description: "The latest iPhone.",
			Price: 1099.99, CategoryIDs: []string{"electronics"},
			InventoryCount: 50, ShippingClass: domain.ShippingFree,
			Rating: 4.8, CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID: "2", Name: "Galaxy S22", Description: "Advanced Galaxy smartphone.",
			Price: 1199.99, DiscountPrice: 999.99, CategoryIDs: []string{"electronics"},
			InventoryCount: 35, ShippingClass: domain.ShippingFree,
			Rating: 4.7, CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID: "3", Name: "Nike Air Max 270", Description: "Athletic shoes with visible cushioning.",
			Price: 150, CategoryIDs: []string{"clothing"},
			InventoryCount: 0, Rating: 4.6, CreatedAt: now.Add(-72 * time.Hour),
		},
	}
}

func fixtureCategories() []domain.Category {
	return []domain.Category{
		{ID: "electronics", Name: "Electronics"},
		{ID: "clothing", Name: "Clothing & Accessories"},
	}
}

func newTestEngine(opts ...EngineOption) *Engine {
	svc := NewStaticService(fixtureProducts(), fixtureCategories(), 0)
	return NewEngine(svc, opts...)
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestSearch_NoFilters(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, results.TotalItems)
	assert.Equal(t, 1, results.Page)
	assert.Equal(t, 1, results.TotalPages)
	assert.Len(t, results.Products, 3)
	assert.Len(t, results.Categories, 2)
}

func TestSearch_OnSaleFilter(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{OnSale: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, productIDs(results.Products))
}

func TestSearch_PriceLowUsesEffectivePrice(t *testing.T) {
	engine := newTestEngine()

	min := 900.0
	results, err := engine.Search(context.Background(), Options{SortBy: SortPriceLow, MinPrice: &min})
	require.NoError(t, err)

	// Product 2 sells for 999.99 after discount, under product 1's 1099.99.
	assert.Equal(t, []string{"2", "1"}, productIDs(results.Products))
}

func TestSearch_PriceHigh(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{SortBy: SortPriceHigh})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, productIDs(results.Products))
}

func TestSearch_TextQueryMatchesNameOrDescription(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{Query: "galaxy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, productIDs(results.Products))

	results, err = engine.Search(context.Background(), Options{Query: "cushioning"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, productIDs(results.Products))
}

func TestSearch_CategoryFilter(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{CategoryID: "clothing"})
	require.NoError(t, err)

	assert.Equal(t, []string{"3"}, productIDs(results.Products))
}

func TestSearch_PriceBoundsFilter(t *testing.T) {
	engine := newTestEngine()

	min, max := 100.0, 1000.0
	results, err := engine.Search(context.Background(), Options{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)

	// Product 2 qualifies on its discount price; product 1 is too
	// expensive; product 3 is in range.
	assert.ElementsMatch(t, []string{"2", "3"}, productIDs(results.Products))
}

func TestSearch_InStockFilter(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{InStock: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"1", "2"}, productIDs(results.Products))
}

func TestSearch_FreeShippingFilter(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{FreeShipping: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"1", "2"}, productIDs(results.Products))
}

func TestSearch_SortRating(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{SortBy: SortRating})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, productIDs(results.Products))
}

func TestSearch_SortNewest(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{SortBy: SortNewest})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1", "3"}, productIDs(results.Products))
}

func TestSearch_RelevanceRanking(t *testing.T) {
	now := time.Now()
	svc := NewStaticService([]domain.Product{
		{ID: "a", Name: "Case for iPhone", Rating: 4.9, CreatedAt: now},
		{ID: "b", Name: "iPhone 13 Pro Max", Rating: 4.8, CreatedAt: now},
		{ID: "c", Name: "Apple iPhone charger", Rating: 4.2, CreatedAt: now},
	}, nil, 0)
	engine := NewEngine(svc)

	results, err := engine.Search(context.Background(), Options{Query: "iphone"})
	require.NoError(t, err)

	// Prefix match first, then exact word matches by rating.
	assert.Equal(t, []string{"b", "a", "c"}, productIDs(results.Products))
}

func TestSearch_RelevanceWithoutQueryKeepsOrder(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{SortBy: SortRelevance})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, productIDs(results.Products))
}

func TestSearch_Pagination(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{Limit: 2, Page: 1})
	require.NoError(t, err)
	assert.Len(t, results.Products, 2)
	assert.Equal(t, 3, results.TotalItems)
	assert.Equal(t, 2, results.TotalPages)

	results, err = engine.Search(context.Background(), Options{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Len(t, results.Products, 1)

	results, err = engine.Search(context.Background(), Options{Limit: 2, Page: 5})
	require.NoError(t, err)
	assert.Empty(t, results.Products)
	assert.Equal(t, 2, results.TotalPages)
}

func TestSearch_PriceRangeIgnoresFilters(t *testing.T) {
	engine := newTestEngine()

	results, err := engine.Search(context.Background(), Options{CategoryID: "clothing"})
	require.NoError(t, err)

	// Bounds come from the whole catalog, not the filtered slice.
	assert.Equal(t, 150.0, results.PriceRange.Min)
	assert.Equal(t, 1100.0, results.PriceRange.Max)
}

type failingService struct{}

func (failingService) Products(context.Context) ([]domain.Product, error) {
	return nil, errors.New("catalog down")
}

func (failingService) Categories(context.Context) ([]domain.Category, error) {
	return nil, errors.New("catalog down")
}

func TestSearch_ErrorPropagatesByDefault(t *testing.T) {
	engine := NewEngine(failingService{})

	_, err := engine.Search(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSearch_DegradeOnError(t *testing.T) {
	engine := NewEngine(failingService{}, WithDegradeOnError())

	results, err := engine.Search(context.Background(), Options{})
	require.NoError(t, err)

	assert.Empty(t, results.Products)
	assert.Zero(t, results.TotalItems)
	assert.Zero(t, results.TotalPages)
	assert.Equal(t, PriceRange{Min: 0, Max: 1000}, results.PriceRange)
}

func TestFindProduct(t *testing.T) {
	svc := NewStaticService(fixtureProducts(), fixtureCategories(), 0)

	product, err := FindProduct(context.Background(), svc, "2")
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S22", product.Name)

	_, err = FindProduct(context.Background(), svc, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
