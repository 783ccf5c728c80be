package catalog

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/ashikwekenneth/Akawo-App/internal/domain"
	"github.com/sony/gobreaker/v2"
)

type Sort string

const (
	SortRelevance Sort = "relevance"
	SortPriceLow  Sort = "price_low"
	SortPriceHigh Sort = "price_high"
	SortRating    Sort = "rating"
	SortNewest    Sort = "newest"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Options is the filter/sort/pagination specification for one search.
// Zero values mean "not set"; price bounds are pointers so zero is a
// usable bound.
type Options struct {
	Query        string
	CategoryID   string
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       Sort
	InStock      bool
	FreeShipping bool
	OnSale       bool
	Page         int
	Limit        int
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Results struct {
	Products   []domain.Product  `json:"products"`
	TotalItems int               `json:"total_items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Categories []domain.Category `json:"categories"`
	PriceRange PriceRange        `json:"price_range"`
}

type collections struct {
	products   []domain.Product
	categories []domain.Category
}

// Engine filters, sorts and paginates the catalog client-side.
// Catalog fetches go through a circuit breaker so a flapping backend
// fails fast instead of piling up requests.
type Engine struct {
	svc     Service
	breaker *gobreaker.CircuitBreaker[collections]
	degrade bool
}

type EngineOption func(*Engine)

// WithDegradeOnError makes Search swallow catalog failures and return
// the empty well-formed result instead of propagating the error.
func WithDegradeOnError() EngineOption {
	return func(e *Engine) { e.degrade = true }
}

func NewEngine(svc Service, opts ...EngineOption) *Engine {
	e := &Engine{
		svc:     svc,
		breaker: gobreaker.NewCircuitBreaker[collections](gobreaker.Settings{Name: "catalog"}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Search(ctx context.Context, opts Options) (*Results, error) {
	if opts.Page <= 0 {
		opts.Page = DefaultPage
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.SortBy == "" {
		opts.SortBy = SortRelevance
	}

	cols, err := e.breaker.Execute(func() (collections, error) {
		return e.fetch(ctx)
	})
	if err != nil {
		if e.degrade {
			log.Printf("catalog search degraded to empty result: %v", err)
			return emptyResults(), nil
		}
		return nil, err
	}

	filtered := applyFilters(cols.products, opts)
	sortProducts(filtered, opts)

	// Range over the unfiltered collection: the UI renders filter
	// bounds independent of the current filters.
	priceRange := globalPriceRange(cols.products)

	totalItems := len(filtered)
	totalPages := int(math.Ceil(float64(totalItems) / float64(opts.Limit)))

	start := (opts.Page - 1) * opts.Limit
	if start > totalItems {
		start = totalItems
	}
	end := start + opts.Limit
	if end > totalItems {
		end = totalItems
	}

	return &Results{
		Products:   filtered[start:end],
		TotalItems: totalItems,
		Page:       opts.Page,
		TotalPages: totalPages,
		Categories: cols.categories,
		PriceRange: priceRange,
	}, nil
}

func (e *Engine) fetch(ctx context.Context) (collections, error) {
	products, err := e.svc.Products(ctx)
	if err != nil {
		return collections{}, err
	}
	categories, err := e.svc.Categories(ctx)
	if err != nil {
		return collections{}, err
	}
	return collections{products: products, categories: categories}, nil
}

func applyFilters(products []domain.Product, opts Options) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	query := strings.ToLower(opts.Query)

	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if opts.CategoryID != "" && !p.InCategory(opts.CategoryID) {
			continue
		}
		if opts.MinPrice != nil && p.EffectivePrice() < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && p.EffectivePrice() > *opts.MaxPrice {
			continue
		}
		if opts.InStock && !p.InStock() {
			continue
		}
		if opts.FreeShipping && !p.HasFreeShipping() {
			continue
		}
		if opts.OnSale && !p.OnSale() {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func sortProducts(products []domain.Product, opts Options) {
	switch opts.SortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortRelevance:
		// Without a query, relevance keeps filter order.
		if opts.Query != "" {
			sortByRelevance(products, opts.Query)
		}
	}
}

// sortByRelevance ranks exact-prefix matches first, then exact
// single-word matches, then falls back to rating.
func sortByRelevance(products []domain.Product, query string) {
	query = strings.ToLower(query)

	rank := func(p domain.Product) int {
		name := strings.ToLower(p.Name)
		if strings.HasPrefix(name, query) {
			return 0
		}
		for _, word := range strings.Fields(name) {
			if word == query {
				return 1
			}
		}
		return 2
	}

	sort.SliceStable(products, func(i, j int) bool {
		ri, rj := rank(products[i]), rank(products[j])
		if ri != rj {
			return ri < rj
		}
		return products[i].Rating > products[j].Rating
	})
}

func globalPriceRange(products []domain.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{}
	}
	min := products[0].EffectivePrice()
	max := min
	for _, p := range products[1:] {
		price := p.EffectivePrice()
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	return PriceRange{Min: math.Floor(min), Max: math.Ceil(max)}
}

func emptyResults() *Results {
	return &Results{
		Products:   []domain.Product{},
		Page:       DefaultPage,
		Categories: []domain.Category{},
		PriceRange: PriceRange{Min: 0, Max: 1000},
	}
}
