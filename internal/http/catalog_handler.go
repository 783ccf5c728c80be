package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashikwekenneth/Akawo-App/internal/catalog"
)

type CatalogHandler struct {
	engine  *catalog.Engine
	svc     catalog.Service
	timeout time.Duration
}

func NewCatalogHandler(engine *catalog.Engine, svc catalog.Service, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		engine:  engine,
		svc:     svc,
		timeout: timeout,
	}
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	opts, err := parseSearchOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	results, err := h.engine.Search(ctx, opts)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, results)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := catalog.FindProduct(ctx, h.svc, id)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.svc.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog is unavailable")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

type badParamError struct{ param string }

func (e badParamError) Error() string { return e.param + " must be a number" }

func parseSearchOptions(r *http.Request) (catalog.Options, error) {
	q := r.URL.Query()

	opts := catalog.Options{
		Query:        q.Get("q"),
		CategoryID:   q.Get("category"),
		SortBy:       catalog.Sort(q.Get("sort")),
		InStock:      q.Get("in_stock") == "true",
		FreeShipping: q.Get("free_shipping") == "true",
		OnSale:       q.Get("on_sale") == "true",
	}

	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, badParamError{"min_price"}
		}
		opts.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, badParamError{"max_price"}
		}
		opts.MaxPrice = &v
	}
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, badParamError{"page"}
		}
		opts.Page = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, badParamError{"limit"}
		}
		opts.Limit = v
	}

	return opts, nil
}
