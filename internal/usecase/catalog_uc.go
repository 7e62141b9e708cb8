package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
)

// CatalogUC serves the normalized catalog. Provider failures never surface:
// listing falls back to the injected seed set and search degrades to empty
// results.
type CatalogUC struct {
	provider    domain.CatalogProvider
	fallback    []domain.Product
	collections []domain.Collection
	searchLimit int
}

func NewCatalogUC(provider domain.CatalogProvider, fallback []domain.Product, collections []domain.Collection, searchLimit int) *CatalogUC {
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &CatalogUC{
		provider:    provider,
		fallback:    fallback,
		collections: collections,
		searchLimit: searchLimit,
	}
}

// GetProducts lists the catalog with optional filtering and sorting. It never
// fails: when the provider is unreachable the seed products are served so the
// storefront always has something to show.
func (uc *CatalogUC) GetProducts(ctx context.Context, f domain.ProductFilter) []domain.Product {
	src, err := uc.provider.FetchProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Str("provider", uc.provider.Name()).Msg("catalog fetch failed, serving seed data")
		src = uc.fallback
	}
	// Filtering below compacts in place; work on a copy so a provider that
	// returns a shared or cached slice is never mutated.
	list := append([]domain.Product(nil), src...)

	if f.Category != "" {
		kept := list[:0]
		for _, p := range list {
			if p.Category == f.Category {
				kept = append(kept, p)
			}
		}
		list = kept
	}
	if f.MinPrice != nil {
		kept := list[:0]
		for _, p := range list {
			if p.Price >= *f.MinPrice {
				kept = append(kept, p)
			}
		}
		list = kept
	}
	if f.MaxPrice != nil {
		kept := list[:0]
		for _, p := range list {
			if p.Price <= *f.MaxPrice {
				kept = append(kept, p)
			}
		}
		list = kept
	}

	switch f.Sort {
	case "price_asc":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case "price_desc":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	}
	return list
}

// GetProductByHandle resolves a product by its synthesized handle.
func (uc *CatalogUC) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	if handle == "" {
		return nil, domain.ErrNotFound
	}
	for _, p := range uc.GetProducts(ctx, domain.ProductFilter{}) {
		if p.Handle == handle {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SearchProducts runs a provider search, capped at the configured limit.
// Blank queries short-circuit to an empty result without touching the
// provider, and provider errors degrade to empty results.
func (uc *CatalogUC) SearchProducts(ctx context.Context, query string) []domain.Product {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.Product{}
	}
	res, err := uc.provider.SearchProducts(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("provider", uc.provider.Name()).Str("query", q).Msg("search failed")
		return []domain.Product{}
	}
	if len(res) > uc.searchLimit {
		res = res[:uc.searchLimit]
	}
	return res
}

// Related picks up to n products sharing the given product's category,
// excluding the product itself, topping up from the rest of the catalog.
func (uc *CatalogUC) Related(ctx context.Context, p domain.Product, n int) []domain.Product {
	all := uc.GetProducts(ctx, domain.ProductFilter{})
	out := make([]domain.Product, 0, n)
	for _, c := range all {
		if len(out) == n {
			return out
		}
		if c.ID != p.ID && c.Category == p.Category {
			out = append(out, c)
		}
	}
	for _, c := range all {
		if len(out) == n {
			break
		}
		if c.ID != p.ID && c.Category != p.Category {
			out = append(out, c)
		}
	}
	return out
}

// Collections returns the curated collection set. It is static content, not
// provider data.
func (uc *CatalogUC) Collections() []domain.Collection {
	out := make([]domain.Collection, len(uc.collections))
	copy(out, uc.collections)
	return out
}
