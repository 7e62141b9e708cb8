package domain

import "context"

// Product is the canonical catalog entry every provider is normalized into.
// It is rebuilt on every fetch and never mutated.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Handle      string   `json:"handle"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}

type Review struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
	Verified bool   `json:"verified"`
}

// Collection is a curated, hand-authored grouping. CategoryKey is the
// provider-vocabulary category used to request a product subset; it is empty
// for purely visual collections.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Image       string `json:"image"`
	Description string `json:"description"`
	CategoryKey string `json:"category_key,omitempty"`
}

type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string // newest | price_asc | price_desc
}

// CatalogProvider is the seam between the storefront and whichever external
// demo API backs it. Implementations normalize provider-native records into
// the canonical Product shape; failures are recovered one layer up.
type CatalogProvider interface {
	Name() string
	FetchProducts(ctx context.Context) ([]Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}
