// Package catalog holds what every provider integration shares: the handle
// synthesis rules, review placeholders and the static seed data the usecase
// layer degrades to when a provider is unreachable.
package catalog

import (
	"strings"
	"time"

	"github.com/phenrril/monochrome/internal/domain"
)

// Handle builds the URL-safe slug for a product: slugified title plus the
// provider id, so two providers' "Classic Hoodie" never collide within a fetch.
func Handle(title, id string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return id
	}
	return slug + "-" + id
}

// EnsureUniqueHandles enforces the per-fetch uniqueness invariant, resolving
// collisions by appending the numeric id.
func EnsureUniqueHandles(products []domain.Product) []domain.Product {
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		h := products[i].Handle
		if _, ok := seen[h]; ok {
			h = h + "-" + products[i].ID
			products[i].Handle = h
		}
		seen[h] = struct{}{}
	}
	return products
}

// SynthReview fabricates the single placeholder review attached when a
// provider ships products without any.
func SynthReview(productID string, rating int) domain.Review {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return domain.Review{
		ID:       "r-" + productID,
		Author:   "Verified Customer",
		Rating:   rating,
		Date:     time.Now().UTC().Format(time.RFC3339),
		Comment:  "Excellent quality. Fits perfectly.",
		Verified: true,
	}
}
