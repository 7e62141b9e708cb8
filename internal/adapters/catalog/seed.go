package catalog

import "github.com/phenrril/monochrome/internal/domain"

// Fallback returns the static seed list served when every provider path
// fails. Returned fresh on each call so callers can mutate their copy.
func Fallback() []domain.Product {
	return []domain.Product{
		{
			ID:       "f1",
			Title:    "Essential Oversized Tee",
			Handle:   "essential-oversized-tee",
			Price:    45,
			Currency: "USD",
			Image:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1503341455253-b2e723bb3dbb?auto=format&fit=crop&q=80&w=800",
			},
			Category:    "Apparel",
			Description: "A relaxed-fit essential tee crafted for everyday comfort.",
		},
		{
			ID:       "f2",
			Title:    "Boxy Heavyweight Hoodie",
			Handle:   "boxy-heavyweight-hoodie",
			Price:    95,
			Currency: "USD",
			Image:    "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
			},
			Category:    "Apparel",
			Description: "A 450gsm fleece hoodie with a cropped, boxy silhouette.",
		},
		{
			ID:       "f3",
			Title:    "Utility Tote Bag",
			Handle:   "utility-tote-bag",
			Price:    60,
			Currency: "USD",
			Image:    "https://images.unsplash.com/photo-1544816155-12df9643f363?auto=format&fit=crop&q=80&w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1544816155-12df9643f363?auto=format&fit=crop&q=80&w=800",
			},
			Category:    "Accessories",
			Description: "Waxed canvas tote with interior organizer pockets.",
		},
	}
}

// Collections is the hand-authored, purely presentational grouping set.
// CategoryKey maps a collection onto the provider's category vocabulary so
// the shop page can request a subset; empty means visual only.
func Collections() []domain.Collection {
	return []domain.Collection{
		{
			ID:          "c1",
			Title:       "The Monochrome Edit",
			Handle:      "monochrome-edit",
			Image:       "https://images.unsplash.com/photo-1483985988355-763728e1935b?auto=format&fit=crop&q=80&w=800",
			Description: "Black, white, and everything in between.",
		},
		{
			ID:          "c2",
			Title:       "Winter Essentials",
			Handle:      "winter-essentials",
			Image:       "https://images.unsplash.com/photo-1487222477894-8943e31ef7b2?auto=format&fit=crop&q=80&w=800",
			Description: "Function meets fashion for the cold season.",
			CategoryKey: "women's clothing",
		},
		{
			ID:          "c3",
			Title:       "Urban Utility",
			Handle:      "urban-utility",
			Image:       "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?auto=format&fit=crop&q=80&w=800",
			Description: "Practical gear for city living.",
			CategoryKey: "men's clothing",
		},
	}
}
