package domain

import "context"

// KVStore mirrors browser local storage: string keys, string payloads, a
// missing key is not an error. The cart and history state write through it so
// their logic stays independent of the backing medium.
type KVStore interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
}

const (
	KeyCart            = "cart"
	KeyRecentlyViewed  = "recently-viewed"
	KeyNewsletterShown = "newsletter-shown"
)
