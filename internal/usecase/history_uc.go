package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
)

// HistoryUC keeps the recently-viewed product list: most recent first,
// deduplicated, capped. It persists handles only and resolves them against
// the catalog on read.
type HistoryUC struct {
	store   domain.KVStore
	catalog *CatalogUC
	limit   int

	mu sync.Mutex
}

func NewHistoryUC(store domain.KVStore, catalog *CatalogUC, limit int) *HistoryUC {
	if limit <= 0 {
		limit = 10
	}
	return &HistoryUC{store: store, catalog: catalog, limit: limit}
}

// Touch records a product view, moving the handle to the front of the list.
func (uc *HistoryUC) Touch(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	handles := uc.loadLocked(ctx)
	next := make([]string, 0, len(handles)+1)
	next = append(next, handle)
	for _, h := range handles {
		if h != handle {
			next = append(next, h)
		}
	}
	if len(next) > uc.limit {
		next = next[:uc.limit]
	}

	b, err := json.Marshal(next)
	if err != nil {
		log.Error().Err(err).Msg("history marshal")
		return
	}
	if err := uc.store.Save(ctx, domain.KeyRecentlyViewed, string(b)); err != nil {
		log.Warn().Err(err).Msg("history save failed")
	}
}

// Handles returns the stored handles, most recent first.
func (uc *HistoryUC) Handles(ctx context.Context) []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.loadLocked(ctx)
}

// Products resolves the stored handles against the catalog, skipping the
// excluded handle and anything no longer listed, up to n entries.
func (uc *HistoryUC) Products(ctx context.Context, exclude string, n int) []domain.Product {
	handles := uc.Handles(ctx)
	if len(handles) == 0 {
		return []domain.Product{}
	}

	byHandle := make(map[string]domain.Product)
	for _, p := range uc.catalog.GetProducts(ctx, domain.ProductFilter{}) {
		byHandle[p.Handle] = p
	}

	out := make([]domain.Product, 0, n)
	for _, h := range handles {
		if len(out) == n {
			break
		}
		if h == exclude {
			continue
		}
		if p, ok := byHandle[h]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (uc *HistoryUC) loadLocked(ctx context.Context) []string {
	raw, ok, err := uc.store.Load(ctx, domain.KeyRecentlyViewed)
	if err != nil {
		log.Warn().Err(err).Msg("history load failed")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var handles []string
	if err := json.Unmarshal([]byte(raw), &handles); err != nil {
		log.Warn().Err(err).Msg("history payload corrupt, resetting")
		return nil
	}
	return handles
}
