package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
)

// CartUC is the single source of truth for cart contents within one running
// session. Every mutation writes through to the KV store; construction
// rehydrates from it once. Storage failures degrade to in-memory operation,
// they never reach callers.
type CartUC struct {
	store         domain.KVStore
	flightTimeout time.Duration

	mu          sync.Mutex
	items       []domain.CartItem
	isOpen      bool
	flight      *domain.CartFlight
	flightTimer *time.Timer
}

func NewCartUC(ctx context.Context, store domain.KVStore, flightTimeout time.Duration) *CartUC {
	if flightTimeout <= 0 {
		flightTimeout = 3 * time.Second
	}
	uc := &CartUC{store: store, flightTimeout: flightTimeout}
	uc.rehydrate(ctx)
	return uc
}

func (uc *CartUC) rehydrate(ctx context.Context) {
	raw, ok, err := uc.store.Load(ctx, domain.KeyCart)
	if err != nil {
		log.Warn().Err(err).Msg("cart load failed, starting empty")
		return
	}
	if !ok || raw == "" {
		return
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("cart payload corrupt, starting empty")
		return
	}
	kept := items[:0]
	for _, it := range items {
		if it.Quantity > 0 && it.ID != "" {
			kept = append(kept, it)
		}
	}
	uc.items = kept
}

// AddItem commits the line immediately when no origin rect is given, merging
// into an existing (product, size) line. With an origin rect the commit is
// deferred behind a flight: the returned descriptor identifies it and the
// line lands only on CompleteFlight or on the safety timeout. A second flight
// replaces a pending one; last request wins.
func (uc *CartUC) AddItem(ctx context.Context, product domain.Product, size string, origin *domain.Rect) *domain.CartFlight {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if origin == nil {
		uc.commitLocked(ctx, product, size)
		uc.isOpen = true
		return nil
	}

	if uc.flightTimer != nil {
		uc.flightTimer.Stop()
	}
	f := &domain.CartFlight{
		ID:      uuid.New(),
		Image:   product.Image,
		Origin:  *origin,
		Product: product,
		Size:    size,
	}
	uc.flight = f
	id := f.ID
	uc.flightTimer = time.AfterFunc(uc.flightTimeout, func() {
		if uc.CompleteFlight(context.Background(), id) {
			log.Warn().Str("flight_id", id.String()).Msg("flight completion never fired, commit forced")
		}
	})

	out := *f
	return &out
}

// CompleteFlight commits the pending add for the given flight id and opens
// the drawer. A stale or unknown id is a no-op and reports false.
func (uc *CartUC) CompleteFlight(ctx context.Context, id uuid.UUID) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.flight == nil || uc.flight.ID != id {
		return false
	}
	f := uc.flight
	uc.flight = nil
	if uc.flightTimer != nil {
		uc.flightTimer.Stop()
		uc.flightTimer = nil
	}
	uc.commitLocked(ctx, f.Product, f.Size)
	uc.isOpen = true
	return true
}

func (uc *CartUC) commitLocked(ctx context.Context, product domain.Product, size string) {
	id := domain.CartItemID(product.ID, size)
	for i := range uc.items {
		if uc.items[i].ID == id {
			uc.items[i].Quantity++
			uc.persistLocked(ctx)
			return
		}
	}
	uc.items = append(uc.items, domain.CartItem{
		ID:        id,
		ProductID: product.ID,
		Product:   product,
		Quantity:  1,
		Size:      size,
	})
	uc.persistLocked(ctx)
}

// RemoveItem deletes the line unconditionally; absent ids are ignored.
func (uc *CartUC) RemoveItem(ctx context.Context, cartItemID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	kept := uc.items[:0]
	removed := false
	for _, it := range uc.items {
		if it.ID == cartItemID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	uc.items = kept
	if removed {
		uc.persistLocked(ctx)
	}
}

// UpdateQuantity sets the quantity exactly; zero or negative deletes the line.
func (uc *CartUC) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) {
	if quantity <= 0 {
		uc.RemoveItem(ctx, cartItemID)
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.items {
		if uc.items[i].ID == cartItemID {
			uc.items[i].Quantity = quantity
			uc.persistLocked(ctx)
			return
		}
	}
}

// Clear empties the cart, persisting the empty state.
func (uc *CartUC) Clear(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if len(uc.items) == 0 {
		return
	}
	uc.items = uc.items[:0]
	uc.persistLocked(ctx)
}

func (uc *CartUC) Items() []domain.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartItem, len(uc.items))
	copy(out, uc.items)
	return out
}

// TotalItems is the sum of quantities across lines, recomputed on every read.
func (uc *CartUC) TotalItems() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	total := 0
	for _, it := range uc.items {
		total += it.Quantity
	}
	return total
}

// Subtotal is Σ(unit price × quantity), recomputed on every read.
func (uc *CartUC) Subtotal() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	total := 0.0
	for _, it := range uc.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

func (uc *CartUC) IsOpen() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.isOpen
}

func (uc *CartUC) SetIsOpen(open bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.isOpen = open
}

// Flight returns the pending flight descriptor, nil when idle.
func (uc *CartUC) Flight() *domain.CartFlight {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.flight == nil {
		return nil
	}
	out := *uc.flight
	return &out
}

func (uc *CartUC) persistLocked(ctx context.Context) {
	b, err := json.Marshal(uc.items)
	if err != nil {
		log.Error().Err(err).Msg("cart marshal")
		return
	}
	if err := uc.store.Save(ctx, domain.KeyCart, string(b)); err != nil {
		log.Warn().Err(err).Msg("cart save failed, continuing in memory")
	}
}
