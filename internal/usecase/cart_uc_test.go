package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/monochrome/internal/adapters/storage/memory"
	"github.com/phenrril/monochrome/internal/domain"
)

func tee() domain.Product {
	return domain.Product{ID: "p1", Title: "Essential Oversized Tee", Handle: "essential-oversized-tee-p1", Price: 45, Currency: "USD"}
}

func hoodie() domain.Product {
	return domain.Product{ID: "p2", Title: "Boxy Heavyweight Hoodie", Handle: "boxy-heavyweight-hoodie-p2", Price: 95, Currency: "USD"}
}

func newCart(t *testing.T) (*CartUC, *memory.Store) {
	t.Helper()
	st := memory.New()
	return NewCartUC(context.Background(), st, time.Minute), st
}

func TestCartAddMergesByProductAndSize(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	cart.AddItem(ctx, tee(), "M", nil)
	cart.AddItem(ctx, tee(), "M", nil)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1-M", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)

	cart.AddItem(ctx, tee(), "L", nil)
	items = cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1-L", items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCartAddWithoutSizeUsesProductID(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	cart.AddItem(ctx, tee(), "", nil)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestCartAddOpensDrawer(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	assert.False(t, cart.IsOpen())
	cart.AddItem(ctx, tee(), "M", nil)
	assert.True(t, cart.IsOpen())
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	cart.AddItem(ctx, tee(), "M", nil)

	t.Run("sets exact quantity", func(t *testing.T) {
		cart.UpdateQuantity(ctx, "p1-M", 5)
		assert.Equal(t, 5, cart.Items()[0].Quantity)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		cart.UpdateQuantity(ctx, "ghost", 3)
		require.Len(t, cart.Items(), 1)
		assert.Equal(t, 5, cart.Items()[0].Quantity)
	})

	t.Run("zero deletes the line", func(t *testing.T) {
		cart.UpdateQuantity(ctx, "p1-M", 0)
		assert.Empty(t, cart.Items())
	})
}

func TestCartRemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)
	cart.AddItem(ctx, tee(), "M", nil)

	cart.RemoveItem(ctx, "does-not-exist")
	require.Len(t, cart.Items(), 1)

	cart.RemoveItem(ctx, "p1-M")
	assert.Empty(t, cart.Items())
}

func TestCartTotals(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	cart.AddItem(ctx, tee(), "M", nil)
	cart.AddItem(ctx, tee(), "M", nil)
	cart.AddItem(ctx, hoodie(), "", nil)

	assert.Equal(t, 3, cart.TotalItems())
	assert.InDelta(t, 45*2+95, cart.Subtotal(), 1e-9)

	cart.UpdateQuantity(ctx, "p2", 3)
	assert.Equal(t, 5, cart.TotalItems())
	assert.InDelta(t, 45*2+95*3, cart.Subtotal(), 1e-9)
}

func TestCartPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	cart, st := newCart(t)

	cart.AddItem(ctx, tee(), "M", nil)
	cart.AddItem(ctx, hoodie(), "", nil)

	reborn := NewCartUC(ctx, st, time.Minute)
	items := reborn.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1-M", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)
	assert.InDelta(t, 140, reborn.Subtotal(), 1e-9)
	assert.False(t, reborn.IsOpen())
}

func TestCartCorruptPayloadStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Save(ctx, domain.KeyCart, "{not json"))

	cart := NewCartUC(ctx, st, time.Minute)
	assert.Empty(t, cart.Items())

	cart.AddItem(ctx, tee(), "M", nil)
	require.Len(t, cart.Items(), 1)
}

type failStore struct{}

func (failStore) Load(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}
func (failStore) Save(context.Context, string, string) error {
	return errors.New("backend down")
}

func TestCartSurvivesStorageFailure(t *testing.T) {
	ctx := context.Background()
	cart := NewCartUC(ctx, failStore{}, time.Minute)

	cart.AddItem(ctx, tee(), "M", nil)
	cart.AddItem(ctx, tee(), "M", nil)

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 2, cart.Items()[0].Quantity)
}

func TestCartFlightDefersCommit(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	origin := &domain.Rect{Top: 10, Left: 20, Width: 300, Height: 400}
	flight := cart.AddItem(ctx, tee(), "M", origin)
	require.NotNil(t, flight)
	assert.Equal(t, *origin, flight.Origin)

	assert.Empty(t, cart.Items(), "commit must wait for flight completion")
	assert.False(t, cart.IsOpen())
	require.NotNil(t, cart.Flight())
	assert.Equal(t, flight.ID, cart.Flight().ID)

	require.True(t, cart.CompleteFlight(ctx, flight.ID))
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1-M", items[0].ID)
	assert.True(t, cart.IsOpen())
	assert.Nil(t, cart.Flight())
}

func TestCartFlightStaleIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	flight := cart.AddItem(ctx, tee(), "M", &domain.Rect{})
	require.NotNil(t, flight)

	assert.False(t, cart.CompleteFlight(ctx, uuid.New()))
	assert.Empty(t, cart.Items())

	require.True(t, cart.CompleteFlight(ctx, flight.ID))
	assert.False(t, cart.CompleteFlight(ctx, flight.ID), "second completion must be a no-op")
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartFlightReplacementLastWins(t *testing.T) {
	ctx := context.Background()
	cart, _ := newCart(t)

	first := cart.AddItem(ctx, tee(), "M", &domain.Rect{})
	second := cart.AddItem(ctx, hoodie(), "", &domain.Rect{})
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.False(t, cart.CompleteFlight(ctx, first.ID), "replaced flight id is stale")
	require.True(t, cart.CompleteFlight(ctx, second.ID))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestCartFlightTimeoutForcesCommit(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	cart := NewCartUC(ctx, st, 20*time.Millisecond)

	flight := cart.AddItem(ctx, tee(), "M", &domain.Rect{})
	require.NotNil(t, flight)
	assert.Empty(t, cart.Items())

	require.Eventually(t, func() bool {
		return len(cart.Items()) == 1
	}, time.Second, 5*time.Millisecond, "timeout must commit the add")
	assert.True(t, cart.IsOpen())
	assert.Nil(t, cart.Flight())

	assert.False(t, cart.CompleteFlight(ctx, flight.ID), "late completion after forced commit")
	assert.Equal(t, 1, cart.Items()[0].Quantity, "forced commit must not double")
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	cart, st := newCart(t)
	cart.AddItem(ctx, tee(), "M", nil)

	cart.Clear(ctx)
	assert.Empty(t, cart.Items())

	raw, ok, err := st.Load(ctx, domain.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, "[]", raw)
}
