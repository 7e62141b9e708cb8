package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/monochrome/internal/adapters/catalog"
	"github.com/phenrril/monochrome/internal/domain"
)

type fakeProvider struct {
	products []domain.Product
	fetchErr error

	fetchCalls  atomic.Int32
	searchCalls atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchProducts(context.Context) ([]domain.Product, error) {
	f.fetchCalls.Add(1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProvider) SearchProducts(_ context.Context, q string) ([]domain.Product, error) {
	f.searchCalls.Add(1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Title: "Tee", Handle: "tee-1", Price: 45, Category: "tops"},
		{ID: "2", Title: "Hoodie", Handle: "hoodie-2", Price: 95, Category: "tops"},
		{ID: "3", Title: "Tote", Handle: "tote-3", Price: 60, Category: "bags"},
	}
}

func TestGetProductsFallsBackToSeed(t *testing.T) {
	p := &fakeProvider{fetchErr: errors.New("api down")}
	uc := NewCatalogUC(p, catalog.Fallback(), catalog.Collections(), 10)

	got := uc.GetProducts(context.Background(), domain.ProductFilter{})
	require.NotEmpty(t, got, "seed data must be served when the provider fails")
	assert.Equal(t, "Essential Oversized Tee", got[0].Title)
}

func TestGetProductsFilterAndSort(t *testing.T) {
	p := &fakeProvider{products: sampleProducts()}
	uc := NewCatalogUC(p, nil, nil, 10)
	ctx := context.Background()

	t.Run("category", func(t *testing.T) {
		got := uc.GetProducts(ctx, domain.ProductFilter{Category: "tops"})
		require.Len(t, got, 2)
	})

	t.Run("price bounds", func(t *testing.T) {
		min, max := 50.0, 100.0
		got := uc.GetProducts(ctx, domain.ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.Len(t, got, 2)
		for _, pr := range got {
			assert.GreaterOrEqual(t, pr.Price, 50.0)
			assert.LessOrEqual(t, pr.Price, 100.0)
		}
	})

	t.Run("price_asc", func(t *testing.T) {
		got := uc.GetProducts(ctx, domain.ProductFilter{Sort: "price_asc"})
		require.Len(t, got, 3)
		assert.Equal(t, 45.0, got[0].Price)
		assert.Equal(t, 95.0, got[2].Price)
	})

	t.Run("price_desc", func(t *testing.T) {
		got := uc.GetProducts(ctx, domain.ProductFilter{Sort: "price_desc"})
		require.Len(t, got, 3)
		assert.Equal(t, 95.0, got[0].Price)
	})
}

// sharedSliceProvider hands out its backing array directly, the way a caching
// provider would.
type sharedSliceProvider struct {
	products []domain.Product
}

func (s *sharedSliceProvider) Name() string { return "shared" }

func (s *sharedSliceProvider) FetchProducts(context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *sharedSliceProvider) SearchProducts(context.Context, string) ([]domain.Product, error) {
	return s.products, nil
}

func TestGetProductsDoesNotMutateProviderSlice(t *testing.T) {
	p := &sharedSliceProvider{products: sampleProducts()}
	uc := NewCatalogUC(p, nil, nil, 10)
	ctx := context.Background()

	got := uc.GetProducts(ctx, domain.ProductFilter{Category: "bags"})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Equal(t, sampleProducts(), p.products, "provider's slice must survive filtering")

	all := uc.GetProducts(ctx, domain.ProductFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, "3", all[2].ID)
}

func TestGetProductByHandle(t *testing.T) {
	p := &fakeProvider{products: sampleProducts()}
	uc := NewCatalogUC(p, nil, nil, 10)
	ctx := context.Background()

	got, err := uc.GetProductByHandle(ctx, "hoodie-2")
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	_, err = uc.GetProductByHandle(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetProductByHandle(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchBlankQuerySkipsProvider(t *testing.T) {
	p := &fakeProvider{products: sampleProducts()}
	uc := NewCatalogUC(p, nil, nil, 10)
	ctx := context.Background()

	assert.Empty(t, uc.SearchProducts(ctx, ""))
	assert.Empty(t, uc.SearchProducts(ctx, "   "))
	assert.Equal(t, int32(0), p.searchCalls.Load(), "blank queries must not hit the provider")
}

func TestSearchCapsResults(t *testing.T) {
	many := make([]domain.Product, 25)
	for i := range many {
		many[i] = domain.Product{ID: fmt.Sprint(i), Title: "Item"}
	}
	p := &fakeProvider{products: many}
	uc := NewCatalogUC(p, nil, nil, 10)

	got := uc.SearchProducts(context.Background(), "item")
	assert.Len(t, got, 10)
}

func TestSearchErrorDegradesToEmpty(t *testing.T) {
	p := &fakeProvider{fetchErr: errors.New("api down")}
	uc := NewCatalogUC(p, nil, nil, 10)

	got := uc.SearchProducts(context.Background(), "tee")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRelatedPrefersSameCategory(t *testing.T) {
	p := &fakeProvider{products: sampleProducts()}
	uc := NewCatalogUC(p, nil, nil, 10)

	got := uc.Related(context.Background(), sampleProducts()[0], 2)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID, "same-category product comes first")
	assert.Equal(t, "3", got[1].ID, "topped up from the rest of the catalog")
}

func TestCollectionsAreStatic(t *testing.T) {
	p := &fakeProvider{fetchErr: errors.New("api down")}
	uc := NewCatalogUC(p, nil, catalog.Collections(), 10)

	got := uc.Collections()
	require.Len(t, got, 3)
	assert.Equal(t, int32(0), p.fetchCalls.Load())
}
