package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/monochrome/internal/adapters/storage/memory"
	"github.com/phenrril/monochrome/internal/domain"
)

func TestHistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	uc := NewHistoryUC(st, nil, 10)

	uc.Touch(ctx, "tee-1")
	uc.Touch(ctx, "hoodie-2")
	uc.Touch(ctx, "tote-3")

	assert.Equal(t, []string{"tote-3", "hoodie-2", "tee-1"}, uc.Handles(ctx))
}

func TestHistoryDeduplicates(t *testing.T) {
	ctx := context.Background()
	uc := NewHistoryUC(memory.New(), nil, 10)

	uc.Touch(ctx, "tee-1")
	uc.Touch(ctx, "hoodie-2")
	uc.Touch(ctx, "tee-1")

	assert.Equal(t, []string{"tee-1", "hoodie-2"}, uc.Handles(ctx))
}

func TestHistoryCap(t *testing.T) {
	ctx := context.Background()
	uc := NewHistoryUC(memory.New(), nil, 10)

	for i := 0; i < 15; i++ {
		uc.Touch(ctx, fmt.Sprintf("product-%d", i))
	}

	handles := uc.Handles(ctx)
	require.Len(t, handles, 10)
	assert.Equal(t, "product-14", handles[0])
	assert.Equal(t, "product-5", handles[9])
}

func TestHistoryCorruptPayloadResets(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Save(ctx, domain.KeyRecentlyViewed, "not json"))

	uc := NewHistoryUC(st, nil, 10)
	assert.Empty(t, uc.Handles(ctx))

	uc.Touch(ctx, "tee-1")
	assert.Equal(t, []string{"tee-1"}, uc.Handles(ctx))
}

func TestHistoryProductsResolvesAndExcludes(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	catalog := NewCatalogUC(&fakeProvider{products: sampleProducts()}, nil, nil, 10)
	uc := NewHistoryUC(st, catalog, 10)

	uc.Touch(ctx, "tee-1")
	uc.Touch(ctx, "gone-9")
	uc.Touch(ctx, "hoodie-2")
	uc.Touch(ctx, "tote-3")

	got := uc.Products(ctx, "tote-3", 4)
	require.Len(t, got, 2, "excluded and delisted handles are skipped")
	assert.Equal(t, "hoodie-2", got[0].Handle)
	assert.Equal(t, "tee-1", got[1].Handle)
}
