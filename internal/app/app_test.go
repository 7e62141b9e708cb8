package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/monochrome/internal/config"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Backend = "memory"
	return cfg
}

func TestNewWiresEverything(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Catalog)
	assert.NotNil(t, a.Cart)
	assert.NotNil(t, a.History)
	assert.NotNil(t, a.Checkout)
	assert.NotNil(t, a.Search, "search session must be constructed with the app")
	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.HTTPHandler())
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Catalog.Provider = "bogus"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestCloseStopsSearchSession(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Search.DebounceMS = 20

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	a.Search.Submit(context.Background(), "tee")
	a.Close()

	time.Sleep(60 * time.Millisecond)
	select {
	case res := <-a.Search.Results():
		t.Fatalf("unexpected result after close: %q", res.Query)
	default:
	}
}
