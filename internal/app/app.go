// Package app assembles the storefront: it picks the catalog provider,
// storage backend, and order notifier from config and wires the usecases.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/monochrome/internal/adapters/catalog"
	"github.com/phenrril/monochrome/internal/adapters/catalog/dummyjson"
	"github.com/phenrril/monochrome/internal/adapters/catalog/fakestore"
	"github.com/phenrril/monochrome/internal/adapters/catalog/platzi"
	"github.com/phenrril/monochrome/internal/adapters/httpserver"
	"github.com/phenrril/monochrome/internal/adapters/notify"
	"github.com/phenrril/monochrome/internal/adapters/notify/rabbitmq"
	"github.com/phenrril/monochrome/internal/adapters/storage/localdisk"
	"github.com/phenrril/monochrome/internal/adapters/storage/memory"
	pgstore "github.com/phenrril/monochrome/internal/adapters/storage/postgres"
	"github.com/phenrril/monochrome/internal/adapters/storage/redisstore"
	"github.com/phenrril/monochrome/internal/config"
	"github.com/phenrril/monochrome/internal/domain"
	"github.com/phenrril/monochrome/internal/usecase"
)

type App struct {
	Cfg      *config.Config
	Catalog  *usecase.CatalogUC
	Cart     *usecase.CartUC
	History  *usecase.HistoryUC
	Checkout *usecase.CheckoutUC
	Search   *usecase.SearchSession
	Store    domain.KVStore

	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	provider, err := BuildProvider(cfg)
	if err != nil {
		return nil, err
	}
	a.Store = a.buildStore(cfg)
	notifier := a.buildNotifier(cfg)

	a.Catalog = usecase.NewCatalogUC(provider, catalog.Fallback(), catalog.Collections(), cfg.Catalog.SearchLimit)
	a.Cart = usecase.NewCartUC(ctx, a.Store, time.Duration(cfg.Cart.FlightTimeoutMS)*time.Millisecond)
	a.History = usecase.NewHistoryUC(a.Store, a.Catalog, 10)
	a.Checkout = &usecase.CheckoutUC{Cart: a.Cart, Notifier: notifier}
	a.Search = usecase.NewSearchSession(a.Catalog, time.Duration(cfg.Search.DebounceMS)*time.Millisecond)
	a.closers = append(a.closers, a.Search.Close)

	return a, nil
}

// BuildProvider constructs the configured catalog provider over an
// instrumented HTTP client. It is shared with the export CLI.
func BuildProvider(cfg *config.Config) (domain.CatalogProvider, error) {
	hc := &http.Client{
		Timeout:   time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	switch cfg.Catalog.Provider {
	case "dummyjson":
		return dummyjson.New(cfg.Catalog.DummyJSON.BaseURL, cfg.Catalog.DummyJSON.Limit, hc), nil
	case "fakestore":
		return fakestore.New(cfg.Catalog.FakeStore.BaseURL, hc), nil
	case "platzi":
		return platzi.New(cfg.Catalog.Platzi.BaseURL, cfg.Catalog.Platzi.CategoryIDs, hc), nil
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", cfg.Catalog.Provider)
	}
}

// buildStore never fails the boot: an unreachable backend degrades to the
// in-memory store so the cart keeps working for the session.
func (a *App) buildStore(cfg *config.Config) domain.KVStore {
	switch cfg.Storage.Backend {
	case "memory":
		return memory.New()
	case "localdisk":
		st, err := localdisk.New(cfg.Storage.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.Storage.Dir).Msg("localdisk storage unavailable, using memory")
			return memory.New()
		}
		return st
	case "redis":
		st, err := redisstore.New(cfg.Storage.RedisAddr)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Storage.RedisAddr).Msg("redis storage unavailable, using memory")
			return memory.New()
		}
		a.closers = append(a.closers, func() { _ = st.Close() })
		return st
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Storage.PostgresDSN), &gorm.Config{})
		if err == nil {
			var st domain.KVStore
			st, err = pgstore.New(db)
			if err == nil {
				return st
			}
		}
		log.Warn().Err(err).Msg("postgres storage unavailable, using memory")
		return memory.New()
	default:
		log.Warn().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend, using memory")
		return memory.New()
	}
}

func (a *App) buildNotifier(cfg *config.Config) domain.OrderNotifier {
	if cfg.AMQP.URL == "" {
		return notify.Noop{}
	}
	pub, err := rabbitmq.New(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		log.Warn().Err(err).Msg("amqp unavailable, order notifications disabled")
		return notify.Noop{}
	}
	a.closers = append(a.closers, pub.Close)
	return pub
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Cart, a.History, a.Checkout, a.Store,
		time.Duration(a.Cfg.Cart.FlightDurationMS)*time.Millisecond)
}

func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}
