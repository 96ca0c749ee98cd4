package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"fakestore/storefront/internal/cart"
	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/ledger"
	"fakestore/storefront/internal/listing"
	"fakestore/storefront/internal/server"
	"fakestore/storefront/internal/store"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Catalog     catalog.Source
	Brands      *store.BrandStore
	Categories  *store.CategoryStore
	Initializer *store.Initializer
	Listing     *listing.Engine
	Ledger      *ledger.Ledger
	Cart        *cart.Store
	Server      *server.Server

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	src := catalog.NewFakeStoreClient(cfg.Catalog)
	container.Catalog = src

	brands := store.NewBrandStore()
	categories := store.NewCategoryStore()
	container.Brands = brands
	container.Categories = categories
	container.Initializer = store.NewInitializer(src, brands, categories)

	container.Listing = listing.NewEngine(src)
	container.Ledger = ledger.New(src, cfg.Ledger.Capacity)

	// Cart snapshots go to Redis when it answers, otherwise to process
	// memory. Cart mutation must never depend on Redis being up.
	persister := cartPersister(cfg.Redis, container)
	container.Cart = cart.NewStore(context.Background(), persister)

	container.Server = server.New(
		cfg.Server,
		brands,
		categories,
		container.Listing,
		container.Ledger,
		container.Cart,
	)

	return container, nil
}

func cartPersister(cfg config.RedisConfig, container *Container) cart.Persister {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warnf("⚠️ Redis unavailable, cart snapshots stay in memory: %v", err)
		rdb.Close()
		return cart.NewMemoryPersister()
	}

	log.Info("✅ Connected to Redis successfully")
	container.redis = rdb
	return cart.NewRedisPersister(rdb, cfg.KeyPrefix)
}

// Run serves HTTP until the context is cancelled
func (c *Container) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: c.Server.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Serving storefront API on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
