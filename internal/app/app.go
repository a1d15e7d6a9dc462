// Package app assembles the store backend, repositories and services from
// configuration. Both binaries start here.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/core/service"
	"github.com/driveway/rental-system/internal/infrastructure/db/kv"
	"github.com/driveway/rental-system/internal/infrastructure/db/memory"
	mongostore "github.com/driveway/rental-system/internal/infrastructure/db/mongo"
	pgstore "github.com/driveway/rental-system/internal/infrastructure/db/postgres"
	redisstore "github.com/driveway/rental-system/internal/infrastructure/db/redis"
	"github.com/driveway/rental-system/internal/pkg/config"
)

type Options struct {
	// PersistSession keeps the signed-in user in the store between runs. The
	// HTTP API leaves it off and relies on bearer tokens instead.
	PersistSession bool
}

// App holds the wired services.
type App struct {
	Store     ports.KeyValueStore
	StoreName string

	Identity  *service.IdentityService
	Inventory *service.InventoryService
	Bookings  *service.BookingService
	Dashboard *service.DashboardService

	closers []func()
}

// New opens the configured backend and wires everything on top of it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*App, error) {
	a := &App{StoreName: cfg.Store.Backend}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	hash := service.HashPassword(cfg.BcryptCost)
	fixture, err := kv.LoadFixture(cfg.Store.SeedFile, hash)
	if err != nil {
		a.Close()
		return nil, err
	}

	adapter := kv.NewAdapter(store, cfg.Store.Namespace, fixture)
	cars := kv.NewCarRepository(adapter)
	bookings := kv.NewBookingRepository(adapter)

	var sessions ports.SessionRepository
	if opts.PersistSession {
		sessions = kv.NewSessionRepository(adapter)
	}

	a.Identity = service.NewIdentityService(kv.NewUserRepository(adapter), sessions, service.IdentityConfig{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	}, log)
	a.Inventory = service.NewInventoryService(cars, log)
	a.Bookings = service.NewBookingService(bookings, cars, log)
	a.Dashboard = service.NewDashboardService(cars, bookings, log)

	log.Info().
		Str("backend", cfg.Store.Backend).
		Str("namespace", cfg.Store.Namespace).
		Msg("store ready")
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return redisstore.NewStore(client), nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		return mongostore.NewStore(db), nil

	case config.BackendPostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		store := pgstore.NewStore(pool)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// Close releases backend connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
