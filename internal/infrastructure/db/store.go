// Package db opens the repository backend selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cadmin/cadmin-api/internal/core/ports"
	"github.com/cadmin/cadmin-api/internal/infrastructure/db/mongo"
	"github.com/cadmin/cadmin-api/internal/infrastructure/db/postgres"
	"github.com/cadmin/cadmin-api/internal/pkg/config"
)

// Pinger reports whether the backend is reachable.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users     ports.UserRepository
	Resources ports.ResourceRepository
	Pinger    Pinger

	close func(ctx context.Context) error
}

// Close releases the backend's connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured driver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		gdb, err := postgres.Connect(ctx, postgres.Config{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
		}, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, gdb); err != nil {
			_ = postgres.Close(gdb)
			return nil, err
		}
		return &Store{
			Users:     postgres.NewUserRepository(gdb),
			Resources: postgres.NewResourceRepository(gdb),
			Pinger:    postgres.NewPinger(gdb),
			close:     func(context.Context) error { return postgres.Close(gdb) },
		}, nil

	case config.DriverMongo:
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Store{
			Users:     mongo.NewUserRepository(mdb),
			Resources: mongo.NewResourceRepository(mdb),
			Pinger:    mongo.NewPinger(client),
			close:     client.Disconnect,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
