package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/service"
)

// Supported storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Options selects and configures a ProfileStore.
type Options struct {
	Driver        string
	Path          string
	MongoURI      string
	MongoDatabase string
}

// Open creates the configured store and prepares its schema.
func Open(ctx context.Context, opts Options) (service.ProfileStore, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		store, err := NewSQLiteStorage(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return store, nil

	case DriverMongo:
		store, err := NewMongoStorage(ctx, opts.MongoURI, opts.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", common.ErrInvalidConfig, opts.Driver)
	}
}
