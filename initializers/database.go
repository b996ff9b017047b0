// Package initializers opens the store and image host selected by config.
package initializers

import (
	"context"
	"fmt"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/config"
	"github.com/JuzzThyne/ERI-backend/obs"
	"github.com/JuzzThyne/ERI-backend/storage/gormstore"
	"github.com/JuzzThyne/ERI-backend/storage/memory"
	"github.com/JuzzThyne/ERI-backend/storage/mongostore"
)

// Store is one backend serving both items and admins.
type Store interface {
	catalog.Store
	admin.Store
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ConnectToDB opens the backend named by cfg.StoreDriver.
func ConnectToDB(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		st = memory.New()
	case config.DriverMongo:
		var s *mongostore.Store
		if s, err = mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase); err == nil {
			st = s
		}
	case config.DriverPostgres:
		var s *gormstore.Store
		if s, err = gormstore.OpenPostgres(cfg.DatabaseURL); err == nil {
			st = s
		}
	case config.DriverMySQL:
		var s *gormstore.Store
		if s, err = gormstore.OpenMySQL(cfg.MySQL.DSN()); err == nil {
			st = s
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		obs.Logger.Error("store_connect_failed", "driver", cfg.StoreDriver, "error", err)
		return nil, err
	}
	obs.Logger.Info("store_connected", "driver", cfg.StoreDriver)
	return st, nil
}
