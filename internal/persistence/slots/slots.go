// Package slots selects the durable slot backend named by the configuration.
package slots

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tpv/internal/config"
	"github.com/MrJamesThe3rd/tpv/internal/database"
	"github.com/MrJamesThe3rd/tpv/internal/persistence"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/file"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/memory"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/postgres"
	redisslot "github.com/MrJamesThe3rd/tpv/internal/persistence/slots/redis"
	s3slot "github.com/MrJamesThe3rd/tpv/internal/persistence/slots/s3"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/sqlite"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Slot is a persistence.Slot that owns a connection.
type Slot interface {
	persistence.Slot
	io.Closer
}

func Open(ctx context.Context, cfg *config.Config) (Slot, error) {
	switch cfg.Storage.Driver {
	case DriverFile, "":
		return wrap(file.New(cfg.Storage.FileDir))
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		db, err := database.NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}

		slot, err := sqlite.New(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return slot, nil
	case DriverPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		slot, err := postgres.New(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return slot, nil
	case DriverRedis:
		return wrap(redisslot.New(ctx, redisslot.Config{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	case DriverS3:
		return wrap(s3slot.New(ctx, s3slot.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		}))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// wrap keeps a failed constructor from returning a typed nil inside the interface.
func wrap(slot Slot, err error) (Slot, error) {
	if err != nil {
		return nil, err
	}

	return slot, nil
}
