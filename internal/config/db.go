package config

import (
	"fmt"
	"log"
	"time"

	"invoice-bookkeeping-backend/internal/storage"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the SQL database for the sqlite and postgres drivers. GORM's
// warnings and slow queries are written to zl.
func InitDB(cfg *Config, zl zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q has no SQL database", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(zl.With().Str("component", "gorm").Logger(), "", 0), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.StorageDriver, err)
	}
	return db, nil
}

// InitStorage builds the key-value backend selected by STORAGE_DRIVER.
func InitStorage(cfg *Config, zl zerolog.Logger) (storage.KeyValue, error) {
	switch cfg.StorageDriver {
	case DriverMemory:
		return storage.NewMemoryStore(), nil
	case DriverRedis:
		return storage.NewRedisStore(cfg.RedisURL, cfg.RedisPrefix)
	case DriverSQLite, DriverPostgres:
		db, err := InitDB(cfg, zl)
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
