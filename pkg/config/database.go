package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	SQL   *gorm.DB
	Redis *redis.Client // nil unless the redis throttle backend is selected
}

// InitDB initializes and returns the database connections
func InitDB(cfg *Config) (*DB, error) {
	var dsn string
	switch cfg.DBDriver {
	case "sqlite":
		dsn = cfg.SQLitePath
	default:
		dsn = cfg.PostgresUrl
	}

	sqlDB, err := OpenDatabase(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	db := &DB{SQL: sqlDB}
	if cfg.ThrottleBackend == "redis" {
		client, err := initRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		db.Redis = client
	}
	return db, nil
}

// OpenDatabase opens a gorm connection for the given driver and verifies it
// with a ping. Duplicate-key errors are translated to gorm.ErrDuplicatedKey.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	slog.Info("Successfully connected to database", "driver", driver)
	return db, nil
}

// newGormLogger reports slow queries and failed statements. A lookup that
// finds nothing is an expected outcome here, not an error worth a log line.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func initRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	slog.Info("Successfully connected to Redis", "addr", addr)
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			slog.Error("Error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
		} else {
			slog.Info("Database connection closed.")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			slog.Error("Error closing Redis connection", "error", err)
		} else {
			slog.Info("Redis connection closed.")
		}
	}
}
