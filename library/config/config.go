// Package config supplies the environment-driven configuration for the demo
// binary and the factories that open the configured store engine.
package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	bolt "go.etcd.io/bbolt"
	_ "modernc.org/sqlite" // sqlite driver
)

// Engine names accepted in LIBRARY_STORE_ENGINE.
const (
	EngineBolt   = "bolt"
	EngineSQLite = "sqlite"
)

const (
	envStoreEngine = "LIBRARY_STORE_ENGINE"
	envStorePath   = "LIBRARY_STORE_PATH"
	envLogLevel    = "LIBRARY_LOG_LEVEL"

	defaultStorePath = "library-data"
)

// ErrUnknownEngine is returned for a LIBRARY_STORE_ENGINE value that names
// no supported engine.
var ErrUnknownEngine = errors.New("unknown store engine")

// ErrUnknownLogLevel is returned for a LIBRARY_LOG_LEVEL value that names
// no slog level.
var ErrUnknownLogLevel = errors.New("unknown log level")

// Config holds the demo binary configuration read from the environment.
type Config struct {
	StoreEngine string
	StorePath   string
	LogLevel    slog.Level
}

// Load reads the configuration from the environment, falling back to the
// bolt engine, a local data directory, and the info log level.
func Load() (Config, error) {
	cfg := Config{
		StoreEngine: EngineBolt,
		StorePath:   defaultStorePath,
		LogLevel:    slog.LevelInfo,
	}

	if engine, ok := os.LookupEnv(envStoreEngine); ok {
		switch engine {
		case EngineBolt, EngineSQLite:
			cfg.StoreEngine = engine
		default:
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
		}
	}

	if path, ok := os.LookupEnv(envStorePath); ok {
		cfg.StorePath = path
	}

	if level, ok := os.LookupEnv(envLogLevel); ok {
		parsed, err := parseLogLevel(level)
		if err != nil {
			return Config{}, err
		}

		cfg.LogLevel = parsed
	}

	return cfg, nil
}

// MustLoad is Load for the binary entry point.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("Failed to load configuration, error: ", err)
	}

	return cfg
}

// BoltDatabaseConfig creates a configured *bolt.DB under the store path.
func BoltDatabaseConfig(storePath string) (*bolt.DB, error) {
	const defaultOpenTimeout = time.Second * 5
	const defaultFileMode = 0o600

	if err := os.MkdirAll(storePath, 0o750); err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		filepath.Join(storePath, "library.db"),
		defaultFileMode,
		&bolt.Options{Timeout: defaultOpenTimeout},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SQLiteDatabaseConfig creates a configured *sqlx.DB over a database file
// under the store path.
func SQLiteDatabaseConfig(storePath string) (*sqlx.DB, error) {
	const defaultMaxOpenConnections = 1
	const defaultMaxIdleConnections = 1
	const defaultMaxConnLifetime = time.Hour

	if err := os.MkdirAll(storePath, 0o750); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", filepath.Join(storePath, "library.sqlite"))
	if err != nil {
		return nil, err
	}

	// The driver serializes access through a single connection.
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)

	if pingErr := db.Ping(); pingErr != nil {
		closeIgnoringError(db)
		return nil, pingErr
	}

	return db, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}
}

func closeIgnoringError(db *sqlx.DB) {
	_ = db.Close()
}
