package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path        string
	BusyTimeout time.Duration
	PingTimeout time.Duration
}

// ConfigFromEnv reads store config from environment variables
func ConfigFromEnv() Config {
	path := os.Getenv("POS_DB_PATH")
	if path == "" {
		// default local
		path = "saborDaVila.db"
	}
	return Config{Path: path, BusyTimeout: 5 * time.Second, PingTimeout: 5 * time.Second}
}

// Open opens the embedded store and verifies it with a ping. The handle is
// created once at process start and passed by reference to every repository;
// the process owns it for its lifetime. Foreign key enforcement is switched
// on at the connection level so the shops -> users ON DELETE CASCADE fires.
func Open(cfg Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// single-process, single-writer access model
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return db, nil
}

// OpenInMemory opens a private in-memory store with the same session
// settings as Open. Used by tests and ad-hoc tooling.
func OpenInMemory() (*sqlx.DB, error) {
	return Open(Config{Path: ":memory:", BusyTimeout: time.Second, PingTimeout: time.Second})
}
