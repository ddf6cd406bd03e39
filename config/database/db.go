package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docstore/pkg/logger"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	payload JSONB NOT NULL
)`

// Connect opens the connection pool, verifies the database is reachable and
// ensures the documents table exists. Any error here is fatal for the caller:
// the service must not accept traffic without durable storage.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}

	logger.Sugar.Info("Successfully connected to the database")
	return db, nil
}
