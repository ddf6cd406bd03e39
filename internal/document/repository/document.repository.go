package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"docstore/pkg/logger"
)

// ErrNotFound is returned when no document exists under the requested key.
var ErrNotFound = errors.New("document not found")

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var payload []byte
	err := r.DB.QueryRowContext(ctx, "SELECT payload FROM documents WHERE key = $1", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get document %s: %v", key, err)
		return nil, err
	}
	return payload, nil
}

// Upsert stores payload under key, replacing any previous payload whole.
// A single statement keeps concurrent writers to the same key last-write-wins.
// lib/pq requires string for JSONB parameters, not []byte.
func (r *DocumentRepository) Upsert(ctx context.Context, key string, payload json.RawMessage) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO documents (key, payload) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`, key, string(payload))
	if err != nil {
		logger.Sugar.Errorf("Failed to upsert document %s: %v", key, err)
	}
	return err
}

func (r *DocumentRepository) Delete(ctx context.Context, key string) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE key = $1", key)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s: %v", key, err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
