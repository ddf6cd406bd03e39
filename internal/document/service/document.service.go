package service

import (
	"context"
	"encoding/json"
	"errors"

	"docstore/internal/document/repository"
)

// ErrInvalidPayload is returned when a write body is empty, malformed, or not
// a JSON object with at least one member. Rejected writes never reach storage.
var ErrInvalidPayload = errors.New("payload must be a non-empty JSON object")

type DocumentService struct {
	Repo *repository.DocumentRepository
}

func NewDocumentService(repo *repository.DocumentRepository) *DocumentService {
	return &DocumentService{Repo: repo}
}

func (s *DocumentService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	return s.Repo.Get(ctx, key)
}

// Put validates the body and stores it verbatim under key. The stored value
// fully replaces any previous document for that key; there is no merging.
func (s *DocumentService) Put(ctx context.Context, key string, body []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		// not JSON, or top level is not an object
		return ErrInvalidPayload
	}
	if len(members) == 0 {
		return ErrInvalidPayload
	}
	return s.Repo.Upsert(ctx, key, body)
}

func (s *DocumentService) Delete(ctx context.Context, key string) error {
	return s.Repo.Delete(ctx, key)
}
