package handler

import (
	"errors"
	"io"
	"net/http"

	"docstore/internal/document/model"
	"docstore/internal/document/repository"
	"docstore/internal/document/service"
	"docstore/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type DocumentHandler struct {
	Service *service.DocumentService
}

func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: service}
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	payload, err := h.Service.Get(r.Context(), key)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to get document %s: %v", key, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (h *DocumentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Put(r.Context(), key, body); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			http.Error(w, "Request body must be a non-empty JSON object", http.StatusBadRequest)
			return
		}
		logger.Sugar.Errorf("Handler: Failed to save document %s: %v", key, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, model.StatusResponse{Message: "Document saved successfully"})
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	err := h.Service.Delete(r.Context(), key)
	if errors.Is(err, repository.ErrNotFound) {
		// expected outcome, not a server error
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete document %s: %v", key, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, model.StatusResponse{Message: "Document deleted successfully"})
}

// Health reports liveness of the service and its database connection.
func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Repo.DB.PingContext(r.Context()); err != nil {
		logger.Sugar.Errorf("Health check failed: %v", err)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, model.HealthResponse{Status: "unavailable"})
		return
	}
	render.JSON(w, r, model.HealthResponse{Status: "ok"})
}
