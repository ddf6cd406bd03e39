package router

import (
	"database/sql"
	"net/http"

	docHandler "docstore/internal/document"
	"docstore/internal/document/repository"
	"docstore/internal/document/service"
	"docstore/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func Setup(db *sql.DB) http.Handler {
	docRepo := repository.NewDocumentRepository(db)
	docService := service.NewDocumentService(docRepo)
	h := docHandler.NewDocumentHandler(docService)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Origin"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/data/{key}", func(r chi.Router) {
		r.Get("/", h.GetDocument)
		r.Post("/", h.PutDocument)
		r.Delete("/", h.DeleteDocument)
	})

	return r
}
