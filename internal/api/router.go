package api

import (
	"net/http"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(docs docstore.Store) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Docs: docs}

	mux.HandleFunc("GET /api/stats", itemsHandler.Stats)
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("GET /api/items/{item_id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/healthz", Healthz(docs))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})

	return mux
}
