package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
)

// Healthz reports whether the document store answers. Backends that cannot
// be pinged are always reported ready.
func Healthz(docs docstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := docs.(docstore.Pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				slog.Warn("document store not ready", "error", err)
				jsonError(w, http.StatusServiceUnavailable, "document store not ready")
				return
			}
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
