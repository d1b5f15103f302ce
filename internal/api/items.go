package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/store"
)

// ItemsHandler serves read-only item data as JSON.
type ItemsHandler struct {
	Docs docstore.Store
}

// Stats handles GET /api/stats.
func (h *ItemsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.Docs)
	if err != nil {
		slog.Error("failed to count items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	itemType := q.Get("type")
	if itemType != "" && !model.ValidItemType(itemType) {
		jsonError(w, http.StatusBadRequest, "invalid item type")
		return
	}

	var limit int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	items, err := store.ListItems(r.Context(), h.Docs, store.Query{
		Type:     itemType,
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Limit:    limit,
	})
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{item_id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, claims, err := store.GetItemWithClaims(r.Context(), h.Docs, r.PathValue("item_id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, struct {
		*model.Item
		Claims []model.Claim `json:"claims"`
	}{Item: item, Claims: claims})
}
