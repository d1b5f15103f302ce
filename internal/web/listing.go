package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/store"
)

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.listing(w, r, "", "All Items")
}

// LostPage handles GET /lost.
func (s *Server) LostPage(w http.ResponseWriter, r *http.Request) {
	s.listing(w, r, model.ItemTypeLost, "Lost Items")
}

// FoundPage handles GET /found.
func (s *Server) FoundPage(w http.ResponseWriter, r *http.Request) {
	s.listing(w, r, model.ItemTypeFound, "Found Items")
}

func (s *Server) listing(w http.ResponseWriter, r *http.Request, itemType, title string) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	items, err := store.ListItems(r.Context(), s.Docs, store.Query{
		Type:     itemType,
		Search:   search,
		Category: category,
	})
	if err != nil {
		slog.Error("failed to list items", "type", itemType, "error", err)
		s.internalError(w, r)
		return
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Items            []model.Item
		Query            string
		Categories       []string
		SelectedCategory string
		FilterType       string
	}{
		PageData:         s.page(w, r, title),
		Items:            items,
		Query:            search,
		Categories:       store.Categories(items),
		SelectedCategory: category,
		FilterType:       itemType,
	})
}
