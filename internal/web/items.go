package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/flash"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/store"
)

// maxClaimBytes bounds the claim form body.
const maxClaimBytes = 64 << 10

// ItemDetailPage handles GET /item/{item_id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("item_id")

	item, claims, err := store.GetItemWithClaims(r.Context(), s.Docs, itemID)
	if errors.Is(err, store.ErrNotFound) {
		s.Flash.Add(w, r, flash.Warning, "Item not found.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to get item", "id", itemID, "error", err)
		s.internalError(w, r)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item   *model.Item
		Claims []model.Claim
	}{
		PageData: s.page(w, r, item.Title),
		Item:     item,
		Claims:   claims,
	})
}

// ClaimSubmit handles POST /item/{item_id}.
func (s *Server) ClaimSubmit(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("item_id")

	if _, err := store.GetItem(r.Context(), s.Docs, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Flash.Add(w, r, flash.Warning, "Item not found.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.Error("failed to get item", "id", itemID, "error", err)
		s.internalError(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxClaimBytes)
	if err := r.ParseForm(); err != nil {
		slog.Warn("failed to parse claim form", "error", err)
		s.renderError(w, r, http.StatusBadRequest, "Bad request")
		return
	}

	back := "/item/" + url.PathEscape(itemID)

	claimID, err := store.CreateClaim(r.Context(), s.Docs, itemID, r.PostFormValue("name"), r.PostFormValue("message"))
	if store.IsValidation(err) {
		s.Flash.Add(w, r, flash.Danger, "Name is required to submit a claim.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to create claim", "item", itemID, "error", err)
		s.internalError(w, r)
		return
	}

	slog.Info("claim submitted", "id", claimID, "item", itemID)
	s.Flash.Add(w, r, flash.Success, "Claim submitted successfully!")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// FunPage handles GET /fun.
func (s *Server) FunPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "fun.html", &struct{ PageData }{PageData: s.page(w, r, "Fun")})
}
