package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/flash"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/store"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

type reportData struct {
	PageData
	ItemType string
	Today    string
	Form     store.NewItem
}

// ReportPage handles GET /report/{item_type}.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	itemType := r.PathValue("item_type")
	if !model.ValidItemType(itemType) {
		s.Flash.Add(w, r, flash.Danger, "Invalid item type.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "report_item.html", &reportData{
		PageData: s.page(w, r, "Report "+itemType+" item"),
		ItemType: itemType,
		Today:    time.Now().Format("2006-01-02"),
		Form:     store.NewItem{Category: model.DefaultCategory},
	})
}

// ReportSubmit handles POST /report/{item_type}.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	itemType := r.PathValue("item_type")
	if !model.ValidItemType(itemType) {
		s.Flash.Add(w, r, flash.Danger, "Invalid item type.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.ContentLength > s.MaxUploadBytes {
		slog.Warn("report rejected, body too large", "size", r.ContentLength, "limit", s.MaxUploadBytes)
		s.renderError(w, r, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			slog.Warn("report rejected, body too large", "limit", maxErr.Limit)
			s.renderError(w, r, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		slog.Warn("failed to parse report form", "error", err)
		s.renderError(w, r, http.StatusBadRequest, "Bad request")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	in := store.NewItem{
		Type:        itemType,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Phone:       r.FormValue("phone"),
		Hostel:      r.FormValue("hostel"),
		Color:       r.FormValue("color"),
	}

	var img *store.Image
	file, header, err := r.FormFile("image_file")
	if err == nil {
		defer file.Close()
		img = &store.Image{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	id, err := store.CreateItem(r.Context(), s.Docs, s.Blobs, in, img)
	if store.IsValidation(err) {
		page := s.page(w, r, "Report "+itemType+" item")
		page.Flashes = append(page.Flashes, flash.Message{Category: flash.Danger, Text: "Title is required!"})
		s.Templates.Render(w, "report_item.html", &reportData{
			PageData: page,
			ItemType: itemType,
			Today:    time.Now().Format("2006-01-02"),
			Form:     in,
		})
		return
	}
	if err != nil {
		slog.Error("failed to create item", "type", itemType, "error", err)
		s.internalError(w, r)
		return
	}

	title := strings.TrimSpace(in.Title)
	slog.Info("item reported", "id", id, "type", itemType, "title", title)
	s.Flash.Add(w, r, flash.Success, fmt.Sprintf("Successfully reported %s item: %s", itemType, title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
