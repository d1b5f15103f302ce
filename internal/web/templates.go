package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/flash"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	webembed "github.com/pkumari69302-hue/Campus-lost-found/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"typeLabel": func(itemType string) string {
			switch itemType {
			case model.ItemTypeLost:
				return "Lost"
			case model.ItemTypeFound:
				return "Found"
			default:
				return itemType
			}
		},
		"categoryOptions": func() []string { return model.CategoryOptions },
		// shortDate trims an ISO timestamp to its date part.
		"shortDate": func(ts string) string {
			date, _, _ := strings.Cut(ts, "T")
			return date
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"home.html",
		"report_item.html",
		"item_detail.html",
		"fun.html",
		"error.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data and a 200 status.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Flashes []flash.Message
}

// Server holds all dependencies for page handlers.
type Server struct {
	Docs           docstore.Store
	Blobs          blobstore.Store
	Templates      *Templates
	Flash          *flash.Signer
	MaxUploadBytes int64
}

// page builds the base page data, consuming pending flash messages.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string) PageData {
	return PageData{Title: title, Flashes: s.Flash.Pop(w, r)}
}

// renderError renders the error page.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.Templates.RenderStatus(w, status, "error.html", &struct {
		PageData
		Code    int
		Message string
	}{
		PageData: s.page(w, r, message),
		Code:     status,
		Message:  message,
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusInternalServerError, "Internal server error")
}
