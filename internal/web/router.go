package web

import (
	"net/http"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/flash"
	webembed "github.com/pkumari69302-hue/Campus-lost-found/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(docs docstore.Store, blobs blobstore.Store, flashes *flash.Signer, maxUploadBytes int64) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Docs:           docs,
		Blobs:          blobs,
		Templates:      templates,
		Flash:          flashes,
		MaxUploadBytes: maxUploadBytes,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Listings.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /lost", s.LostPage)
	mux.HandleFunc("GET /found", s.FoundPage)

	// Reporting.
	mux.HandleFunc("GET /report/{item_type}", s.ReportPage)
	mux.HandleFunc("POST /report/{item_type}", s.ReportSubmit)

	// Item detail and claims.
	mux.HandleFunc("GET /item/{item_id}", s.ItemDetailPage)
	mux.HandleFunc("POST /item/{item_id}", s.ClaimSubmit)

	mux.HandleFunc("GET /fun", s.FunPage)

	// Everything else.
	mux.HandleFunc("/", s.notFound)

	return RecoverMiddleware(s)(mux), nil
}
