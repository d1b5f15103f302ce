// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the stylesheet and other assets served under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("embedded static assets missing: %v", err)
	}
	return sub
}

// TemplatesFS returns the layout plus the listing, report, item, fun and
// error page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("embedded page templates missing: %v", err)
	}
	return sub
}
