// Package web embeds the topic page template and static assets so the
// server binary is self-contained.
//
// Usage in the API server:
//
//	import "github.com/seenimoa/newspulse/web"
//	tmpl := web.IndexTemplate()   // parsed topic page
//	fs := web.StaticFS()          // io/fs.FS rooted at static/
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
)

//go:embed all:static
var static embed.FS

//go:embed templates
var templates embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}

// IndexTemplate returns the parsed topic page template.
func IndexTemplate() *template.Template {
	return template.Must(template.ParseFS(templates, "templates/index.html"))
}
