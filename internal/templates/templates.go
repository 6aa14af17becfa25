// Package templates owns the embedded HTML templates and the renderer the
// handlers draw on. Pages and htmx fragments are all named templates in one
// parsed set.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dragonfield.org/catalog-web/internal/observability"
)

//go:embed html/*.tmpl
var files embed.FS

var set = template.Must(parse())

func parse() (*template.Template, error) {
	funcMap := template.FuncMap{
		"joinBase": JoinBase,
	}
	tmpl, err := template.New("_root").Funcs(funcMap).ParseFS(files, "html/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("templates: parse: %w", err)
	}
	return tmpl, nil
}

// Render executes the named template. Template failures surface as a 500 and
// are logged from the request context.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := set.ExecuteTemplate(w, name, data); err != nil {
		observability.FromContext(r.Context()).Error("render template failed",
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// JoinBase joins the mounted base path with a route suffix, collapsing
// duplicate slashes.
func JoinBase(base, suffix string) string {
	base = strings.TrimSpace(base)
	if base == "" || base == "/" {
		base = ""
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	path := base + suffix
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
