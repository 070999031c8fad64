package frontend

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page templates")
	}
	return tmpl, nil
}

// GetHTTPFS returns the embedded static assets for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open static assets")
	}
	return http.FS(sub), nil
}
