// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"notekeeper/internal/errors"

	"github.com/labstack/echo/v4"
)

const layoutFile = "templates/layout.html"

// Page names accepted by Renderer.Render.
const (
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageIndex    = "index.html"
	PageAbout    = "about.html"
	PageError    = "error.html"
)

var pages = []string{PageLogin, PageRegister, PageIndex, PageAbout, PageError}

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer implements echo.Renderer with one template set per page, each
// sharing the common layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page against the layout.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).ParseFS(templateFS, layoutFile, "templates/"+page)
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", page)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the layout of the named page.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("unknown template %s", name)
	}

	return tmpl.ExecuteTemplate(w, "layout", data)
}

// StaticFS returns the embedded stylesheet and images rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return sub
}
