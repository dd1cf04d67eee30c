package rest

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &templateRenderer{templates: templates}, nil
}

func (that *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return that.templates.ExecuteTemplate(w, name, data)
}
