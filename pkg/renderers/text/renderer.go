// Package text renders the form as a plain-text review, used by the terminal
// session before it submits.
package text

import (
	"context"
	"embed"
	"fmt"

	"github.com/goliatone/go-ecollection/pkg/render"
	rendertemplate "github.com/goliatone/go-ecollection/pkg/render/template"
	"github.com/goliatone/go-ecollection/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var templates embed.FS

const reviewTemplate = "templates/review.tmpl"

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the text renderer on the embedded review template.
func New() (*Renderer, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
	}
	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	out, err := r.templates.RenderTemplate(reviewTemplate, map[string]any{
		"page":          page,
		"notifications": opts.Notifications,
	})
	if err != nil {
		return nil, fmt.Errorf("text renderer: render template: %w", err)
	}
	return []byte(out), nil
}
