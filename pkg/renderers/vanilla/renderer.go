// Package vanilla renders the form page as server-side HTML.
package vanilla

import (
	"context"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/render"
	rendertemplate "github.com/goliatone/go-ecollection/pkg/render/template"
	"github.com/goliatone/go-ecollection/pkg/render/template/gotemplate"
)

// ThemeStylesheetAsset is the theme asset key that replaces the embedded
// stylesheet when present.
const ThemeStylesheetAsset = "vanilla.stylesheet"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templatesDir string
}

// WithTemplatesDir loads page.tmpl and field.tmpl from a directory on disk
// instead of the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engineOptions := []gotemplate.Option{gotemplate.WithFS(TemplatesFS())}
	if cfg.templatesDir != "" {
		engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.templatesDir))
	}
	engine, err := gotemplate.New(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}
	return &Renderer{templates: engine, stylesheet: defaultStylesheet()}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the full page, flash notifications included.
func (r *Renderer) Render(_ context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(PageTemplate, map[string]any{
		"page":          page,
		"notifications": sanitizeNotifications(opts.Notifications),
		"theme":         buildThemeContext(opts.Theme),
		"stylesheet":    r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func sanitizeNotifications(in []notify.Notification) []notify.Notification {
	out := make([]notify.Notification, 0, len(in))
	for _, n := range in {
		n.Message = sanitizeMessage(n.Message)
		if n.Message == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

type themeContext struct {
	Name          string `json:"name,omitempty"`
	Variant       string `json:"variant,omitempty"`
	CSSVarsStyle  string `json:"css_vars_style,omitempty"`
	StylesheetURL string `json:"stylesheet_url,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.StylesheetURL = cfg.AssetURL(ThemeStylesheetAsset)
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
