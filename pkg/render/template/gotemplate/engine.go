// Package gotemplate adapts the github.com/goliatone/go-template engine to the
// template seam used by the page renderers.
package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-ecollection/pkg/render/template"
)

// DefaultExtension is appended to template names given without one.
const DefaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
}

// WithBaseDir loads templates from a directory on disk. It takes precedence
// over WithFS so a directory can override an embedded bundle.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// Engine is a go-template engine. Template data is converted through its json
// encoding, so numbers reach templates as floats; use the floatformat or
// integer filters when printing them.
type Engine struct {
	*gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. Either WithFS or WithBaseDir is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	engineOptions := []gotemplatepkg.Option{gotemplatepkg.WithExtension(DefaultExtension)}
	switch {
	case cfg.baseDir != "":
		engineOptions = append(engineOptions, gotemplatepkg.WithBaseDir(cfg.baseDir))
	case cfg.templates != nil:
		engineOptions = append(engineOptions, gotemplatepkg.WithFS(cfg.templates))
	default:
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	engine, err := gotemplatepkg.NewRenderer(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	return &Engine{Engine: engine}, nil
}
