package template

import (
	"io"
)

// TemplateRenderer is the template engine seam renderers depend on. It
// mirrors the github.com/goliatone/go-template engine contract.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
