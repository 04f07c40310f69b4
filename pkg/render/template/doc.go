// Package template defines the template engine interface used by the page
// renderers.
package template
