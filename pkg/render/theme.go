package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "ecollection"

// DefaultTheme is the built-in look: a white card on a muted background with
// a blue submit button.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background":    "#f4f6f9",
			"surface":       "#ffffff",
			"text":          "#333333",
			"muted":         "#8a8a8a",
			"primary":       "#1f7aec",
			"primary-text":  "#ffffff",
			"border":        "#dcdfe6",
			"radius":        "6px",
			"success":       "#2e9d5b",
			"error":         "#d64545",
			"button-shadow": "0 4px 10px rgba(31, 122, 236, 0.35)",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"background": "#1b1e24",
					"surface":    "#262a32",
					"text":       "#e6e6e6",
					"border":     "#3a3f4a",
				},
			},
		},
	}
}

// NewThemeProvider registers the manifests with a go-theme registry, failing on
// duplicates or invalid manifests.
func NewThemeProvider(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// SelectTheme resolves a theme and variant from provider into renderer config.
// An empty name selects DefaultThemeName. Unlike the go-theme selector, an
// unknown variant is an error rather than a silent fallback to base tokens.
func SelectTheme(provider theme.ThemeProvider, name, variant string) (*theme.RendererConfig, error) {
	selector := theme.Selector{Registry: provider, DefaultTheme: DefaultThemeName}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}
