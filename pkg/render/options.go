package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ecollection/pkg/notify"
)

// RenderOptions carry per-request data that is not part of the form state.
type RenderOptions struct {
	// Notifications are flash messages raised since the last render.
	Notifications []notify.Notification
	// Theme supplies tokens and CSS variables. Nil renders unthemed output.
	Theme *theme.RendererConfig
}
