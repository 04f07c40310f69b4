// Package render defines the page view model shared by every front end and
// the registry renderers are looked up from.
package render
