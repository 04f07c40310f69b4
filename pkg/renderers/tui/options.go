package tui

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/pkg/render"
)

// Theme captures the prefixes printed in front of messages.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	ErrorPrefix   string
}

// DefaultTheme uses plain ASCII markers.
func DefaultTheme() Theme {
	return Theme{InfoPrefix: "", SuccessPrefix: "[ok] ", ErrorPrefix: "[!] "}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		s.out = out
	}
}

// WithReviewRenderer sets the renderer used for the pre-submit review.
func WithReviewRenderer(r render.Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.review = r
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
