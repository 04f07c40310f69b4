// Package notify carries transient success and error messages from the form
// core to whatever surface displays them.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Level is the notification severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Icon classes attached to notifications.
const (
	IconCheck = "pe-7s-check"
	IconInfo  = "pe-7s-info"
)

// Notification is a single message shown to the user.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// Sink displays notifications. Implementations must not block for long; the
// form core calls Notify inline.
type Sink interface {
	Notify(level Level, message, icon string)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(level Level, message, icon string)

func (fn SinkFunc) Notify(level Level, message, icon string) {
	if fn != nil {
		fn(level, message, icon)
	}
}

// Success sends a success notification with the check icon.
func Success(sink Sink, message string) {
	if sink != nil {
		sink.Notify(LevelSuccess, message, IconCheck)
	}
}

// Error sends an error notification with the info icon.
func Error(sink Sink, message string) {
	if sink != nil {
		sink.Notify(LevelError, message, IconInfo)
	}
}

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Level, string, string) {})

// Multi fans notifications out to every non-nil sink, in order.
func Multi(sinks ...Sink) Sink {
	var out []Sink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return SinkFunc(func(level Level, message, icon string) {
		for _, s := range out {
			s.Notify(level, message, icon)
		}
	})
}

// Recorder queues notifications until they are drained. The browser front end
// uses it as a flash store; tests use it to assert on messages.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(level Level, message, icon string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message, Icon: icon})
}

// Pending returns a copy of the queued notifications.
func (r *Recorder) Pending() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Drain returns and clears the queued notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// LogSink writes notifications to a logrus logger.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s LogSink) Notify(level Level, message, icon string) {
	if s.Logger == nil {
		return
	}
	entry := s.Logger.WithFields(logrus.Fields{
		"level_hint": string(level),
		"icon":       icon,
	})
	if level == LevelError {
		entry.Warn(message)
		return
	}
	entry.Info(message)
}
