package submit

import (
	"errors"
	"fmt"
)

// User-facing messages for submission outcomes.
const (
	MessageSuccess          = "Awesome !, submission received."
	MessageTransportFailure = "Oops, An error while processing this request"
	MessageRejectedFallback = "The server could not accept this submission"
)

var (
	// ErrInFlight is returned when Submit is called while another attempt is
	// still pending. No state changes and no notification is sent.
	ErrInFlight = errors.New("submit: a submission is already in flight")
	// ErrNoTransport is returned when the pipeline has no transport configured.
	ErrNoTransport = errors.New("submit: transport is nil")
)

// TransportError wraps network failures. Its message is the generic transport
// failure text so it can be shown to the user as is.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return MessageTransportFailure }

func (e *TransportError) Unwrap() error { return e.Err }

// Detail returns the underlying cause for logs.
func (e *TransportError) Detail() string {
	if e.Err == nil {
		return MessageTransportFailure
	}
	return fmt.Sprintf("%s: %v", MessageTransportFailure, e.Err)
}

// RejectedError reports a server-side failure. Message is the text supplied by
// the server, surfaced verbatim.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return MessageRejectedFallback
	}
	return e.Message
}
