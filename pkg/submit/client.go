package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the submission correlation id.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 1 << 20

// Response is the decoded server answer.
type Response struct {
	StatusCode int
	OK         bool
	Message    string
	RequestID  string
}

// Transport sends a payload to the remote API.
type Transport interface {
	Send(ctx context.Context, payload Payload) (Response, error)
}

// TransportFunc adapts a function into a Transport.
type TransportFunc func(ctx context.Context, payload Payload) (Response, error)

func (fn TransportFunc) Send(ctx context.Context, payload Payload) (Response, error) {
	return fn(ctx, payload)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client. The default client has no timeout;
// submissions run to completion.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithContract enables contract checks on payloads and responses.
func WithContract(contract *Contract) ClientOption {
	return func(c *Client) {
		c.contract = contract
	}
}

// WithClientLogger sets the logger used for contract warnings.
func WithClientLogger(logger logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client posts payloads to the submit endpoint as multipart/form-data.
type Client struct {
	endpoint string
	http     *http.Client
	contract *Contract
	logger   logrus.FieldLogger
}

// NewClient builds a client for the full endpoint URL.
func NewClient(endpoint string, options ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{},
		logger:   discardLogger(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint reports the target URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Send posts the payload. Network failures return a *TransportError; any
// server answer, successful or not, returns a Response and a nil error.
func (c *Client) Send(ctx context.Context, payload Payload) (Response, error) {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := c.logger.WithField("request_id", requestID)

	if err := c.contract.CheckPayload(payload); err != nil {
		log.WithError(err).Warn("payload does not match contract")
	}

	var body bytes.Buffer
	contentType, err := payload.WriteMultipart(&body)
	if err != nil {
		return Response{RequestID: requestID}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return Response{RequestID: requestID}, &TransportError{Err: fmt.Errorf("request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{RequestID: requestID}, &TransportError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, RequestID: requestID}, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	out := Response{StatusCode: resp.StatusCode, RequestID: requestID}
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	var decoded any
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &decoded) == nil {
		if err := c.contract.CheckResponse(decoded); err != nil {
			log.WithError(err).Warn("response does not match contract")
		}
		if obj, ok := decoded.(map[string]any); ok {
			if status, ok := obj["status"].(bool); ok && !status {
				success = false
			}
			if msg, ok := obj["message"].(string); ok {
				out.Message = msg
			}
		}
	}

	out.OK = success
	if !success && out.Message == "" && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		out.Message = http.StatusText(resp.StatusCode)
	}
	return out, nil
}

type requestIDKey struct{}

// ContextWithRequestID attaches a correlation id used by Client.Send.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id attached to ctx.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
