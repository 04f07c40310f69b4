package submit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/validation"
)

// State is a submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome summarises one submission attempt. State is the terminal state the
// attempt reached before returning to Idle.
type Outcome struct {
	State     State
	Err       error
	Message   string
	RequestID string
}

// Succeeded reports whether the server accepted the submission.
func (o Outcome) Succeeded() bool { return o.State == StateSucceeded }

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifier sets the sink receiving outcome notifications.
func WithNotifier(sink notify.Sink) Option {
	return func(p *Pipeline) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the clock used for date checks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithObserver registers a callback invoked on every state transition.
func WithObserver(fn func(State)) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.observers = append(p.observers, fn)
		}
	}
}

// Pipeline validates and sends forms, one attempt at a time.
type Pipeline struct {
	mu        sync.Mutex
	state     State
	transport Transport
	sink      notify.Sink
	logger    logrus.FieldLogger
	now       func() time.Time
	observers []func(State)
}

// NewPipeline builds a pipeline around transport.
func NewPipeline(transport Transport, options ...Option) *Pipeline {
	p := &Pipeline{
		state:     StateIdle,
		transport: transport,
		sink:      notify.Discard,
		logger:    discardLogger(),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Control returns the submit control for the current state.
func (p *Pipeline) Control() Control {
	return ControlFor(p.State())
}

// Submit runs one attempt. The returned error is non-nil only when no attempt
// was made (ErrInFlight, ErrNoTransport); everything else is reported through
// the Outcome and the notifier. The form itself is never modified; resetting
// it after success is the caller's job.
func (p *Pipeline) Submit(ctx context.Context, form model.PrimaryForm) (Outcome, error) {
	if p.transport == nil {
		return Outcome{State: StateIdle}, ErrNoTransport
	}
	if !p.begin() {
		return Outcome{State: p.State()}, ErrInFlight
	}
	defer p.transition(StateIdle)

	if err := validation.ValidateSubmission(form, p.now()); err != nil {
		p.transition(StateRejected)
		notify.Error(p.sink, err.Error())
		p.logger.WithField("reason", err.Error()).Debug("submission rejected locally")
		return Outcome{State: StateRejected, Err: err, Message: err.Error()}, nil
	}

	requestID := uuid.NewString()
	log := p.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"members":    len(form.FamilyMembers),
	})

	p.transition(StateSubmitting)
	log.Info("submitting form")

	resp, err := p.transport.Send(ContextWithRequestID(ctx, requestID), BuildPayload(form))
	if err != nil {
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			transportErr = &TransportError{Err: err}
		}
		p.transition(StateFailed)
		log.WithField("detail", transportErr.Detail()).Error("submission transport failure")
		notify.Error(p.sink, transportErr.Error())
		return Outcome{State: StateFailed, Err: transportErr, Message: transportErr.Error(), RequestID: requestID}, nil
	}

	if !resp.OK {
		rejected := &RejectedError{StatusCode: resp.StatusCode, Message: resp.Message}
		p.transition(StateFailed)
		log.WithField("status", resp.StatusCode).Warn("submission rejected by server")
		notify.Error(p.sink, rejected.Error())
		return Outcome{State: StateFailed, Err: rejected, Message: rejected.Error(), RequestID: requestID}, nil
	}

	p.transition(StateSucceeded)
	log.WithField("status", resp.StatusCode).Info("submission accepted")
	notify.Success(p.sink, MessageSuccess)
	return Outcome{State: StateSucceeded, Message: MessageSuccess, RequestID: requestID}, nil
}

func (p *Pipeline) begin() bool {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return false
	}
	p.state = StateValidating
	p.mu.Unlock()
	p.notifyObservers(StateValidating)
	return true
}

func (p *Pipeline) transition(next State) {
	p.mu.Lock()
	p.state = next
	p.mu.Unlock()
	p.notifyObservers(next)
}

func (p *Pipeline) notifyObservers(state State) {
	for _, fn := range p.observers {
		fn(state)
	}
}
