// Package session holds the state of one form-filling session and routes user
// edits through the list controller, avatar intake and submission pipeline.
package session

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/pkg/avatar"
	"github.com/goliatone/go-ecollection/pkg/members"
	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// ErrLastMember is returned when removing the only family member.
var ErrLastMember = errors.New("session: at least one family member is required")

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the sink for intake and list notifications. Submission
// notifications are sent by the pipeline's own notifier.
func WithNotifier(sink notify.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithIntake overrides the avatar intake rules.
func WithIntake(intake avatar.Intake) Option {
	return func(s *Store) {
		s.intake = intake
	}
}

// WithPipeline sets the submission pipeline.
func WithPipeline(p *submit.Pipeline) Option {
	return func(s *Store) {
		s.pipeline = p
	}
}

// WithLogger sets the store logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener registers a callback invoked with the new form after every
// change.
func WithListener(fn func(model.PrimaryForm)) Option {
	return func(s *Store) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Store owns the PrimaryForm of a session. It is not safe for concurrent use.
type Store struct {
	form      model.PrimaryForm
	sink      notify.Sink
	intake    avatar.Intake
	pipeline  *submit.Pipeline
	logger    logrus.FieldLogger
	listeners []func(model.PrimaryForm)
}

// New returns a store holding a blank form.
func New(options ...Option) *Store {
	s := &Store{
		form:   model.NewPrimaryForm(),
		sink:   notify.Discard,
		intake: avatar.NewIntake(),
		logger: discardLogger(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Form returns the current form value.
func (s *Store) Form() model.PrimaryForm {
	return s.form
}

// SetField replaces one top-level text field.
func (s *Store) SetField(field, value string) error {
	next, err := s.form.WithField(field, value)
	if err != nil {
		return err
	}
	s.replace(next)
	return nil
}

// AcceptAvatar runs r through avatar intake. A rejected file is reported to the
// notifier and leaves the form unchanged. A dismissed picker (no file) does
// nothing.
func (s *Store) AcceptAvatar(filename, declaredType string, r io.Reader) error {
	a, err := s.intake.Accept(filename, declaredType, r)
	return s.storeAvatar(a, err)
}

// OpenAvatar is AcceptAvatar for a file on disk. An empty path does nothing.
func (s *Store) OpenAvatar(path string) error {
	a, err := s.intake.Open(path)
	return s.storeAvatar(a, err)
}

func (s *Store) storeAvatar(a *model.Avatar, err error) error {
	if errors.Is(err, avatar.ErrNoFile) {
		return nil
	}
	if err != nil {
		s.logger.WithError(err).Debug("avatar rejected")
		notify.Error(s.sink, err.Error())
		return err
	}
	s.replace(s.form.WithAvatar(a))
	return nil
}

// AddMember appends a blank family member when every existing one is complete.
func (s *Store) AddMember() error {
	next, err := members.Add(s.form.FamilyMembers)
	if err != nil {
		notify.Error(s.sink, err.Error())
		return err
	}
	s.replace(s.form.WithFamilyMembers(next))
	return nil
}

// RemoveMember drops the member at index. The last member cannot be removed.
func (s *Store) RemoveMember(index int) error {
	if !members.CanRemove(s.form.FamilyMembers) {
		return ErrLastMember
	}
	if index < 0 || index >= len(s.form.FamilyMembers) {
		return members.ErrIndexOutOfRange
	}
	s.replace(s.form.WithFamilyMembers(members.Remove(s.form.FamilyMembers, index)))
	return nil
}

// UpdateMember sets one field of the member at index.
func (s *Store) UpdateMember(index int, field, value string) error {
	next, err := members.Update(s.form.FamilyMembers, index, field, value)
	if err != nil {
		return err
	}
	s.replace(s.form.WithFamilyMembers(next))
	return nil
}

// Pipeline returns the submission pipeline, nil when none is configured.
func (s *Store) Pipeline() *submit.Pipeline {
	return s.pipeline
}

// Intake returns the avatar intake rules.
func (s *Store) Intake() avatar.Intake {
	return s.intake
}

// CanRemoveMembers reports whether removal controls should be offered.
func (s *Store) CanRemoveMembers() bool {
	return members.CanRemove(s.form.FamilyMembers)
}

// Control returns the submit control for the pipeline's current state.
func (s *Store) Control() submit.Control {
	if s.pipeline == nil {
		return submit.ControlFor(submit.StateIdle)
	}
	return s.pipeline.Control()
}

// Submit sends the current form. On success the form is reset to its blank
// shape; any other outcome leaves it untouched.
func (s *Store) Submit(ctx context.Context) (submit.Outcome, error) {
	if s.pipeline == nil {
		return submit.Outcome{State: submit.StateIdle}, submit.ErrNoTransport
	}
	outcome, err := s.pipeline.Submit(ctx, s.form)
	if err != nil {
		return outcome, err
	}
	if outcome.Succeeded() {
		s.Reset()
	}
	return outcome, nil
}

// Reset replaces the form with a blank one.
func (s *Store) Reset() {
	s.replace(model.NewPrimaryForm())
}

func (s *Store) replace(next model.PrimaryForm) {
	s.form = next
	for _, fn := range s.listeners {
		fn(next)
	}
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
