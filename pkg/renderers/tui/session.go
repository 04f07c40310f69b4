// Package tui runs the form as an interactive terminal session on survey
// prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/session"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// Menu entries that are not tied to a field.
const (
	menuAvatar    = "Avatar"
	menuAdd       = render.AddMemberLabel
	menuRemove    = "Remove A Family Member"
	menuReview    = "Review"
	menuSubmit    = "Submit"
	menuQuit      = "Quit"
	confirmSubmit = "Submit this form?"
)

// Session drives a session.Store from terminal prompts.
type Session struct {
	driver PromptDriver
	out    io.Writer
	review render.Renderer
	theme  Theme
	logger logrus.FieldLogger
}

// New builds a session. Without WithPromptDriver it prompts on the real
// terminal through survey.
func New(options ...Option) *Session {
	s := &Session{theme: DefaultTheme(), logger: discardLogger()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s
}

// Notifier returns a sink that prints notifications through the driver.
func (s *Session) Notifier() notify.Sink {
	return notify.SinkFunc(func(level notify.Level, message, _ string) {
		prefix := s.theme.ErrorPrefix
		if level == notify.LevelSuccess {
			prefix = s.theme.SuccessPrefix
		}
		if err := s.driver.Info(context.Background(), prefix+message); err != nil {
			s.logger.WithError(err).Warn("print notification")
		}
	})
}

type menuItem struct {
	label  string
	action func(ctx context.Context, store *session.Store) error
}

// Run loops on the main menu until the user quits or aborts. Aborting with
// Ctrl+C returns ErrAborted.
func (s *Session) Run(ctx context.Context, store *session.Store) error {
	if store == nil {
		return ErrNoStore
	}
	if err := s.info(ctx, render.PageHeading); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		items := s.menu(store)
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.label
		}

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  render.PageHeading,
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}
		item := items[idx]
		if item.action == nil {
			return nil
		}
		if err := item.action(ctx, store); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return err
			}
			s.logger.WithError(err).WithField("action", item.label).Debug("menu action failed")
		}
	}
}

func (s *Session) menu(store *session.Store) []menuItem {
	form := store.Form()
	var items []menuItem

	for _, d := range model.PrimaryFields() {
		d := d
		value, _ := form.Get(d.Name)
		items = append(items, menuItem{
			label:  withValue(d.Label, value),
			action: func(ctx context.Context, st *session.Store) error { return s.editField(ctx, st, d) },
		})
	}

	avatarLabel := render.AvatarPrompt
	if form.Avatar != nil {
		avatarLabel = fmt.Sprintf("%s (%s)", render.AvatarChange, form.Avatar.Filename)
	}
	items = append(items, menuItem{label: menuAvatar + ": " + avatarLabel, action: s.chooseAvatar})

	for i, member := range form.FamilyMembers {
		i := i
		items = append(items, menuItem{
			label:  withValue(fmt.Sprintf("Member: %d", i+1), member.Name),
			action: func(ctx context.Context, st *session.Store) error { return s.editMember(ctx, st, i) },
		})
	}

	items = append(items, menuItem{label: menuAdd, action: func(_ context.Context, st *session.Store) error { return st.AddMember() }})
	if store.CanRemoveMembers() {
		items = append(items, menuItem{label: menuRemove, action: s.removeMember})
	}
	items = append(items,
		menuItem{label: menuReview, action: s.showReview},
		menuItem{label: store.Control().Label, action: s.submit},
		menuItem{label: menuQuit},
	)
	return items
}

func (s *Session) editField(ctx context.Context, store *session.Store, d model.FieldDescriptor) error {
	current, _ := store.Form().Get(d.Name)
	value, err := s.driver.Input(ctx, InputConfig{
		Message: d.Label,
		Default: current,
		Help:    fieldHelp(d),
	})
	if err != nil {
		return err
	}
	return store.SetField(d.Name, strings.TrimSpace(value))
}

func (s *Session) chooseAvatar(ctx context.Context, store *session.Store) error {
	path, err := s.driver.Input(ctx, InputConfig{
		Message: "Avatar image path",
		Help:    "PNG, JPEG or GIF; leave empty to keep the current avatar",
	})
	if err != nil {
		return err
	}
	if err := store.OpenAvatar(strings.TrimSpace(path)); err != nil {
		return err
	}
	if a := store.Form().Avatar; a != nil {
		return s.info(ctx, fmt.Sprintf("%s%s (%s, %d bytes)", s.theme.InfoPrefix, a.Filename, a.MediaType, a.Size))
	}
	return nil
}

func (s *Session) editMember(ctx context.Context, store *session.Store, index int) error {
	for _, d := range model.FamilyMemberFields() {
		members := store.Form().FamilyMembers
		if index >= len(members) {
			return nil
		}
		current, _ := members[index].Get(d.Name)
		value, err := s.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Member: %d %s", index+1, d.Label),
			Default: current,
		})
		if err != nil {
			return err
		}
		if err := store.UpdateMember(index, d.Name, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) removeMember(ctx context.Context, store *session.Store) error {
	members := store.Form().FamilyMembers
	options := make([]string, len(members))
	for i, member := range members {
		options[i] = withValue(fmt.Sprintf("Member: %d", i+1), member.Name)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: menuRemove, Options: options})
	if err != nil {
		return err
	}
	return store.RemoveMember(idx)
}

func (s *Session) showReview(ctx context.Context, store *session.Store) error {
	if s.review == nil {
		return nil
	}
	page := render.NewPage(store.Form(), store.Control(), render.Routes{})
	out, err := s.review.Render(ctx, page, render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.info(ctx, strings.TrimRight(string(out), "\n"))
}

func (s *Session) submit(ctx context.Context, store *session.Store) error {
	if err := s.showReview(ctx, store); err != nil {
		return err
	}
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: confirmSubmit, Default: true})
	if err != nil || !ok {
		return err
	}
	if err := s.info(ctx, submit.LabelLoading); err != nil {
		return err
	}
	// Once confirmed the request runs to completion even if the prompt is
	// interrupted.
	outcome, err := store.Submit(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"state":      outcome.State.String(),
		"request_id": outcome.RequestID,
	}).Debug("submission finished")
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

func withValue(label, value string) string {
	if value == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, value)
}

func fieldHelp(d model.FieldDescriptor) string {
	var parts []string
	if d.Placeholder != "" {
		parts = append(parts, "e.g. "+d.Placeholder)
	}
	if d.Type == model.InputDate {
		parts = append(parts, "format YYYY-MM-DD")
	}
	if d.Bounded() && d.Min != nil && d.Max != nil {
		parts = append(parts, fmt.Sprintf("between %d and %d", *d.Min, *d.Max))
	}
	return strings.Join(parts, ", ")
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
