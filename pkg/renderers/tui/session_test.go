package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-ecollection/pkg/renderers/text"
	"github.com/goliatone/go-ecollection/pkg/session"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// stubDriver answers Select by label prefix so scripts survive menu changes.
type stubDriver struct {
	selects  []string
	inputs   []string
	confirms []bool
	infos    []string
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[0]
	s.confirms = s.confirms[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return -1, ErrAborted
	}
	want := s.selects[0]
	s.selects = s.selects[1:]
	for i, option := range cfg.Options {
		if strings.HasPrefix(option, want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no option starting with %q in %v", want, cfg.Options)
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func (s *stubDriver) printed(fragment string) bool {
	for _, info := range s.infos {
		if strings.Contains(info, fragment) {
			return true
		}
	}
	return false
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func writeAvatar(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatalf("write avatar: %v", err)
	}
	return path
}

func newSession(t *testing.T, driver *stubDriver, transport submit.Transport) (*Session, *session.Store) {
	t.Helper()
	review, err := text.New()
	if err != nil {
		t.Fatalf("text renderer: %v", err)
	}
	sess := New(WithPromptDriver(driver), WithReviewRenderer(review))
	clock := func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }
	store := session.New(
		session.WithNotifier(sess.Notifier()),
		session.WithPipeline(submit.NewPipeline(transport, submit.WithClock(clock), submit.WithNotifier(sess.Notifier()))),
	)
	return sess, store
}

func TestSession_FillAndSubmit(t *testing.T) {
	var sent submit.Payload
	transport := submit.TransportFunc(func(_ context.Context, p submit.Payload) (submit.Response, error) {
		sent = p
		return submit.Response{StatusCode: http.StatusOK, OK: true}, nil
	})
	driver := &stubDriver{
		selects: []string{"First Name", "Last Name", "Age", "Email Address", "Date", "Avatar", "Member: 1", "Submit", "Quit"},
		inputs: []string{
			"Jane", "Doe", "30", "jane@example.com", "1994-01-10",
			writeAvatar(t),
			"John", "Brother", "12",
		},
		confirms: []bool{true},
	}
	sess, store := newSession(t, driver, transport)

	if err := sess.Run(context.Background(), store); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sent.Entries) != 9 {
		t.Fatalf("expected 9 payload entries, got %d", len(sent.Entries))
	}
	if !driver.printed("[ok] Awesome !, submission received.") {
		t.Fatalf("expected success notification, got %v", driver.infos)
	}
	if !driver.printed("Name: John") {
		t.Fatalf("expected review before submit, got %v", driver.infos)
	}
	if store.Form().Firstname != "" {
		t.Fatalf("form should reset after success")
	}
}

// cancelOnConfirm cancels the session context as soon as the user confirms.
type cancelOnConfirm struct {
	*stubDriver
	cancel context.CancelFunc
}

func (c cancelOnConfirm) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	ok, err := c.stubDriver.Confirm(ctx, cfg)
	c.cancel()
	return ok, err
}

func TestSession_ConfirmedSubmitSurvivesCancel(t *testing.T) {
	var transportErr error
	calls := 0
	transport := submit.TransportFunc(func(ctx context.Context, _ submit.Payload) (submit.Response, error) {
		calls++
		transportErr = ctx.Err()
		return submit.Response{StatusCode: http.StatusOK, OK: true}, nil
	})
	driver := &stubDriver{
		selects: []string{"First Name", "Last Name", "Age", "Email Address", "Date", "Avatar", "Member: 1", "Submit", "Quit"},
		inputs: []string{
			"Jane", "Doe", "30", "jane@example.com", "1994-01-10",
			writeAvatar(t),
			"John", "Brother", "12",
		},
		confirms: []bool{true},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	review, err := text.New()
	if err != nil {
		t.Fatalf("text renderer: %v", err)
	}
	sess := New(WithPromptDriver(cancelOnConfirm{stubDriver: driver, cancel: cancel}), WithReviewRenderer(review))
	store := session.New(
		session.WithNotifier(sess.Notifier()),
		session.WithPipeline(submit.NewPipeline(transport, submit.WithNotifier(sess.Notifier()))),
	)

	if err := sess.Run(ctx, store); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancelled session to stop, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one transport call, got %d", calls)
	}
	if transportErr != nil {
		t.Fatalf("transport saw a cancelled context: %v", transportErr)
	}
	if store.Form().Firstname != "" {
		t.Fatalf("form should reset after success")
	}
}

func TestSession_AddMemberRequiresCompleteEntry(t *testing.T) {
	driver := &stubDriver{selects: []string{"Add A Family Member", "Quit"}}
	sess, store := newSession(t, driver, nil)

	if err := sess.Run(context.Background(), store); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.Form().FamilyMembers) != 1 {
		t.Fatalf("member must not be added")
	}
	if !driver.printed("[!] Please complete all fields on previous family member forms") {
		t.Fatalf("expected incomplete member notification, got %v", driver.infos)
	}
}

func TestSession_RemoveOnlyOfferedWithSeveralMembers(t *testing.T) {
	driver := &stubDriver{
		selects: []string{"Member: 1", "Add A Family Member", "Remove A Family Member", "Member: 1", "Quit"},
		inputs:  []string{"John", "Brother", "12"},
	}
	sess, store := newSession(t, driver, nil)

	if err := sess.Run(context.Background(), store); err != nil {
		t.Fatalf("run: %v", err)
	}
	members := store.Form().FamilyMembers
	if len(members) != 1 || members[0].Name != "" {
		t.Fatalf("expected the blank second member to remain, got %+v", members)
	}

	var labels []string
	for _, item := range sess.menu(store) {
		labels = append(labels, item.label)
	}
	if strings.Contains(strings.Join(labels, "|"), "Remove A Family Member") {
		t.Fatalf("remove must be hidden for a single member: %v", labels)
	}
}

func TestSession_RejectedSubmissionKeepsForm(t *testing.T) {
	driver := &stubDriver{
		selects:  []string{"First Name", "Submit", "Quit"},
		inputs:   []string{"Jane"},
		confirms: []bool{true},
	}
	sess, store := newSession(t, driver, submit.TransportFunc(func(context.Context, submit.Payload) (submit.Response, error) {
		t.Fatalf("transport must not be called")
		return submit.Response{}, nil
	}))

	if err := sess.Run(context.Background(), store); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.printed("[!] All fields are required") {
		t.Fatalf("expected required-field notification, got %v", driver.infos)
	}
	if store.Form().Firstname != "Jane" {
		t.Fatalf("form must be kept after rejection")
	}
}

func TestSession_AbortAndNilStore(t *testing.T) {
	sess := New(WithPromptDriver(&stubDriver{}))
	if err := sess.Run(context.Background(), session.New()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if err := sess.Run(context.Background(), nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestSurveyDriver_InfoWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	driver := newSurveyDriver(&buf)
	if err := driver.Info(context.Background(), "hello"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
