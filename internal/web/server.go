// Package web serves the form to a local browser.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/pkg/avatar"
	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/session"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// Route paths.
const (
	RouteIndex        = "/"
	RouteAvatar       = "/avatar"
	RouteAddMember    = "/members"
	RouteRemoveMember = "/members/{index:[0-9]+}/delete"
	RouteSubmit       = "/submit"
	RouteHealth       = "/healthz"
)

const uploadSlack = 1 << 20

// ErrUnreadablePost is returned when a posted form cannot be parsed, for
// example because the body exceeds the upload limit.
var ErrUnreadablePost = errors.New("web: unreadable form post")

// Option configures a Server.
type Option func(*Server)

// WithTheme sets the theme passed to the renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithAssets serves fsys under prefix, for example the renderer stylesheet.
func WithAssets(prefix string, fsys fs.FS) Option {
	return func(s *Server) {
		if prefix == "" || fsys == nil {
			return
		}
		s.assetPrefix = prefix
		s.assets = fsys
	}
}

// WithLogger sets the request logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server exposes one form session over HTTP. Store edits are serialised by a
// mutex; the network submission runs outside it so the page can show the
// in-flight state.
type Server struct {
	mu       sync.Mutex
	store    *session.Store
	flash    *notify.Recorder
	renderer render.Renderer
	theme    *theme.RendererConfig
	logger   logrus.FieldLogger
	routes   render.Routes

	assetPrefix string
	assets      fs.FS
}

// New builds a server around store. flash must be the recorder the store and
// its pipeline notify into; it is drained on every page render.
func New(store *session.Store, flash *notify.Recorder, renderer render.Renderer, options ...Option) *Server {
	s := &Server{
		store:    store,
		flash:    flash,
		renderer: renderer,
		logger:   discardLogger(),
		routes:   render.DefaultRoutes(),
	}
	if s.flash == nil {
		s.flash = &notify.Recorder{}
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc(RouteIndex, s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc(RouteAvatar, s.handleAvatar).Methods(http.MethodGet)
	r.HandleFunc(RouteAddMember, s.handleAddMember).Methods(http.MethodPost)
	r.HandleFunc(RouteRemoveMember, s.handleRemoveMember).Methods(http.MethodPost)
	r.HandleFunc(RouteSubmit, s.handleSubmit).Methods(http.MethodPost)
	if s.assets != nil {
		r.PathPrefix(s.assetPrefix).Handler(
			http.StripPrefix(s.assetPrefix, http.FileServerFS(s.assets)),
		).Methods(http.MethodGet)
	}
	r.HandleFunc(RouteHealth, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "OK\n")
	}).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page := render.NewPage(s.store.Form(), s.store.Control(), s.routes)
	s.mu.Unlock()

	out, err := s.renderer.Render(r.Context(), page, render.RenderOptions{
		Notifications: s.flash.Drain(),
		Theme:         s.theme,
	})
	if err != nil {
		s.logger.WithError(err).Error("render page")
		http.Error(w, "unable to render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

func (s *Server) handleAvatar(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	reader, mediaType, ok := avatar.Preview(s.store.Form().Avatar)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no avatar selected", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.Copy(w, reader)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if err := s.applyPosted(w, r); err == nil {
		_ = s.store.AddMember()
	}
	s.mu.Unlock()
	s.redirectHome(w, r)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid member index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if err = s.applyPosted(w, r); err == nil {
		err = s.store.RemoveMember(index)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).WithField("index", index).Debug("remove member refused")
	}
	s.redirectHome(w, r)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	pipeline := s.store.Pipeline()
	if pipeline == nil {
		http.Error(w, "submission is not configured", http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	err := s.applyPosted(w, r)
	form := s.store.Form()
	s.mu.Unlock()
	if err != nil {
		s.redirectHome(w, r)
		return
	}

	// The attempt runs to completion even if the browser goes away.
	outcome, err := pipeline.Submit(context.WithoutCancel(r.Context()), form)
	switch {
	case errors.Is(err, submit.ErrInFlight):
		s.logger.Debug("submit ignored, attempt in flight")
	case err != nil:
		s.logger.WithError(err).Error("submit")
	case outcome.Succeeded():
		s.mu.Lock()
		s.store.Reset()
		s.mu.Unlock()
	}
	s.redirectHome(w, r)
}

// applyPosted copies the posted inputs into the store so edits are kept
// whichever button submitted the form. An unreadable body leaves the store
// untouched and returns an error; callers must then skip their action. Callers
// hold s.mu.
func (s *Server) applyPosted(w http.ResponseWriter, r *http.Request) error {
	intake := s.store.Intake()
	limit := intake.MaxBytes
	if limit <= 0 {
		limit = avatar.DefaultMaxBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+uploadSlack)

	if err := r.ParseMultipartForm(limit + uploadSlack); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			notify.Error(s.flash, intake.TooLarge().Error())
			return fmt.Errorf("%w: %w", ErrUnreadablePost, err)
		case errors.Is(err, http.ErrNotMultipart):
			if err := r.ParseForm(); err != nil {
				s.logger.WithError(err).Debug("parse form")
				return fmt.Errorf("%w: %w", ErrUnreadablePost, err)
			}
		default:
			s.logger.WithError(err).Debug("parse multipart form")
			return fmt.Errorf("%w: %w", ErrUnreadablePost, err)
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	for _, d := range model.PrimaryFields() {
		if values, ok := r.PostForm[d.Name]; ok && len(values) > 0 {
			_ = s.store.SetField(d.Name, values[0])
		}
	}

	for i := range s.store.Form().FamilyMembers {
		for _, d := range model.FamilyMemberFields() {
			if values, ok := r.PostForm[submit.MemberKey(i, d.Name)]; ok && len(values) > 0 {
				_ = s.store.UpdateMember(i, d.Name, values[0])
			}
		}
	}

	file, header, err := r.FormFile(model.FieldAvatar)
	if err != nil {
		return nil
	}
	defer file.Close()
	_ = s.store.AcceptAvatar(header.Filename, header.Header.Get("Content-Type"), file)
	return nil
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Debug("request")
	})
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
