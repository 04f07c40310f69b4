package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-ecollection/internal/config"
	"github.com/goliatone/go-ecollection/internal/logging"
	"github.com/goliatone/go-ecollection/internal/web"
	"github.com/goliatone/go-ecollection/pkg/avatar"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/renderers/text"
	"github.com/goliatone/go-ecollection/pkg/renderers/tui"
	"github.com/goliatone/go-ecollection/pkg/renderers/vanilla"
	"github.com/goliatone/go-ecollection/pkg/session"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

const (
	appName     = "ecollect"
	assetPrefix = "/assets"
)

func main() {
	mode := flag.String("mode", "prompt", "front end: prompt or web")
	configPath := flag.String("config", "", "YAML config file")
	environment := flag.String("env", "", "environment: development or production")
	baseURL := flag.String("base-url", "", "API base URL override")
	listen := flag.String("listen", "", "web mode listen address")
	logLevel := flag.String("log-level", "", "log level")
	rendererName := flag.String("renderer", "vanilla", "web mode page renderer")
	variant := flag.String("theme-variant", "", "theme variant, e.g. dark")
	templatesDir := flag.String("templates-dir", "", "directory overriding the embedded page templates")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "env":
			cfg.Environment = *environment
		case "base-url":
			cfg.BaseURL = *baseURL
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		case "theme-variant":
			cfg.ThemeVariant = *variant
		case "templates-dir":
			cfg.TemplatesDir = *templatesDir
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(appName, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "prompt":
		err = runPrompt(ctx, cfg, logger)
	case "web":
		err = runWeb(ctx, cfg, *rendererName, logger)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if errors.Is(err, tui.ErrAborted) {
		return
	}
	if err != nil {
		logger.Fatalf("%v", err)
	}
}

func newClient(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) *submit.Client {
	contract, err := submit.LoadContract(ctx)
	if err != nil {
		logger.WithError(err).Warn("Contract checks disabled")
	}
	logger.WithField("endpoint", cfg.Endpoint()).Info("Submission endpoint")
	return submit.NewClient(cfg.Endpoint(),
		submit.WithContract(contract),
		submit.WithClientLogger(logger),
	)
}

func newStore(client submit.Transport, sink notify.Sink, cfg config.Config, logger logrus.FieldLogger) *session.Store {
	pipeline := submit.NewPipeline(client,
		submit.WithNotifier(sink),
		submit.WithLogger(logger),
	)
	return session.New(
		session.WithNotifier(sink),
		session.WithIntake(avatar.Intake{MaxBytes: cfg.MaxAvatarBytes, Types: avatar.DefaultTypes}),
		session.WithPipeline(pipeline),
		session.WithLogger(logger),
	)
}

func runPrompt(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	review, err := text.New()
	if err != nil {
		return err
	}
	sess := tui.New(
		tui.WithReviewRenderer(review),
		tui.WithLogger(logger),
	)
	sink := notify.Multi(sess.Notifier(), notify.LogSink{Logger: logger})
	store := newStore(newClient(ctx, cfg, logger), sink, cfg, logger)
	return sess.Run(ctx, store)
}

func runWeb(ctx context.Context, cfg config.Config, rendererName string, logger *logrus.Logger) error {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithTemplatesDir(cfg.TemplatesDir))
	if err != nil {
		return err
	}
	review, err := text.New()
	if err != nil {
		return err
	}
	registry.MustRegister(html)
	registry.MustRegister(review)

	renderer, err := registry.Get(rendererName)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.List())
	}

	manifest := render.DefaultTheme()
	manifest.Assets = theme.Assets{
		Prefix: assetPrefix,
		Files:  map[string]string{vanilla.ThemeStylesheetAsset: vanilla.StylesheetName},
	}
	provider, err := render.NewThemeProvider(manifest)
	if err != nil {
		return err
	}
	themeCfg, err := render.SelectTheme(provider, manifest.Name, cfg.ThemeVariant)
	if err != nil {
		return err
	}

	flash := &notify.Recorder{}
	sink := notify.Multi(flash, notify.LogSink{Logger: logger})
	store := newStore(newClient(ctx, cfg, logger), sink, cfg, logger)

	server := web.New(store, flash, renderer,
		web.WithTheme(themeCfg),
		web.WithLogger(logger),
		web.WithAssets(assetPrefix+"/", vanilla.AssetsFS()),
	)
	return server.ListenAndServe(ctx, cfg.Listen)
}
