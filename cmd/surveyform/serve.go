package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	surveyform "github.com/goliatone/go-surveyform"
	"github.com/goliatone/go-surveyform/internal/metrics"
	"github.com/goliatone/go-surveyform/internal/server"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the survey form over HTTP",
	Long: `Serve the survey form over HTTP. Every browser session gets its own form
state; sessions expire after server.session_ttl of inactivity.

Examples:
  # Serve on the configured address
  surveyform serve

  # Serve offline against the embedded question bank
  SURVEYFORM_QUESTIONS_LOCAL_BANK=true \
  SURVEYFORM_QUESTIONS_ENDPOINT=http://localhost:8080/api/questions \
  surveyform serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	fetcher, err := newFetcher(cfg.Questions)
	if err != nil {
		return err
	}

	themeCfg, err := render.ResolveTheme(render.DefaultManifest(), cfg.Theme.Variant)
	if err != nil {
		return err
	}
	registry, err := surveyform.NewRegistry(html.WithStylesheetURL(server.StylesheetURL()))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m := metrics.New()
	sessionLogger := logger.Named("survey")
	store := survey.NewStore(ctx, func(ctx context.Context) *survey.Controller {
		return survey.NewController(ctx, fetcher,
			survey.WithLogger(sessionLogger),
			survey.WithRecorder(m),
			survey.WithFetchTimeout(cfg.Questions.RequestTimeout),
		)
	},
		survey.WithCapacity(cfg.Server.MaxSessions),
		survey.WithTTL(cfg.Server.SessionTTL),
	)
	defer store.Close()
	m.WatchSessions(store.Len)

	opts := []server.Option{
		server.WithRenderers(registry),
		server.WithTheme(themeCfg),
		server.WithLogger(logger.Named("http")),
		server.WithMetricsHandler(m.Handler()),
		server.WithCookie(cfg.Server.CookieName, cfg.Server.SecureCookie, cfg.Server.SessionTTL),
	}
	if cfg.Questions.LocalBank {
		opts = append(opts, server.WithLocalBank())
	}
	handler, err := server.New(store, opts...)
	if err != nil {
		return err
	}

	logger.Info("starting surveyform",
		zap.String("addr", cfg.Server.Addr),
		zap.String("questions_endpoint", cfg.Questions.Endpoint),
		zap.Bool("local_bank", cfg.Questions.LocalBank),
	)
	return server.ListenAndServe(ctx, cfg.Server.Addr, handler, cfg.Server.ShutdownGrace, logger)
}
