// Package server hosts the survey over HTTP: one survey controller per browser
// session, rendered through the renderer registry.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

// ErrNoStore is returned when the server has no session store.
var ErrNoStore = errors.New("server: session store is required")

// Server routes requests to session controllers.
type Server struct {
	router chi.Router
	store  *survey.Store
	opts   Options
}

var _ http.Handler = (*Server)(nil)

// New builds the router.
func New(store *survey.Store, fns ...Option) (*Server, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	opts := NewOptions(fns...)
	if opts.Renderers == nil {
		return nil, errors.New("server: renderer registry is required")
	}
	if !opts.Renderers.Has(opts.DefaultFormat) {
		return nil, fmt.Errorf("server: default format %q is not registered", opts.DefaultFormat)
	}

	s := &Server{store: store, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Post("/answers", s.handleAnswers)
	r.Get("/api/survey", s.handleSnapshot)

	r.Get("/healthz", handleHealth)
	r.Get("/openapi.yaml", handleContract)
	r.Handle(DefaultAssetsPath+"*", http.StripPrefix(DefaultAssetsPath, http.FileServer(http.FS(html.AssetsFS()))))

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	if opts.Bank != nil {
		pattern, err := questions.RegisterRoutes(r, "", opts.Bank...)
		if err != nil {
			return nil, fmt.Errorf("server: mount question bank: %w", err)
		}
		opts.Logger.Info("local question bank mounted", zap.String("path", pattern))
	}

	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// StylesheetURL is where the bundled stylesheet is served.
func StylesheetURL() string {
	return DefaultAssetsPath + html.StylesheetName
}

func zapSession(sess *survey.Session) zap.Field {
	if sess == nil {
		return zap.Skip()
	}
	return zap.String("session", sess.ID)
}
