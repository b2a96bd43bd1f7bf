package server

import (
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/render"
)

// Defaults applied by NewOptions.
const (
	DefaultCookieName   = "surveyform_session"
	DefaultFormat       = "html"
	DefaultRefreshAfter = 2 * time.Second
	DefaultAssetsPath   = "/assets/"
)

// Options configures the HTTP front end.
type Options struct {
	Renderers     *render.Registry
	DefaultFormat string
	Theme         *theme.RendererConfig
	Logger        *zap.Logger
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// Bank mounts the local question bank when not nil.
	Bank         []questions.BankOptionFn
	CookieName   string
	SecureCookie bool
	SessionTTL   time.Duration
	RefreshAfter time.Duration
}

// Option mutates Options.
type Option func(*Options)

// NewOptions applies fns over the defaults.
func NewOptions(fns ...Option) Options {
	opts := Options{
		DefaultFormat: DefaultFormat,
		Logger:        zap.NewNop(),
		CookieName:    DefaultCookieName,
		RefreshAfter:  DefaultRefreshAfter,
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = DefaultFormat
	}
	return opts
}

func WithRenderers(registry *render.Registry) Option {
	return func(o *Options) {
		o.Renderers = registry
	}
}

func WithDefaultFormat(name string) Option {
	return func(o *Options) {
		o.DefaultFormat = name
	}
}

func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Options) {
		o.Theme = cfg
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetricsHandler(handler http.Handler) Option {
	return func(o *Options) {
		o.Metrics = handler
	}
}

// WithLocalBank mounts the embedded question bank at /api/questions.
func WithLocalBank(fns ...questions.BankOptionFn) Option {
	return func(o *Options) {
		o.Bank = append([]questions.BankOptionFn{}, fns...)
	}
}

// WithCookie sets the session cookie name and whether it is Secure. ttl
// becomes the cookie Max-Age; zero leaves a browser-session cookie.
func WithCookie(name string, secure bool, ttl time.Duration) Option {
	return func(o *Options) {
		o.CookieName = name
		o.SecureCookie = secure
		o.SessionTTL = ttl
	}
}

// WithRefreshAfter sets the reload hint shown while questions load. Zero
// disables it.
func WithRefreshAfter(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.RefreshAfter = d
		}
	}
}
