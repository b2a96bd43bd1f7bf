package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-surveyform/pkg/topic"
)

// HTTPError lets guards choose the rejection status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a minimal HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// GuardFunc may reject a request before the bank answers it.
type GuardFunc func(r *http.Request) error

// BankOptions configures the local question bank handler.
type BankOptions struct {
	RoutePath string
	Param     string
	Guard     GuardFunc
	Dataset   Dataset
}

// BankOptionFn mutates BankOptions.
type BankOptionFn func(*BankOptions)

// DefaultBankOptions mirrors the public bank's route and parameter.
func DefaultBankOptions() BankOptions {
	return BankOptions{
		RoutePath: "/api/questions",
		Param:     SurveyTypeParam,
	}
}

// NewBankOptions applies fns over the defaults.
func NewBankOptions(fns ...BankOptionFn) BankOptions {
	opts := DefaultBankOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/questions"
	}
	if opts.Param == "" {
		opts.Param = SurveyTypeParam
	}
	if opts.Dataset != nil {
		opts.Dataset = opts.Dataset.Clone()
	}
	return opts
}

func WithRoutePath(path string) BankOptionFn {
	return func(o *BankOptions) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithParam(name string) BankOptionFn {
	return func(o *BankOptions) {
		if o == nil {
			return
		}
		o.Param = name
	}
}

func WithGuard(guard GuardFunc) BankOptionFn {
	return func(o *BankOptions) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithDataset(dataset Dataset) BankOptionFn {
	return func(o *BankOptions) {
		if o == nil {
			return
		}
		o.Dataset = dataset.Clone()
	}
}

// BankHandler serves GET/HEAD {route}?surveyType=<topic> with a JSON array
// of questions.
func BankHandler(fns ...BankOptionFn) http.Handler {
	return BankHandlerWithOptions(NewBankOptions(fns...))
}

// BankHandlerWithOptions builds the handler from a pre-constructed options
// value; defaults are re-applied.
func BankHandlerWithOptions(opts BankOptions) http.Handler {
	opts = NewBankOptions(func(o *BankOptions) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		selected, ok := topic.Parse(r.URL.Query().Get(opts.Param))
		if !ok {
			http.Error(w, fmt.Sprintf("unknown %s", opts.Param), http.StatusBadRequest)
			return
		}

		dataset := opts.Dataset
		if dataset == nil {
			loaded, err := DefaultDataset()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			dataset = loaded
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(dataset.For(selected))
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// Mux is the minimal interface required to register a handler. It is
// satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the bank route under basePath.
func MountPath(basePath string, fns ...BankOptionFn) string {
	opts := NewBankOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the bank handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...BankOptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("questions: missing mux")
	}
	opts := NewBankOptions(fns...)
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, BankHandlerWithOptions(opts))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
