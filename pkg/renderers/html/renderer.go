// Package html renders the survey page as a server-side HTML document.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/goliatone/go-surveyform/pkg/render"
	rendertemplate "github.com/goliatone/go-surveyform/pkg/render/template"
	gotemplate "github.com/goliatone/go-surveyform/pkg/render/template/gotemplate"
)

// RefreshAction is the value of the action field that re-renders the form
// without submitting, so a topic change reveals its group.
const RefreshAction = "refresh"

// ActionFieldName names the submit button field.
const ActionFieldName = "_action"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheetURL    string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheetURL links a stylesheet from the page head.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = url
	}
}

// Renderer renders render.Page values through pongo2 templates.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	stylesheetURL string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithSetName("surveyform-html"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheetURL: cfg.stylesheetURL}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/page.tmpl", r.viewData(page, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewData(page render.Page, options render.RenderOptions) map[string]any {
	action := options.Action
	if action == "" {
		action = "/"
	}
	answersAction := options.AnswersAction
	if answersAction == "" {
		answersAction = "/answers"
	}

	fields := make([]map[string]any, 0, len(page.Fields))
	for _, field := range page.Fields {
		rows := ""
		if field.Rows > 0 {
			rows = strconv.Itoa(field.Rows)
		}
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"label":       field.Label,
			"control":     field.Control,
			"input_type":  field.InputType,
			"placeholder": field.Placeholder,
			"rows":        rows,
			"value":       field.Value,
			"error":       field.Error,
			"options":     field.Options,
		})
	}

	refresh := ""
	if page.Fetching && options.RefreshAfter > 0 {
		refresh = strconv.Itoa(int(math.Ceil(options.RefreshAfter.Seconds())))
	}

	return map[string]any{
		"title":          page.Title,
		"phase":          string(page.Phase),
		"fields":         fields,
		"summary":        page.Summary,
		"questions":      page.Questions,
		"fetching":       page.Fetching,
		"refresh":        refresh,
		"action":         action,
		"answers_action": answersAction,
		"hidden":         render.NormalizeHidden(options.Hidden...),
		"action_field":   ActionFieldName,
		"refresh_action": RefreshAction,
		"stylesheet":     r.stylesheetURL,
		"theme_style":    render.CSSVarsStyle(options.Theme),
	}
}
