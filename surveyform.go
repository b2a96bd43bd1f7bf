// Package surveyform exposes the survey form component from the module root:
// a renderer registry preloaded with the built-in renderers and a one-shot
// submit helper for callers that do not need a long-lived session.
package surveyform

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// Snapshot is the complete state of one survey session.
type Snapshot = survey.Snapshot

// RenderOptions carries per-request render data such as the CSRF field.
type RenderOptions = render.RenderOptions

// NewController exposes the controller constructor from the top-level module.
func NewController(ctx context.Context, fetcher questions.Fetcher, options ...survey.ControllerOption) *survey.Controller {
	return survey.NewController(ctx, fetcher, options...)
}

// NewRegistry returns a registry holding the HTML renderer (the default) and
// the plain text renderer.
func NewRegistry(options ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.NewTextRenderer()); err != nil {
		return nil, err
	}
	return registry, nil
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(surveyform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// Submit applies values to a fresh controller in form layout order, submits,
// and waits for the follow-up questions. A rejected submit is not an error:
// the returned snapshot carries the field errors.
func Submit(ctx context.Context, fetcher questions.Fetcher, values form.Values, options ...survey.ControllerOption) (Snapshot, error) {
	ctrl := survey.NewController(ctx, fetcher, options...)
	defer ctrl.Close()

	selected, _ := topic.Parse(values.Get(model.FieldSurveyTopic))
	for _, field := range topic.Layout(selected) {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		ctrl.Dispatch(survey.FieldChanged{Change: form.Change{
			Name:  field.Name,
			Value: value,
			Type:  form.FieldType(field.InputType()),
		}})
	}

	ctrl.Dispatch(survey.SubmitRequested{})
	ctrl.Wait()

	if err := ctx.Err(); err != nil {
		return ctrl.Snapshot(), fmt.Errorf("surveyform: submit: %w", err)
	}
	return ctrl.Snapshot(), nil
}
