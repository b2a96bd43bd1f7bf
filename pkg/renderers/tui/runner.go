// Package tui runs the survey in a terminal: prompts drive the same survey
// controller the HTTP front end uses.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/topic"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// Runner walks a respondent through the form, submits it, and collects the
// follow-up answers.
type Runner struct {
	controller  *survey.Controller
	driver      PromptDriver
	out         io.Writer
	text        TextRenderer
	theme       Theme
	maxAttempts int
}

// NewRunner builds a runner on controller. The default driver uses the
// process terminal.
func NewRunner(controller *survey.Controller, options ...Option) (*Runner, error) {
	if controller == nil {
		return nil, ErrNoController
	}
	r := &Runner{
		controller: controller,
		out:        os.Stdout,
		theme:      DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r, nil
}

// Run prompts until a submit is accepted, waits for the follow-up questions,
// prompts for each answer, and writes the text summary. It returns the final
// snapshot.
func (r *Runner) Run(ctx context.Context) (survey.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	for attempt := 1; ; attempt++ {
		if err := r.promptForm(ctx); err != nil {
			return r.controller.Snapshot(), err
		}
		state := r.controller.Dispatch(survey.SubmitRequested{})
		if state.Phase != survey.PhaseInvalid {
			break
		}
		if err := r.reportIssues(ctx, state.Form.Errors); err != nil {
			return state, err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return state, fmt.Errorf("tui: form still invalid after %d attempts", attempt)
		}
	}

	if r.controller.Snapshot().Fetching() {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Loading follow-up questions..."); err != nil {
			return r.controller.Snapshot(), err
		}
	}
	r.controller.Wait()

	state := r.controller.Snapshot()
	for _, q := range state.Questions {
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: render.PlainText(q.Text),
			Default: state.Responses[q.ID],
		})
		if err != nil {
			return r.controller.Snapshot(), err
		}
		r.controller.Dispatch(survey.AnswerChanged{ID: q.ID, Value: answer})
	}

	state = r.controller.Snapshot()
	summary, err := r.text.Render(ctx, render.NewPage(state), render.RenderOptions{})
	if err != nil {
		return state, err
	}
	if _, err := r.out.Write(summary); err != nil {
		return state, fmt.Errorf("tui: write summary: %w", err)
	}
	return state, nil
}

// promptForm asks for every visible field, defaulting to the current values.
// The topic is asked before its group so the group follows the selection.
func (r *Runner) promptForm(ctx context.Context) error {
	for _, field := range []model.Field{model.FullName, model.Email, topic.Selector()} {
		if err := r.promptField(ctx, field); err != nil {
			return err
		}
	}
	if selected, ok := r.controller.Snapshot().SelectedTopic(); ok {
		for _, field := range selected.Fields() {
			if err := r.promptField(ctx, field); err != nil {
				return err
			}
		}
	}
	return r.promptField(ctx, model.Feedback)
}

func (r *Runner) promptField(ctx context.Context, field model.Field) error {
	current := r.controller.Snapshot().Form.Values.Get(field.Name)

	var (
		value string
		err   error
	)
	switch field.Control {
	case model.ControlSelect:
		value, err = r.promptSelect(ctx, field, current)
	case model.ControlTextArea:
		value, err = r.driver.TextArea(ctx, TextAreaConfig{Message: field.Label, Default: current})
	default:
		value, err = r.driver.Input(ctx, InputConfig{Message: field.Label, Default: current})
	}
	if err != nil {
		return err
	}

	r.controller.Dispatch(survey.FieldChanged{Change: form.Change{
		Name:  field.Name,
		Value: value,
		Type:  form.FieldType(field.InputType()),
	}})
	return nil
}

func (r *Runner) promptSelect(ctx context.Context, field model.Field, current string) (string, error) {
	options := make([]string, 0, len(field.Options))
	defaultIndex := -1
	for i, opt := range field.Options {
		options = append(options, opt.Label)
		if opt.Value == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Placeholder,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", nil
	}
	return field.Options[idx].Value, nil
}

func (r *Runner) reportIssues(ctx context.Context, errs form.Errors) error {
	for _, issue := range validation.Issues(errs) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+issue.Message); err != nil {
			return err
		}
	}
	return nil
}
