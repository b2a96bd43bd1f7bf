package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// Title heads every rendering of the survey.
const Title = "Advanced Survey Form"

// OptionView is a select option with its selection state resolved.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FieldView is a visible field with its current value and error.
type FieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Control     string       `json:"control"`
	InputType   string       `json:"input_type"`
	Placeholder string       `json:"placeholder,omitempty"`
	Rows        int          `json:"rows,omitempty"`
	Value       string       `json:"value"`
	Error       string       `json:"error,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
}

// QuestionView is a follow-up question with the current answer.
type QuestionView struct {
	ID questions.ID `json:"id"`
	// Field is the answer input name, precomputed so templates never
	// reformat the id.
	Field  string `json:"field"`
	Text   string `json:"question"`
	Answer string `json:"answer"`
}

// Page is the renderer-facing projection of a survey snapshot.
type Page struct {
	Title     string              `json:"title"`
	Phase     survey.Phase        `json:"phase"`
	Fields    []FieldView         `json:"fields"`
	Summary   *survey.SummaryView `json:"summary,omitempty"`
	Questions []QuestionView      `json:"questions"`
	Fetching  bool                `json:"fetching"`
}

var questionPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from remote text. The result is unescaped text;
// renderers escape it for their own output.
func PlainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(questionPolicy.Sanitize(raw)))
}

// NewPage projects a snapshot. Only the selected topic's group is included;
// question text is reduced to plain text.
func NewPage(snapshot survey.Snapshot) Page {
	selected, _ := snapshot.SelectedTopic()
	values := snapshot.Form.Values
	errs := snapshot.Form.Errors

	page := Page{
		Title:     Title,
		Phase:     snapshot.Phase,
		Fetching:  snapshot.Fetching(),
		Questions: []QuestionView{},
	}

	for _, field := range topic.Layout(selected) {
		page.Fields = append(page.Fields, fieldView(field, values.Get(field.Name), errs[field.Name]))
	}

	if view, ok := survey.Summary(snapshot.Submitted); ok {
		page.Summary = &view
	}

	for _, q := range snapshot.Questions {
		page.Questions = append(page.Questions, QuestionView{
			ID:     q.ID,
			Field:  questions.FieldName(q.ID),
			Text:   PlainText(q.Text),
			Answer: snapshot.Responses[q.ID],
		})
	}
	return page
}

func fieldView(field model.Field, value, message string) FieldView {
	view := FieldView{
		Name:        field.Name,
		Label:       field.Label,
		Control:     string(field.Control),
		InputType:   field.InputType(),
		Placeholder: field.Placeholder,
		Rows:        field.Rows,
		Value:       value,
		Error:       message,
	}
	for _, opt := range field.Options {
		view.Options = append(view.Options, OptionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == value,
		})
	}
	return view
}

// Field returns the view for name.
func (p Page) Field(name string) (FieldView, bool) {
	for _, field := range p.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}
