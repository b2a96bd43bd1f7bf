package survey

import (
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// SummaryRow is one labelled value.
type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummarySection groups the rows of the submitted topic.
type SummarySection struct {
	Heading string       `json:"heading"`
	Rows    []SummaryRow `json:"rows"`
}

// SummaryView is the read-only rendering of a submission.
type SummaryView struct {
	Rows     []SummaryRow    `json:"rows"`
	Section  *SummarySection `json:"section,omitempty"`
	Feedback SummaryRow      `json:"feedback"`
}

// Summary builds the summary of submitted values. Only the submitted topic's
// group appears; values of hidden groups are left out. ok is false when
// nothing has been submitted.
func Summary(submitted form.Values) (SummaryView, bool) {
	if submitted == nil {
		return SummaryView{}, false
	}

	view := SummaryView{
		Rows: []SummaryRow{
			row(model.FullName, submitted),
			row(model.Email, submitted),
			{Label: model.SurveyTopicLabel, Value: submitted.Get(model.FieldSurveyTopic)},
		},
		Feedback: row(model.Feedback, submitted),
	}

	if selected, ok := topic.Parse(submitted.Get(model.FieldSurveyTopic)); ok {
		section := &SummarySection{Heading: selected.Name() + " Section"}
		for _, field := range selected.Fields() {
			section.Rows = append(section.Rows, row(field, submitted))
		}
		view.Section = section
	}
	return view, true
}

func row(field model.Field, values form.Values) SummaryRow {
	return SummaryRow{Label: field.Label, Value: values.Get(field.Name)}
}
