package survey_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

func TestSummary_SubmittedTopicSectionOnly(t *testing.T) {
	submitted := healthValues()
	submitted[model.FieldFavoriteLanguage] = "Go"

	got, ok := survey.Summary(submitted)
	if !ok {
		t.Fatalf("expected a summary")
	}

	want := survey.SummaryView{
		Rows: []survey.SummaryRow{
			{Label: "Full Name", Value: "Ada Lovelace"},
			{Label: "Email", Value: "ada@example.com"},
			{Label: "Survey Topic", Value: "Health"},
		},
		Section: &survey.SummarySection{
			Heading: "Health Section",
			Rows: []survey.SummaryRow{
				{Label: "Exercise Frequency", Value: "Weekly"},
				{Label: "Diet Preference", Value: "Vegan"},
			},
		},
		Feedback: survey.SummaryRow{Label: "Feedback", Value: submitted[model.FieldFeedback]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_NothingSubmitted(t *testing.T) {
	if _, ok := survey.Summary(nil); ok {
		t.Fatalf("expected no summary before the first submit")
	}

	view, ok := survey.Summary(form.Values{})
	if !ok || view.Section != nil {
		t.Fatalf("unexpected summary %#v", view)
	}
}
