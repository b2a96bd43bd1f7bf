// Package validation holds the survey rule set: a pure function from form
// values to per-field error messages.
package validation

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// Messages for the identity, topic, and feedback rules. Topic group fields use
// RequiredMessage with their catalogue label.
const (
	MsgFullNameRequired = "Full Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email address is invalid"
	MsgTopicRequired    = "Survey Topic is required"
	MsgTopicInvalid     = "Survey Topic is invalid"
	MsgFeedbackRequired = "Feedback is required"
	MsgFeedbackTooShort = "Feedback must be at least 50 characters"
)

// emailPattern is loose and unanchored: something, an @,
// something, a dot, something.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Issue is a single failing field, used where a stable ordering matters.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequiredMessage formats the message for a missing field.
func RequiredMessage(label string) string {
	return label + " is required"
}

// Validate evaluates every rule against values. Rules are independent; the
// result contains only the fields that failed.
func Validate(values form.Values) form.Errors {
	errs := form.Errors{}

	if values.Get(model.FieldFullName) == "" {
		errs[model.FieldFullName] = MsgFullNameRequired
	}

	switch email := values.Get(model.FieldEmail); {
	case email == "":
		errs[model.FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs[model.FieldEmail] = MsgEmailInvalid
	}

	raw := values.Get(model.FieldSurveyTopic)
	selected, ok := topic.Parse(raw)
	switch {
	case raw == "":
		errs[model.FieldSurveyTopic] = MsgTopicRequired
	case !ok:
		errs[model.FieldSurveyTopic] = MsgTopicInvalid
	default:
		for _, field := range selected.Fields() {
			if values.Get(field.Name) == "" {
				errs[field.Name] = RequiredMessage(field.Label)
			}
		}
	}

	switch feedback := values.Get(model.FieldFeedback); {
	case feedback == "":
		errs[model.FieldFeedback] = MsgFeedbackRequired
	case utf8.RuneCountInString(feedback) < model.FeedbackMinLength:
		errs[model.FieldFeedback] = MsgFeedbackTooShort
	}

	return errs
}

// Issues flattens errors into a slice ordered by the form layout, with any
// unknown fields appended alphabetically.
func Issues(errs form.Errors) []Issue {
	if len(errs) == 0 {
		return nil
	}

	order := make(map[string]int)
	position := 0
	add := func(name string) {
		if _, seen := order[name]; !seen {
			order[name] = position
			position++
		}
	}
	add(model.FieldFullName)
	add(model.FieldEmail)
	add(model.FieldSurveyTopic)
	for _, t := range topic.All() {
		for _, field := range t.Fields() {
			add(field.Name)
		}
	}
	add(model.FieldFeedback)

	out := make([]Issue, 0, len(errs))
	for field, message := range errs {
		out = append(out, Issue{Field: field, Message: message})
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, iKnown := order[out[i].Field]
		pj, jKnown := order[out[j].Field]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i].Field < out[j].Field
		}
	})
	return out
}
