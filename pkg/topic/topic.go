// Package topic defines the closed set of survey topics. Each variant owns the
// conditional field group shown once it is selected and the identifier sent to
// the question bank.
package topic

import (
	"strings"

	"github.com/goliatone/go-surveyform/pkg/model"
)

// Topic is a survey topic variant. The unexported marker keeps the set closed:
// only Technology, Health, and Education satisfy it. An unselected topic is
// represented by the absence of a Topic.
type Topic interface {
	// Name is the wire identifier, also used as the select option value and
	// the surveyType query parameter.
	Name() string
	// Fields returns the conditional group, in render order.
	Fields() []model.Field

	topic()
}

type technology struct{}
type health struct{}
type education struct{}

var (
	Technology Topic = technology{}
	Health     Topic = health{}
	Education  Topic = education{}
)

var all = []Topic{Technology, Health, Education}

func (technology) Name() string { return "Technology" }
func (health) Name() string     { return "Health" }
func (education) Name() string  { return "Education" }

func (technology) topic() {}
func (health) topic()     {}
func (education) topic()  {}

func (technology) Fields() []model.Field {
	return []model.Field{
		{
			Name:        model.FieldFavoriteLanguage,
			Label:       "Favorite Programming Language",
			Control:     model.ControlSelect,
			Placeholder: "Select Language",
			Options:     model.OptionsFrom("JavaScript", "Python", "Java", "C#"),
		},
		{
			Name:    model.FieldYearsOfExperience,
			Label:   "Years of Experience",
			Control: model.ControlNumber,
		},
	}
}

func (health) Fields() []model.Field {
	return []model.Field{
		{
			Name:        model.FieldExerciseFrequency,
			Label:       "Exercise Frequency",
			Control:     model.ControlSelect,
			Placeholder: "Select Frequency",
			Options:     model.OptionsFrom("Daily", "Weekly", "Monthly", "Rarely"),
		},
		{
			Name:        model.FieldDietPreference,
			Label:       "Diet Preference",
			Control:     model.ControlSelect,
			Placeholder: "Select Preference",
			Options:     model.OptionsFrom("Vegetarian", "Vegan", "Non-Vegetarian"),
		},
	}
}

func (education) Fields() []model.Field {
	return []model.Field{
		{
			Name:        model.FieldHighestQualification,
			Label:       "Highest Qualification",
			Control:     model.ControlSelect,
			Placeholder: "Select Qualification",
			Options:     model.OptionsFrom("High School", "Bachelor's", "Master's", "PhD"),
		},
		{
			Name:    model.FieldFieldOfStudy,
			Label:   "Field of Study",
			Control: model.ControlText,
		},
	}
}

// All returns every topic in selector order.
func All() []Topic {
	return append([]Topic(nil), all...)
}

// Parse resolves a wire identifier. Matching is exact, mirroring the select
// option values; surrounding whitespace is ignored. The empty string reports
// ok=false (unselected).
func Parse(raw string) (Topic, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, false
	}
	for _, t := range all {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// NameOf returns the wire identifier or "" for an unselected topic.
func NameOf(t Topic) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

// Selector builds the topic select field with one option per variant.
func Selector() model.Field {
	options := make([]model.Option, 0, len(all))
	for _, t := range all {
		options = append(options, model.Option{Value: t.Name(), Label: t.Name()})
	}
	return model.Field{
		Name:        model.FieldSurveyTopic,
		Label:       model.SurveyTopicLabel,
		Control:     model.ControlSelect,
		Placeholder: model.SurveyTopicPlaceholder,
		Options:     options,
	}
}

// Layout returns the full ordered field list for the given selection: identity
// fields, the selector, the selected group (if any), and feedback.
func Layout(selected Topic) []model.Field {
	fields := []model.Field{model.FullName.Clone(), model.Email.Clone(), Selector()}
	if selected != nil {
		fields = append(fields, selected.Fields()...)
	}
	return append(fields, model.Feedback.Clone())
}
