package survey

import (
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// Event is an input to the machine.
type Event interface {
	event()
}

// FieldChanged carries a change to one form field.
type FieldChanged struct {
	Change form.Change
}

// SubmitRequested asks the machine to validate and submit the form.
type SubmitRequested struct{}

// QuestionsLoaded delivers the result of fetch Seq.
type QuestionsLoaded struct {
	Seq       uint64
	Questions []questions.Question
}

// QuestionsFailed reports that fetch Seq did not produce a question set.
type QuestionsFailed struct {
	Seq uint64
	Err error
}

// AnswerChanged updates the answer to one follow-up question.
type AnswerChanged struct {
	ID    questions.ID
	Value string
}

func (FieldChanged) event()    {}
func (SubmitRequested) event() {}
func (QuestionsLoaded) event() {}
func (QuestionsFailed) event() {}
func (AnswerChanged) event()   {}

// Command is an effect requested by the machine.
type Command interface {
	command()
}

// FetchQuestions asks for the follow-up questions of Topic. The result must be
// reported back with the same Seq.
type FetchQuestions struct {
	Seq   uint64
	Topic topic.Topic
}

func (FetchQuestions) command() {}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithValidator replaces the default rule set.
func WithValidator(validate form.ValidateFunc) MachineOption {
	return func(m *Machine) {
		if validate != nil {
			m.validate = validate
		}
	}
}

// Machine folds events into snapshots. It holds no state of its own and is
// safe for concurrent use.
type Machine struct {
	validate form.ValidateFunc
}

// NewMachine constructs a machine validating with validation.Validate unless
// overridden.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{validate: validation.Validate}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Update applies ev to state and returns the next snapshot together with the
// commands the caller must execute. state is not modified.
func (m *Machine) Update(state Snapshot, ev Event) (Snapshot, []Command) {
	next := state.Clone()
	if next.Form.Values == nil {
		next.Form.Values = form.Values{}
	}
	if next.Phase == "" {
		next.Phase = PhaseIdle
	}

	switch e := ev.(type) {
	case FieldChanged:
		hook := form.NewHook(nil, m.validate)
		next.Form = hook.HandleChange(next.Form, e.Change)
		if next.Phase == PhaseIdle || next.Phase == PhaseInvalid {
			next.Phase = PhaseEditing
		}
		return next, nil

	case SubmitRequested:
		var submitted form.Values
		hook := form.NewHook(func(values form.Values) {
			submitted = values
		}, m.validate)

		var ok bool
		next.Form, ok = hook.HandleSubmit(next.Form)
		if !ok {
			next.Phase = PhaseInvalid
			return next, nil
		}

		next.Submitted = submitted
		selected, found := topic.Parse(submitted.Get(model.FieldSurveyTopic))
		if !found {
			next.Phase = PhaseSubmitted
			return next, nil
		}
		next.Seq++
		next.Phase = PhaseFetchingQuestions
		return next, []Command{FetchQuestions{Seq: next.Seq, Topic: selected}}

	case QuestionsLoaded:
		if e.Seq != next.Seq || e.Seq == 0 {
			return next, nil
		}
		qs := e.Questions
		if qs == nil {
			qs = []questions.Question{}
		}
		next.Questions = append([]questions.Question{}, qs...)
		next.Responses = NewResponses(next.Questions)
		next.LastFetchError = nil
		next.Phase = PhaseQuestionsReady
		return next, nil

	case QuestionsFailed:
		if e.Seq != next.Seq || e.Seq == 0 {
			return next, nil
		}
		next.LastFetchError = e.Err
		if len(next.Questions) > 0 {
			next.Phase = PhaseQuestionsReady
		} else {
			next.Phase = PhaseSubmitted
		}
		return next, nil

	case AnswerChanged:
		if _, known := next.Responses[e.ID]; !known {
			return next, nil
		}
		next.Responses[e.ID] = e.Value
		return next, nil
	}

	return next, nil
}
