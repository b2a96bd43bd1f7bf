package survey

import (
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// Phase describes where a session is in the submit/fetch flow.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseEditing           Phase = "editing"
	PhaseInvalid           Phase = "invalid"
	PhaseSubmitted         Phase = "submitted"
	PhaseFetchingQuestions Phase = "fetching_questions"
	PhaseQuestionsReady    Phase = "questions_ready"
)

// Responses maps question ids to the respondent's answers. Its keys are
// exactly the ids of the current question set.
type Responses map[questions.ID]string

// Clone returns a shallow copy; nil stays nil.
func (r Responses) Clone() Responses {
	if r == nil {
		return nil
	}
	out := make(Responses, len(r))
	for id, answer := range r {
		out[id] = answer
	}
	return out
}

// NewResponses initialises an empty answer for every question.
func NewResponses(qs []questions.Question) Responses {
	out := make(Responses, len(qs))
	for _, q := range qs {
		out[q.ID] = ""
	}
	return out
}

// Snapshot is the complete component state. Snapshots are values: the machine
// never mutates a snapshot it was handed.
type Snapshot struct {
	Form      form.State
	Submitted form.Values
	Questions []questions.Question
	Responses Responses
	Phase     Phase
	// Seq is the sequence number of the latest fetch issued. Results tagged
	// with an older number are ignored.
	Seq uint64
	// LastFetchError holds the most recent failure of the latest fetch. It is
	// never rendered; callers may log it.
	LastFetchError error
}

// NewSnapshot returns the initial state.
func NewSnapshot() Snapshot {
	return Snapshot{
		Form:      form.State{Values: form.Values{}, Errors: form.Errors{}},
		Questions: []questions.Question{},
		Responses: Responses{},
		Phase:     PhaseIdle,
	}
}

// Clone deep-copies the maps and slices of s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Form = form.State{Values: s.Form.Values.Clone(), Errors: s.Form.Errors.Clone()}
	out.Submitted = s.Submitted.Clone()
	if s.Questions != nil {
		out.Questions = append([]questions.Question{}, s.Questions...)
	}
	out.Responses = s.Responses.Clone()
	return out
}

// SelectedTopic is the topic currently chosen in the form, used to decide
// which conditional group is visible.
func (s Snapshot) SelectedTopic() (topic.Topic, bool) {
	return topic.Parse(s.Form.Values.Get(model.FieldSurveyTopic))
}

// SubmittedTopic is the topic of the last successful submission.
func (s Snapshot) SubmittedTopic() (topic.Topic, bool) {
	if s.Submitted == nil {
		return nil, false
	}
	return topic.Parse(s.Submitted.Get(model.FieldSurveyTopic))
}

// HasSubmitted reports whether a submission has ever succeeded.
func (s Snapshot) HasSubmitted() bool {
	return s.Submitted != nil
}

// Fetching reports whether a question fetch is outstanding.
func (s Snapshot) Fetching() bool {
	return s.Phase == PhaseFetchingQuestions
}
