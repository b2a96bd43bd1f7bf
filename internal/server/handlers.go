package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/topic"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// FormatParam selects a renderer on GET /.
const FormatParam = "format"

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(w, r)

	format := r.URL.Query().Get(FormatParam)
	if format == "" {
		format = s.opts.DefaultFormat
	}
	renderer, err := s.opts.Renderers.Get(format)
	if err != nil {
		http.Error(w, "unknown format", http.StatusBadRequest)
		return
	}

	page := render.NewPage(sess.Controller.Snapshot())
	out, err := renderer.Render(r.Context(), page, render.RenderOptions{
		Action:        "/",
		AnswersAction: "/answers",
		Hidden:        []render.HiddenField{render.CSRFToken(sess.CSRFToken)},
		RefreshAfter:  s.opts.RefreshAfter,
		Theme:         s.opts.Theme,
	})
	if err != nil {
		s.opts.Logger.Error("render page", zapSession(sess), zap.String("format", format), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleSubmit applies every posted field of the layout as a change, then
// submits. A refresh action only applies the changes so the topic group can
// be shown before submitting.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, created := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}
	if !verifyCSRF(sess, created, r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	ctrl := sess.Controller
	for _, change := range formChanges(r, ctrl.Snapshot()) {
		ctrl.Dispatch(survey.FieldChanged{Change: change})
	}

	if r.PostForm.Get(html.ActionFieldName) != html.RefreshAction {
		state := ctrl.Dispatch(survey.SubmitRequested{})
		s.opts.Logger.Debug("form submitted",
			zapSession(sess),
			zap.String("phase", string(state.Phase)),
			zap.Int("errors", len(state.Form.Errors)),
		)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	sess, created := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}
	if !verifyCSRF(sess, created, r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	for name, values := range r.PostForm {
		id, ok := questions.ParseFieldName(name)
		if !ok || len(values) == 0 {
			continue
		}
		sess.Controller.Dispatch(survey.AnswerChanged{ID: id, Value: values[len(values)-1]})
	}

	http.Redirect(w, r, "/#questions", http.StatusSeeOther)
}

// snapshotResponse is the JSON view of a session.
type snapshotResponse struct {
	Phase     survey.Phase         `json:"phase"`
	Values    form.Values          `json:"values"`
	Issues    []validation.Issue   `json:"issues"`
	Submitted form.Values          `json:"submitted,omitempty"`
	Summary   *survey.SummaryView  `json:"summary,omitempty"`
	Questions []questions.Question `json:"questions"`
	Responses survey.Responses     `json:"responses"`
	Fetching  bool                 `json:"fetching"`
	CSRFToken string               `json:"csrf_token"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.session(w, r)
	state := sess.Controller.Snapshot()

	resp := snapshotResponse{
		Phase:     state.Phase,
		Values:    state.Form.Values,
		Issues:    validation.Issues(state.Form.Errors),
		Submitted: state.Submitted,
		Questions: state.Questions,
		Responses: state.Responses,
		Fetching:  state.Fetching(),
		CSRFToken: sess.CSRFToken,
	}
	if resp.Issues == nil {
		resp.Issues = []validation.Issue{}
	}
	if summary, ok := survey.Summary(state.Submitted); ok {
		resp.Summary = &summary
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.opts.Logger.Error("encode snapshot", zapSession(sess), zap.Error(err))
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(questions.ContractDocument())
}

// formChanges turns the posted fields into change events in layout order.
// The group follows the posted topic when one was sent; fields that were not
// posted keep their values.
func formChanges(r *http.Request, state survey.Snapshot) []form.Change {
	selected, _ := state.SelectedTopic()
	if raw, ok := r.PostForm[model.FieldSurveyTopic]; ok && len(raw) > 0 {
		selected, _ = topic.Parse(raw[len(raw)-1])
	}

	var changes []form.Change
	for _, field := range topic.Layout(selected) {
		values, ok := r.PostForm[field.Name]
		if !ok || len(values) == 0 {
			continue
		}
		changes = append(changes, form.Change{
			Name:  field.Name,
			Value: values[len(values)-1],
			Type:  form.FieldType(field.InputType()),
		})
	}
	return changes
}
