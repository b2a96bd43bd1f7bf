package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-surveyform/internal/logging"
	"github.com/goliatone/go-surveyform/internal/metrics"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/testsupport"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

type harness struct {
	t       *testing.T
	srv     *httptest.Server
	client  *http.Client
	store   *survey.Store
	fetcher *testsupport.StaticFetcher
	metrics *metrics.Metrics
}

func newHarness(t *testing.T, fns ...Option) *harness {
	t.Helper()

	fetcher := &testsupport.StaticFetcher{Questions: []questions.Question{
		{ID: "1", Text: "How many hours do you sleep?"},
		{ID: "2", Text: "Do you <em>stretch</em>?"},
	}}
	m := metrics.New()
	store := survey.NewStore(context.Background(), func(ctx context.Context) *survey.Controller {
		return survey.NewController(ctx, fetcher, survey.WithRecorder(m))
	})
	t.Cleanup(store.Close)

	htmlRenderer, err := html.New(html.WithStylesheetURL(StylesheetURL()))
	require.NoError(t, err)
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tui.NewTextRenderer())

	logger, _ := logging.NewObserved(zapcore.DebugLevel)
	opts := append([]Option{
		WithRenderers(registry),
		WithLogger(logger),
		WithMetricsHandler(m.Handler()),
		WithLocalBank(),
	}, fns...)
	s, err := New(store, opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &harness{
		t:       t,
		srv:     srv,
		client:  &http.Client{Jar: jar},
		store:   store,
		fetcher: fetcher,
		metrics: m,
	}
}

func (h *harness) get(path string) (int, string) {
	h.t.Helper()
	resp, err := h.client.Get(h.srv.URL + path)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, string(body)
}

func (h *harness) post(path string, form url.Values) (int, string) {
	h.t.Helper()
	resp, err := h.client.PostForm(h.srv.URL+path, form)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, string(body)
}

func (h *harness) snapshot() snapshotResponse {
	h.t.Helper()
	status, body := h.get("/api/survey")
	require.Equal(h.t, http.StatusOK, status)
	var out snapshotResponse
	require.NoError(h.t, json.Unmarshal([]byte(body), &out))
	return out
}

// waitForQuestions blocks until the session's fetch has settled.
func (h *harness) waitForQuestions() {
	h.t.Helper()
	u, err := url.Parse(h.srv.URL)
	require.NoError(h.t, err)
	for _, cookie := range h.client.Jar.Cookies(u) {
		if cookie.Name == DefaultCookieName {
			sess, ok := h.store.Get(cookie.Value)
			require.True(h.t, ok)
			sess.Controller.Wait()
			return
		}
	}
	h.t.Fatal("no session cookie")
}

func healthSubmission(token string) url.Values {
	values := url.Values{render.CSRFFieldName: {token}}
	for name, value := range testsupport.Submission(topic.Health) {
		values.Set(name, value)
	}
	return values
}

func TestServer_RendersEmptyForm(t *testing.T) {
	h := newHarness(t)

	status, body := h.get("/")
	require.Equal(t, http.StatusOK, status)

	testsupport.AssertContainsInOrder(t, body,
		"Advanced Survey Form",
		`name="fullName"`,
		`name="email"`,
		`name="surveyTopic"`,
		`name="feedback"`,
	)
	assert.Contains(t, body, `name="`+render.CSRFFieldName+`"`)
	assert.NotContains(t, body, `name="favoriteLanguage"`)
	assert.Equal(t, 1, h.store.Len())
}

func TestServer_RejectsMissingCSRF(t *testing.T) {
	h := newHarness(t)
	h.get("/")

	status, _ := h.post("/", url.Values{model.FieldFullName: {"Ada"}})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = h.post("/answers", url.Values{"question_1": {"x"}, render.CSRFFieldName: {"wrong"}})
	assert.Equal(t, http.StatusForbidden, status)

	assert.Equal(t, survey.PhaseIdle, h.snapshot().Phase)
}

func TestServer_InvalidSubmitShowsErrors(t *testing.T) {
	h := newHarness(t)
	token := h.snapshot().CSRFToken

	status, body := h.post("/", url.Values{
		render.CSRFFieldName:   {token},
		model.FieldEmail:       {"nope"},
		model.FieldSurveyTopic: {"Technology"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Full Name is required")
	assert.Contains(t, body, "Email address is invalid")
	assert.Contains(t, body, "Favorite Programming Language is required")

	snap := h.snapshot()
	assert.Equal(t, survey.PhaseInvalid, snap.Phase)
	assert.Nil(t, snap.Submitted)
	assert.Empty(t, h.fetcher.Topics())

	var fields []string
	for _, issue := range snap.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{
		model.FieldFullName,
		model.FieldEmail,
		model.FieldFavoriteLanguage,
		model.FieldYearsOfExperience,
		model.FieldFeedback,
	}, fields)
}

func TestServer_RefreshShowsTopicGroupWithoutSubmitting(t *testing.T) {
	h := newHarness(t)
	token := h.snapshot().CSRFToken

	status, body := h.post("/", url.Values{
		render.CSRFFieldName:   {token},
		html.ActionFieldName:   {html.RefreshAction},
		model.FieldSurveyTopic: {"Education"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `name="highestQualification"`)
	assert.NotContains(t, body, "is required")

	snap := h.snapshot()
	assert.Equal(t, survey.PhaseEditing, snap.Phase)
	assert.Empty(t, snap.Issues)
}

func TestServer_SubmitFetchesQuestionsAndRecordsAnswers(t *testing.T) {
	h := newHarness(t)
	token := h.snapshot().CSRFToken

	status, _ := h.post("/", healthSubmission(token))
	require.Equal(t, http.StatusOK, status)
	h.waitForQuestions()

	snap := h.snapshot()
	assert.Equal(t, survey.PhaseQuestionsReady, snap.Phase)
	assert.Equal(t, []string{"Health"}, h.fetcher.Topics())
	for name, value := range testsupport.Submission(topic.Health) {
		assert.Equal(t, value, snap.Submitted.Get(name), name)
	}
	assert.Equal(t, survey.Responses{"1": "", "2": ""}, snap.Responses)

	_, body := h.get("/")
	testsupport.AssertContainsInOrder(t, body,
		"Health Section",
		"Exercise Frequency",
		"How many hours do you sleep?",
		"Do you stretch?",
	)
	assert.Contains(t, body, `name="question_1"`)

	status, _ = h.post("/answers", url.Values{
		render.CSRFFieldName: {token},
		"question_1":         {"seven"},
		"question_99":        {"ignored"},
	})
	require.Equal(t, http.StatusOK, status)

	after := h.snapshot()
	assert.Equal(t, survey.Responses{"1": "seven", "2": ""}, after.Responses)
	assert.Equal(t, snap.Values, after.Values)

	_, metricsBody := h.get("/metrics")
	assert.Contains(t, metricsBody, `surveyform_form_submissions_total{topic="Health"} 1`)
}

func TestServer_AnswersKeepTextualNumericIDs(t *testing.T) {
	h := newHarness(t)
	h.fetcher.Questions = []questions.Question{
		{ID: "007", Text: "Leading zeros?"},
		{ID: "9007199254740993", Text: "Beyond float precision?"},
	}
	token := h.snapshot().CSRFToken

	h.post("/", healthSubmission(token))
	h.waitForQuestions()

	status, body := h.get("/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `name="question_007"`)
	assert.Contains(t, body, `name="question_9007199254740993"`)

	status, _ = h.post("/answers", url.Values{
		render.CSRFFieldName:        {token},
		"question_007":              {"bond"},
		"question_9007199254740993": {"big"},
	})
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, survey.Responses{"007": "bond", "9007199254740993": "big"}, h.snapshot().Responses)
}

func TestServer_TextFormat(t *testing.T) {
	h := newHarness(t)

	status, body := h.get("/?format=text")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No submission yet.")

	status, _ = h.get("/?format=pdf")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_OpsEndpoints(t *testing.T) {
	h := newHarness(t)

	status, body := h.get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok\n", body)

	status, body = h.get("/openapi.yaml")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "openapi:")

	status, body = h.get(StylesheetURL())
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, strings.TrimSpace(body))

	status, body = h.get("/api/questions?surveyType=Health")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "["))

	status, _ = h.get("/api/questions?surveyType=Sports")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_SessionsAreIsolated(t *testing.T) {
	a := newHarness(t)
	token := a.snapshot().CSRFToken
	a.post("/", healthSubmission(token))
	a.waitForQuestions()

	other, err := cookiejar.New(nil)
	require.NoError(t, err)
	b := &harness{t: t, srv: a.srv, client: &http.Client{Jar: other}, store: a.store}

	snap := b.snapshot()
	assert.Equal(t, survey.PhaseIdle, snap.Phase)
	assert.NotEqual(t, token, snap.CSRFToken)
	assert.Equal(t, 2, a.store.Len())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoStore)

	store := survey.NewStore(context.Background(), func(ctx context.Context) *survey.Controller {
		return survey.NewController(ctx, nil)
	})
	t.Cleanup(store.Close)

	_, err = New(store)
	assert.Error(t, err)

	_, err = New(store, WithRenderers(render.NewRegistry()))
	assert.Error(t, err)
}
