package questions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

func TestBankHandler_ServesTopicQuestions(t *testing.T) {
	dataset := questions.Dataset{
		"Health": {{ID: "1", Text: "Q1?"}},
	}
	h := questions.BankHandler(questions.WithDataset(dataset))

	req := httptest.NewRequest(http.MethodGet, "/api/questions?surveyType=Health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `[{"id":1,"question":"Q1?"}]` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestBankHandler_EmptyTopicReturnsEmptyArray(t *testing.T) {
	h := questions.BankHandler(questions.WithDataset(questions.Dataset{}))

	req := httptest.NewRequest(http.MethodGet, "/api/questions?surveyType=Education", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload []questions.Question
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload == nil || len(payload) != 0 {
		t.Fatalf("expected empty array, got %#v", payload)
	}
}

func TestBankHandler_RejectsUnknownTopic(t *testing.T) {
	h := questions.BankHandler()

	for _, target := range []string{"/api/questions", "/api/questions?surveyType=Sports"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestBankHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	questions.BankHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/questions?surveyType=Health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestBankHandler_GuardRejects(t *testing.T) {
	h := questions.BankHandler(questions.WithGuard(func(*http.Request) error {
		return questions.StatusError{Code: http.StatusUnauthorized}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/questions?surveyType=Health", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBankAndClientShareContract(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := questions.RegisterRoutes(mux, "/bank")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/bank/api/questions" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := questions.NewClient(questions.WithEndpoint(srv.URL + pattern))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	dataset, err := questions.DefaultDataset()
	if err != nil {
		t.Fatalf("default dataset: %v", err)
	}
	for _, tp := range topic.All() {
		got, err := client.Fetch(context.Background(), tp)
		if err != nil {
			t.Fatalf("fetch %s: %v", tp.Name(), err)
		}
		if diff := cmp.Diff(dataset.For(tp), got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tp.Name(), diff)
		}
	}
}

func TestMountPath(t *testing.T) {
	if got := questions.MountPath(""); got != "/api/questions" {
		t.Fatalf("unexpected mount path %q", got)
	}
	if got := questions.MountPath("dev/", questions.WithRoutePath("qs")); got != "/dev/qs" {
		t.Fatalf("unexpected mount path %q", got)
	}
}
