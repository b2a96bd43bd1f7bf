// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// ValidFeedback is exactly the minimum accepted feedback length.
var ValidFeedback = strings.Repeat("a", model.FeedbackMinLength)

// Submission returns values that pass every rule for the given topic.
func Submission(t topic.Topic) form.Values {
	values := form.Values{
		model.FieldFullName:    "Ada Lovelace",
		model.FieldEmail:       "ada@example.com",
		model.FieldSurveyTopic: topic.NameOf(t),
		model.FieldFeedback:    ValidFeedback,
	}
	if t == nil {
		return values
	}
	for _, field := range t.Fields() {
		value := "value"
		if len(field.Options) > 0 {
			value = field.Options[0].Value
		}
		values[field.Name] = value
	}
	return values
}

// StaticFetcher answers every fetch with qs and records the requested topics.
type StaticFetcher struct {
	Questions []questions.Question
	Err       error

	mu     sync.Mutex
	topics []string
}

var _ questions.Fetcher = (*StaticFetcher)(nil)

// Fetch implements questions.Fetcher.
func (f *StaticFetcher) Fetch(ctx context.Context, t topic.Topic) ([]questions.Question, error) {
	f.mu.Lock()
	f.topics = append(f.topics, topic.NameOf(t))
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]questions.Question(nil), f.Questions...), nil
}

// Topics lists the topics fetched so far.
func (f *StaticFetcher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.topics...)
}

// MustLoadQuestions decodes a JSON question fixture.
func MustLoadQuestions(t *testing.T, path string) []questions.Question {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	var out []questions.Question
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal questions: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// AssertContainsInOrder fails unless every fragment occurs in body, each after
// the previous one.
func AssertContainsInOrder(t *testing.T, body string, fragments ...string) {
	t.Helper()
	rest := body
	for _, fragment := range fragments {
		idx := strings.Index(rest, fragment)
		if idx < 0 {
			t.Fatalf("missing %q (in order) in:\n%s", fragment, body)
		}
		rest = rest[idx+len(fragment):]
	}
}
