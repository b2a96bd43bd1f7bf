package questions_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-surveyform/pkg/questions"
)

func TestDefaultContract_DeclaresListOperation(t *testing.T) {
	contract, err := questions.DefaultContract()
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	doc := contract.Document()
	if doc.Paths.Find("/api/questions") == nil {
		t.Fatalf("contract is missing /api/questions")
	}
}

func TestLoadContract_RequiresQuestionList(t *testing.T) {
	raw := []byte(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Other: {type: string}
`)
	if _, err := questions.LoadContract(context.Background(), raw); err == nil {
		t.Fatalf("expected error when QuestionList is absent")
	}
	if _, err := questions.LoadContract(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
