package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestQuestionsCommand(t *testing.T) {
	bank := httptest.NewServer(questions.BankHandler())
	t.Cleanup(bank.Close)

	t.Setenv("SURVEYFORM_QUESTIONS_ENDPOINT", bank.URL+"/api/questions")
	t.Setenv("SURVEYFORM_LOG_LEVEL", "error")

	out, err := execute(t, "questions", "Health", "--env-file", t.TempDir()+"/none.env")
	require.NoError(t, err)

	var got []questions.Question
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	dataset, err := questions.DefaultDataset()
	require.NoError(t, err)
	assert.Equal(t, dataset.For(topic.Health), got)
}

func TestQuestionsCommand_UnknownTopic(t *testing.T) {
	_, err := execute(t, "questions", "Sports")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown topic "Sports"`)
}
