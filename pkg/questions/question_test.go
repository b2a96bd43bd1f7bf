package questions_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/questions"
)

func TestIDUnmarshalJSON(t *testing.T) {
	var got []questions.Question
	payload := `[{"id":1,"question":"a"},{"id":" x7 ","question":"b"},{"id":12.5,"question":"c"}]`
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []questions.ID{"1", "x7", "12.5"}
	if diff := cmp.Diff(want, questions.IDs(got)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	var q questions.Question
	if err := json.Unmarshal([]byte(`{"id":null,"question":"a"}`), &q); err == nil {
		t.Fatalf("expected error for null id")
	}
}

func TestIDMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]questions.Question{
		{ID: "1", Text: "numeric"},
		{ID: "abc", Text: "textual"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"id":1,"question":"numeric"},{"id":"abc","question":"textual"}]`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}
}

func TestIDMarshalJSON_NonCanonicalNumbersStayStrings(t *testing.T) {
	cases := map[questions.ID]string{
		"007":              `"007"`,
		"01":               `"01"`,
		"9007199254740993": `"9007199254740993"`,
		"9007199254740992": `9007199254740992`,
		"-3":               `-3`,
		"+3":               `"+3"`,
		"12.5":             `"12.5"`,
	}
	for id, want := range cases {
		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %q: %v", id, err)
		}
		if string(data) != want {
			t.Fatalf("marshal %q = %s, want %s", id, data, want)
		}

		var back questions.ID
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != id {
			t.Fatalf("round trip %q -> %q", id, back)
		}
	}
}

func TestFieldNameRoundTrip(t *testing.T) {
	name := questions.FieldName("42")
	if name != "question_42" {
		t.Fatalf("field name = %q", name)
	}
	id, ok := questions.ParseFieldName(name)
	if !ok || id != "42" {
		t.Fatalf("parse = %q %v", id, ok)
	}
	for _, bad := range []string{"question_", "fullName", "answer_1"} {
		if _, ok := questions.ParseFieldName(bad); ok {
			t.Fatalf("%q must not parse", bad)
		}
	}
}
