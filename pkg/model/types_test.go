package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldInputType(t *testing.T) {
	cases := map[Control]string{
		ControlText:     "text",
		ControlEmail:    "email",
		ControlNumber:   "number",
		ControlCheckbox: "checkbox",
		ControlSelect:   "",
		ControlTextArea: "",
	}
	for control, want := range cases {
		if got := (Field{Control: control}).InputType(); got != want {
			t.Fatalf("InputType(%q) = %q, want %q", control, got, want)
		}
	}
}

func TestFieldCloneIsolatesOptions(t *testing.T) {
	original := Field{Name: "lang", Options: OptionsFrom("Go", "Rust")}
	clone := original.Clone()
	clone.Options[0].Label = "Changed"

	if diff := cmp.Diff(OptionsFrom("Go", "Rust"), original.Options); diff != "" {
		t.Fatalf("original mutated (-want +got):\n%s", diff)
	}
	if OptionsFrom() != nil {
		t.Fatalf("expected nil options for no values")
	}
}
