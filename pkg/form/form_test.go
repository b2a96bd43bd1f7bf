package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/form"
)

func TestHandleChange_CopyOnWrite(t *testing.T) {
	hook := form.NewHook(nil, nil)

	first := hook.HandleChange(form.State{}, form.Change{Name: "fullName", Value: "Ada"})
	second := hook.HandleChange(first, form.Change{Name: "email", Value: "ada@example.com"})

	if diff := cmp.Diff(form.Values{"fullName": "Ada"}, first.Values); diff != "" {
		t.Fatalf("previous snapshot mutated (-want +got):\n%s", diff)
	}
	want := form.Values{"fullName": "Ada", "email": "ada@example.com"}
	if diff := cmp.Diff(want, second.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleChange_Checkbox(t *testing.T) {
	hook := form.NewHook(nil, nil)

	checked := hook.HandleChange(form.State{}, form.Change{
		Name: "subscribe", Value: "yes", Type: form.FieldTypeCheckbox, Checked: true,
	})
	if got := checked.Values.Get("subscribe"); got != "yes" {
		t.Fatalf("checked checkbox stored %q, want %q", got, "yes")
	}

	unchecked := hook.HandleChange(checked, form.Change{
		Name: "subscribe", Value: "yes", Type: form.FieldTypeCheckbox, Checked: false,
	})
	if got, ok := unchecked.Values["subscribe"]; !ok || got != "" {
		t.Fatalf("unchecked checkbox stored %q (present=%v), want empty string", got, ok)
	}
}

func TestHandleChange_IgnoresEmptyName(t *testing.T) {
	hook := form.NewHook(nil, nil)
	state := form.State{Values: form.Values{"a": "b"}}

	next := hook.HandleChange(state, form.Change{Name: "  ", Value: "x"})
	if diff := cmp.Diff(state, next); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestHandleChange_KeepsErrorsUntilSubmit(t *testing.T) {
	hook := form.NewHook(nil, nil)
	state := form.State{Errors: form.Errors{"fullName": "Full Name is required"}}

	next := hook.HandleChange(state, form.Change{Name: "fullName", Value: "Ada"})
	if next.Errors["fullName"] == "" {
		t.Fatalf("expected errors to persist until the next submit")
	}
}

func TestHandleSubmit_GatesOnFreshErrors(t *testing.T) {
	var calls []form.Values
	requireName := func(values form.Values) form.Errors {
		errs := form.Errors{}
		if values.Get("fullName") == "" {
			errs["fullName"] = "Full Name is required"
		}
		return errs
	}
	hook := form.NewHook(func(v form.Values) { calls = append(calls, v) }, requireName)

	// Previous errors are empty, fresh ones are not: the callback must not fire.
	state := form.State{Values: form.Values{}, Errors: form.Errors{}}
	next, ok := hook.HandleSubmit(state)
	if ok {
		t.Fatalf("expected submit to fail")
	}
	if len(calls) != 0 {
		t.Fatalf("callback fired %d times despite fresh errors", len(calls))
	}
	if diff := cmp.Diff(form.Errors{"fullName": "Full Name is required"}, next.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	// Previous errors are non-empty, fresh ones are empty: the callback fires.
	next = hook.HandleChange(next, form.Change{Name: "fullName", Value: "Ada"})
	next, ok = hook.HandleSubmit(next)
	if !ok {
		t.Fatalf("expected submit to succeed")
	}
	if len(next.Errors) != 0 {
		t.Fatalf("expected errors to be replaced, got %v", next.Errors)
	}
	if diff := cmp.Diff([]form.Values{{"fullName": "Ada"}}, calls); diff != "" {
		t.Fatalf("callback values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleSubmit_CallbackReceivesCopy(t *testing.T) {
	var received form.Values
	hook := form.NewHook(func(v form.Values) { received = v }, nil)

	state := form.State{Values: form.Values{"fullName": "Ada"}}
	if _, ok := hook.HandleSubmit(state); !ok {
		t.Fatalf("expected submit without validator to succeed")
	}
	received["fullName"] = "changed"
	if state.Values.Get("fullName") != "Ada" {
		t.Fatalf("callback copy aliases the state values")
	}
}
