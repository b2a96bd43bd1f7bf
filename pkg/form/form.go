// Package form is a generic key/value form-state container: change handling,
// submit interception, and validation-error storage. State values are
// snapshots; every operation returns a new State and never mutates the one it
// was given.
package form

import "strings"

// Values maps field names to their current string value.
type Values map[string]string

// Errors maps field names to a human readable message. An empty mapping means
// no errors were detected on the values present at validation time.
type Errors map[string]string

// FieldType mirrors the HTML input type of the control that produced a change.
type FieldType string

// FieldTypeCheckbox is the only type with special change semantics.
const FieldTypeCheckbox FieldType = "checkbox"

// Change is a single input event.
type Change struct {
	Name    string
	Value   string
	Type    FieldType
	Checked bool
}

// ValidateFunc computes the errors for a set of values.
type ValidateFunc func(Values) Errors

// State is an immutable snapshot of values and errors.
type State struct {
	Values Values
	Errors Errors
}

// Get returns the value stored under name, or "" when absent.
func (v Values) Get(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// With returns a copy of v with name set to value.
func (v Values) With(name, value string) Values {
	out := make(Values, len(v)+1)
	for key, existing := range v {
		out[key] = existing
	}
	out[name] = value
	return out
}

// Clone returns a shallow copy; nil stays nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Clone returns a shallow copy; nil stays nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}

// Hook wires a submit callback and a validation function to the change and
// submit handlers.
type Hook struct {
	onSubmit func(Values)
	validate ValidateFunc
}

// NewHook constructs a hook. Either argument may be nil: a nil callback is
// skipped and a nil validator never reports errors.
func NewHook(onSubmit func(Values), validate ValidateFunc) *Hook {
	return &Hook{onSubmit: onSubmit, validate: validate}
}

// HandleChange stores the change value under its field name. Checkbox changes
// store the value only when checked and "" otherwise. Errors carry over
// untouched; they are only recomputed on submit.
func (h *Hook) HandleChange(state State, change Change) State {
	name := strings.TrimSpace(change.Name)
	if name == "" {
		return state
	}

	value := change.Value
	if change.Type == FieldTypeCheckbox && !change.Checked {
		value = ""
	}

	return State{
		Values: state.Values.With(name, value),
		Errors: state.Errors,
	}
}

// HandleSubmit validates the current values and replaces the stored errors
// with the result. The callback fires, and ok is true, only when the freshly
// computed errors are empty. The callback receives a copy of the values.
func (h *Hook) HandleSubmit(state State) (State, bool) {
	errs := Errors{}
	if h != nil && h.validate != nil {
		if computed := h.validate(state.Values); computed != nil {
			errs = computed
		}
	}

	next := State{Values: state.Values, Errors: errs}
	if !errs.Empty() {
		return next, false
	}

	if h != nil && h.onSubmit != nil {
		h.onSubmit(state.Values.Clone())
	}
	return next, true
}
