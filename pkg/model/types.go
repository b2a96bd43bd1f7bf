package model

// Control is the input kind a renderer emits for a field.
type Control string

const (
	ControlText     Control = "text"
	ControlEmail    Control = "email"
	ControlNumber   Control = "number"
	ControlSelect   Control = "select"
	ControlTextArea Control = "textarea"
	ControlCheckbox Control = "checkbox"
)

// Option is a single entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input of the survey form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Control     Control  `json:"control"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Rows        int      `json:"rows,omitempty"`
}

// InputType reports the HTML input type for single-line controls. Selects and
// text areas return an empty string.
func (f Field) InputType() string {
	switch f.Control {
	case ControlText, ControlEmail, ControlNumber, ControlCheckbox:
		return string(f.Control)
	default:
		return ""
	}
}

// OptionsFrom builds select options whose value and label are identical.
func OptionsFrom(values ...string) []Option {
	if len(values) == 0 {
		return nil
	}
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}

// Clone returns a deep copy of the field so callers can decorate it without
// touching the shared catalogue.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]Option(nil), f.Options...)
	}
	return out
}
