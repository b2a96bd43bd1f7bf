package render

import (
	"sort"
	"strings"
)

// CSRFFieldName is the form field carrying the session's CSRF token.
const CSRFFieldName = "_csrf"

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CSRFToken builds the hidden field carrying token.
func CSRFToken(token string) HiddenField {
	return HiddenField{Name: CSRFFieldName, Value: token}
}

// NormalizeHidden drops unnamed fields, keeps the last value per name and
// sorts by name for deterministic output.
func NormalizeHidden(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
