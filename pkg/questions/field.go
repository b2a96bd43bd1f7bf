package questions

import "strings"

// FieldPrefix prefixes the form field that carries the answer to a question.
const FieldPrefix = "question_"

// FieldName returns the answer field name for id.
func FieldName(id ID) string {
	return FieldPrefix + string(id)
}

// ParseFieldName extracts the question id from an answer field name.
func ParseFieldName(name string) (ID, bool) {
	if !strings.HasPrefix(name, FieldPrefix) {
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(name, FieldPrefix))
	if id == "" {
		return "", false
	}
	return ID(id), true
}
