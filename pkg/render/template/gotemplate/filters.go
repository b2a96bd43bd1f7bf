package gotemplate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-surveyform/pkg/questions"
)

func registerBuiltinFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("question_field") {
		_ = pongo2.RegisterFilter("question_field", filterQuestionField)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterQuestionField turns a question id into its answer field name. JSON
// numbers arrive as float64 and are printed without a fraction.
func filterQuestionField(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var id string
	switch v := in.Interface().(type) {
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		id = ""
	default:
		id = fmt.Sprint(v)
	}
	return pongo2.AsValue(questions.FieldName(questions.ID(strings.TrimSpace(id)))), nil
}
