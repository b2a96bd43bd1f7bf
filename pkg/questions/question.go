// Package questions fetches topic-specific follow-up questions from a question
// bank, validates the payload against the bank's OpenAPI contract, and ships a
// local bank handler that serves the same contract from an embedded dataset.
package questions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a question. The bank may send ids as JSON numbers or strings;
// both normalise to the same textual form.
type ID string

// UnmarshalJSON accepts numeric and string ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.New("questions: id is required")
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("questions: decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("questions: decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits canonical integer ids that a float64 holds exactly as
// JSON numbers, so a bank can echo the shape it was seeded with. Every other
// id, including "007" and integers beyond 2^53, stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if isExactInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalYAML reads the scalar text of the node, numeric or not.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node == nil || node.Kind != yaml.ScalarNode {
		return errors.New("questions: id must be a scalar")
	}
	value := strings.TrimSpace(node.Value)
	if value == "" {
		return errors.New("questions: id is required")
	}
	*id = ID(value)
	return nil
}

func (id ID) String() string { return string(id) }

// maxExactInteger is the largest magnitude a float64 represents without loss.
const maxExactInteger = 1 << 53

func isExactInteger(value string) bool {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != value {
		return false
	}
	return n >= -maxExactInteger && n <= maxExactInteger
}

// Question is a single follow-up question.
type Question struct {
	ID   ID     `json:"id" yaml:"id"`
	Text string `json:"question" yaml:"question"`
}

// IDs returns the ids of qs in order.
func IDs(qs []Question) []ID {
	if len(qs) == 0 {
		return nil
	}
	out := make([]ID, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
