package questions

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-surveyform/pkg/topic"
)

//go:embed data/questions.yaml
var dataFS embed.FS

const defaultDatasetPath = "data/questions.yaml"

// Dataset maps topic names to their questions.
type Dataset map[string][]Question

var (
	defaultOnce    sync.Once
	defaultDataset Dataset
	defaultErr     error
)

// DefaultDataset returns a copy of the embedded question set.
func DefaultDataset() (Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDatasetPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultDataset, defaultErr = LoadDataset(f)
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDataset.Clone(), nil
}

// LoadDataset decodes a YAML document keyed by topic name. Unknown topics and
// duplicate ids within a topic are rejected.
func LoadDataset(r io.Reader) (Dataset, error) {
	if r == nil {
		return nil, fmt.Errorf("questions: missing reader")
	}

	var raw map[string][]Question
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("questions: decode dataset: %w", err)
	}

	out := make(Dataset, len(raw))
	for name, qs := range raw {
		t, ok := topic.Parse(name)
		if !ok {
			return nil, fmt.Errorf("questions: dataset topic %q is not a survey topic", name)
		}
		seen := make(map[ID]struct{}, len(qs))
		for _, q := range qs {
			if _, dup := seen[q.ID]; dup {
				return nil, fmt.Errorf("questions: dataset topic %s repeats id %q", name, q.ID)
			}
			if strings.TrimSpace(q.Text) == "" {
				return nil, fmt.Errorf("questions: dataset topic %s id %q has no text", name, q.ID)
			}
			seen[q.ID] = struct{}{}
		}
		out[t.Name()] = append([]Question(nil), qs...)
	}
	return out, nil
}

// For returns the questions for a topic, never nil.
func (d Dataset) For(t topic.Topic) []Question {
	qs := d[topic.NameOf(t)]
	if len(qs) == 0 {
		return []Question{}
	}
	return append([]Question(nil), qs...)
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for name, qs := range d {
		out[name] = append([]Question(nil), qs...)
	}
	return out
}
