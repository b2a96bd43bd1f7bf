package questions

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var contractDocument []byte

const questionListSchema = "QuestionList"

// ErrInvalidPayload reports a question bank response that does not satisfy
// the contract.
var ErrInvalidPayload = errors.New("questions: invalid payload")

// Contract wraps the question bank OpenAPI document.
type Contract struct {
	doc  *openapi3.T
	list *openapi3.Schema
}

var (
	defaultContractOnce sync.Once
	defaultContract     *Contract
	defaultContractErr  error
)

// ContractDocument returns the raw embedded OpenAPI document.
func ContractDocument() []byte {
	return append([]byte(nil), contractDocument...)
}

// DefaultContract parses the embedded contract once.
func DefaultContract() (*Contract, error) {
	defaultContractOnce.Do(func() {
		defaultContract, defaultContractErr = LoadContract(context.Background(), contractDocument)
	})
	return defaultContract, defaultContractErr
}

// LoadContract parses and validates an OpenAPI document that declares a
// QuestionList component schema.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("questions: contract document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("questions: load contract: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("questions: validate contract: %w", err)
	}

	ref := doc.Components.Schemas[questionListSchema]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("questions: contract does not declare %s", questionListSchema)
	}
	return &Contract{doc: doc, list: ref.Value}, nil
}

// Document exposes the parsed OpenAPI document.
func (c *Contract) Document() *openapi3.T {
	if c == nil {
		return nil
	}
	return c.doc
}

// Decode validates a raw response body against the QuestionList schema and
// decodes it.
func (c *Contract) Decode(raw []byte) ([]Question, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if c != nil && c.list != nil {
		if err := c.list.VisitJSON(generic); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	var out []Question
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	seen := make(map[ID]struct{}, len(out))
	for _, q := range out {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: empty question id", ErrInvalidPayload)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidPayload, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	if out == nil {
		out = []Question{}
	}
	return out, nil
}
