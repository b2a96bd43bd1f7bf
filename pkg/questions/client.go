package questions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-surveyform/pkg/topic"
)

// DefaultEndpoint is the public question bank the survey was built against.
const DefaultEndpoint = "https://dynamic-form-level-three-backend.vercel.app/api/questions"

// SurveyTypeParam is the query parameter carrying the topic name.
const SurveyTypeParam = "surveyType"

const maxPayloadBytes = 1 << 20

// ErrUnexpectedStatus reports a non-2xx response.
var ErrUnexpectedStatus = errors.New("questions: unexpected status")

// Fetcher retrieves the follow-up questions for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, t topic.Topic) ([]Question, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, t topic.Topic) ([]Question, error)

// Fetch delegates to the underlying function.
func (fn FetcherFunc) Fetch(ctx context.Context, t topic.Topic) ([]Question, error) {
	return fn(ctx, t)
}

// Option configures a Client.
type Option func(*config)

type config struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	contract *Contract
}

// WithEndpoint overrides the question bank URL.
func WithEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			cfg.endpoint = trimmed
		}
	}
}

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		if client != nil {
			cfg.client = client
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests bounded only by the
// caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		if timeout >= 0 {
			cfg.timeout = timeout
		}
	}
}

// WithContract overrides the contract used to validate payloads.
func WithContract(contract *Contract) Option {
	return func(cfg *config) {
		if contract != nil {
			cfg.contract = contract
		}
	}
}

// Client fetches questions over HTTP.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	timeout  time.Duration
	contract *Contract
}

var _ Fetcher = (*Client)(nil)

// NewClient constructs a Client. The embedded contract is used unless one is
// supplied.
func NewClient(options ...Option) (*Client, error) {
	cfg := config{
		endpoint: DefaultEndpoint,
		client:   http.DefaultClient,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	endpoint, err := url.Parse(cfg.endpoint)
	if err != nil {
		return nil, fmt.Errorf("questions: parse endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("questions: endpoint %q must be http or https", cfg.endpoint)
	}

	contract := cfg.contract
	if contract == nil {
		contract, err = DefaultContract()
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		endpoint: endpoint,
		http:     cfg.client,
		timeout:  cfg.timeout,
		contract: contract,
	}, nil
}

// Endpoint returns the request URL for a topic.
func (c *Client) Endpoint(t topic.Topic) string {
	u := *c.endpoint
	query := u.Query()
	query.Set(SurveyTypeParam, topic.NameOf(t))
	u.RawQuery = query.Encode()
	return u.String()
}

// Fetch issues GET {endpoint}?surveyType={topic}. Transport failures, non-2xx
// statuses, and payloads violating the contract are all errors.
func (c *Client) Fetch(ctx context.Context, t topic.Topic) ([]Question, error) {
	if t == nil {
		return nil, errors.New("questions: topic is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.Endpoint(t), nil)
	if err != nil {
		return nil, fmt.Errorf("questions: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("questions: fetch %s: %w", t.Name(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %s", ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("questions: read response: %w", err)
	}
	return c.contract.Decode(data)
}
