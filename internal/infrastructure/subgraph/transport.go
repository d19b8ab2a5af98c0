package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/uniswap-subgraph/internal/logger"
)

// DefaultEndpoint is the hosted Uniswap V3 subgraph
const DefaultEndpoint = "https://api.thegraph.com/subgraphs/name/uniswap/uniswap-v3"

// maxErrorBody caps how much of a failed response is kept on TransportError
const maxErrorBody = 1024

// Variables are the GraphQL variables sent alongside a query
type Variables map[string]any

// Envelope is the decoded top-level response object (data, errors, ...),
// returned without any schema validation
type Envelope map[string]json.RawMessage

// MetricsCollector records subgraph request outcomes
type MetricsCollector interface {
	RecordRequest(operation string, statusCode int, duration time.Duration)
	RecordError(operation string)
}

// Option configures a Transport
type Option func(*Transport)

// Transport posts GraphQL documents to a subgraph endpoint. One call is one
// HTTP request; nothing is retried or cached.
type Transport struct {
	endpoint   string
	httpClient *http.Client
	headers    map[string]string
	metrics    MetricsCollector
}

type request struct {
	Query     string    `json:"query"`
	Variables Variables `json:"variables"`
}

// NewTransport creates a transport for the default endpoint unless overridden
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    make(map[string]string),
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithEndpoint sets the subgraph URL
func WithEndpoint(endpoint string) Option {
	return func(t *Transport) {
		if endpoint != "" {
			t.endpoint = endpoint
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			c := *t.httpClient
			c.Timeout = timeout
			t.httpClient = &c
		}
	}
}

// WithHeader adds a header to every request, e.g. a gateway API key
func WithHeader(key, value string) Option {
	return func(t *Transport) {
		t.headers[key] = value
	}
}

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(t *Transport) {
		if collector != nil {
			t.metrics = collector
		}
	}
}

// Endpoint returns the subgraph URL requests are sent to
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// Send posts the query with its variables and returns the decoded response
// object. A status other than 200 yields *TransportError, a body that is not
// a JSON object yields *DecodeError.
func (t *Transport) Send(ctx context.Context, query string, variables Variables) (Envelope, error) {
	if variables == nil {
		variables = Variables{}
	}
	operation := operationName(query)

	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		t.metrics.RecordError(operation)
		logger.Error("Subgraph request failed",
			zap.String("operation", operation),
			zap.String("url", t.endpoint),
			zap.Error(err),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("subgraph request %s failed: %w", operation, err)
	}
	defer resp.Body.Close()

	t.metrics.RecordRequest(operation, resp.StatusCode, duration)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.RecordError(operation)
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		t.metrics.RecordError(operation)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		logger.Warn("Subgraph error response",
			zap.String("operation", operation),
			zap.String("url", t.endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration))
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        t.endpoint,
			Body:       string(body),
		}
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.metrics.RecordError(operation)
		return nil, &DecodeError{Err: err}
	}
	if envelope == nil {
		t.metrics.RecordError(operation)
		return nil, &DecodeError{Err: errors.New("response body is not a JSON object")}
	}

	logger.Debug("Subgraph request successful",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	return envelope, nil
}

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// operationName extracts the named operation of a GraphQL document for logs and metrics
func operationName(query string) string {
	if m := operationPattern.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return "anonymous"
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(string, int, time.Duration) {}
func (noopMetrics) RecordError(string)                      {}
