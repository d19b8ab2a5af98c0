package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest is what the fake subgraph saw
type capturedRequest struct {
	Method      string
	ContentType string
	Headers     http.Header
	Query       string
	Variables   map[string]any
}

// fakeSubgraph serves a fixed status and body and records every request
type fakeSubgraph struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeSubgraph(t *testing.T, status int, body string) *fakeSubgraph {
	t.Helper()

	f := &fakeSubgraph{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		assert.NoError(t, json.Unmarshal(raw, &req))

		f.mu.Lock()
		f.requests = append(f.requests, capturedRequest{
			Method:      r.Method,
			ContentType: r.Header.Get("Content-Type"),
			Headers:     r.Header.Clone(),
			Query:       req.Query,
			Variables:   req.Variables,
		})
		f.mu.Unlock()

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeSubgraph) last(t *testing.T) capturedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the fake subgraph")
	return f.requests[len(f.requests)-1]
}

func (f *fakeSubgraph) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type recordingMetrics struct {
	requests []int
	errors   int
	ops      []string
}

func (m *recordingMetrics) RecordRequest(operation string, statusCode int, _ time.Duration) {
	m.ops = append(m.ops, operation)
	m.requests = append(m.requests, statusCode)
}

func (m *recordingMetrics) RecordError(string) {
	m.errors++
}

func TestTransportSend(t *testing.T) {
	srv := newFakeSubgraph(t, http.StatusOK, `{"data": {"token": {"id": "0x1"}}, "errors": [{"message": "ignored"}]}`)
	metrics := &recordingMetrics{}
	tr := NewTransport(WithEndpoint(srv.URL), WithHeader("Authorization", "Bearer key"), WithMetricsCollector(metrics))

	envelope, err := tr.Send(context.Background(), TokenQuery, Variables{"id": "0x1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token": {"id": "0x1"}}`, string(envelope["data"]))
	assert.Contains(t, envelope, "errors")

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.ContentType)
	assert.Equal(t, "Bearer key", req.Headers.Get("Authorization"))
	assert.Equal(t, TokenQuery, req.Query)
	assert.Equal(t, map[string]any{"id": "0x1"}, req.Variables)

	assert.Equal(t, []int{http.StatusOK}, metrics.requests)
	assert.Equal(t, []string{"FetchToken"}, metrics.ops)
	assert.Zero(t, metrics.errors)
}

func TestTransportSendNilVariables(t *testing.T) {
	srv := newFakeSubgraph(t, http.StatusOK, `{"data": {}}`)
	tr := NewTransport(WithEndpoint(srv.URL))

	_, err := tr.Send(context.Background(), "{ _meta { block { number } } }", nil)
	require.NoError(t, err)

	req := srv.last(t)
	require.NotNil(t, req.Variables)
	assert.Empty(t, req.Variables)
}

func TestTransportSendNonOK(t *testing.T) {
	statuses := []int{
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusTooManyRequests,
		http.StatusNotFound,
		http.StatusCreated,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := newFakeSubgraph(t, status, `{"data": {"token": {"id": "0x1"}}}`)
			metrics := &recordingMetrics{}
			tr := NewTransport(WithEndpoint(srv.URL), WithMetricsCollector(metrics))

			envelope, err := tr.Send(context.Background(), TokenQuery, Variables{"id": "0x1"})
			assert.Nil(t, envelope)

			var transportErr *TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, status, transportErr.StatusCode)
			assert.Equal(t, srv.URL, transportErr.URL)
			assert.Contains(t, err.Error(), "failed with status code")

			// exactly one request, no retries
			assert.Equal(t, 1, srv.count())
			assert.Equal(t, 1, metrics.errors)
		})
	}
}

func TestTransportSendDecodeError(t *testing.T) {
	bodies := map[string]string{
		"not json":  `<html>gateway</html>`,
		"array":     `[{"data": {}}]`,
		"string":    `"data"`,
		"null":      `null`,
		"truncated": `{"data": {`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newFakeSubgraph(t, http.StatusOK, body)
			tr := NewTransport(WithEndpoint(srv.URL))

			envelope, err := tr.Send(context.Background(), TokenQuery, Variables{"id": "0x1"})
			assert.Nil(t, envelope)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "got %v", err)
		})
	}
}

func TestTransportSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := NewTransport(WithEndpoint(url), WithTimeout(time.Second))
	_, err := tr.Send(context.Background(), TokenQuery, nil)
	require.Error(t, err)

	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
}

func TestTransportOptions(t *testing.T) {
	tr := NewTransport()
	assert.Equal(t, DefaultEndpoint, tr.Endpoint())
	assert.Equal(t, 30*time.Second, tr.httpClient.Timeout)

	custom := &http.Client{Timeout: time.Minute}
	tr = NewTransport(WithEndpoint(""), WithHTTPClient(custom), WithTimeout(5*time.Second))
	assert.Equal(t, DefaultEndpoint, tr.Endpoint())
	assert.Equal(t, 5*time.Second, tr.httpClient.Timeout)
	assert.Equal(t, time.Minute, custom.Timeout, "caller's client must not be mutated")
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "FetchToken", operationName(TokenQuery))
	assert.Equal(t, "FetchPairsForToken", operationName(PairsForTokenQuery))
	assert.Equal(t, "FetchSwapTransactions", operationName(SwapTransactionsQuery))
	assert.Equal(t, "FetchSwapsForTimestamp", operationName(SwapsForTimestampQuery))
	assert.Equal(t, "FetchSpecificPair", operationName(SpecificPairQuery))
	assert.Equal(t, "anonymous", operationName("{ tokens { id } }"))
}
