package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
)

func TestSubgraphCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewSubgraphCollector(reg)

	c.RecordRequest("FetchToken", 200, 120*time.Millisecond)
	c.RecordRequest("FetchToken", 200, 80*time.Millisecond)
	c.RecordRequest("FetchToken", 500, 10*time.Millisecond)
	c.RecordError("FetchToken")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues("FetchToken", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("FetchToken", "500")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.errors.WithLabelValues("FetchToken")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestSubgraphCollectorWiredIntoTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "unavailable")
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := NewSubgraphCollector(reg)
	client := subgraph.NewClient(subgraph.WithEndpoint(srv.URL), subgraph.WithMetricsCollector(c))

	_, err := client.FetchToken(context.Background(), "0x1")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("FetchToken", "503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.errors.WithLabelValues("FetchToken")))
}
