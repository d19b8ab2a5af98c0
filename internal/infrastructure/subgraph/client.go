package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"slices"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
)

// DefaultSwapWindow is the half-width of the window used by FetchSwapsNear
const DefaultSwapWindow int64 = 600000

// Swap listing defaults
const (
	DefaultSwapLimit          = 10
	DefaultSwapOrderBy        = "timestamp"
	DefaultSwapOrderDirection = "desc"
)

// Fields read from the data object of each response
const (
	tokenField = "token"
	pairsField = "pairs"
	swapsField = "swaps"
	pool0Field = "pool0"
	pool1Field = "pool1"
)

// RawRecord is a response record passed through without mapping
type RawRecord map[string]any

// SwapQueryOptions controls FetchSwapTransactions. Zero values fall back to
// the latest DefaultSwapLimit swaps ordered by timestamp, newest first.
type SwapQueryOptions struct {
	First          int
	OrderBy        string
	OrderDirection string
}

func (o SwapQueryOptions) withDefaults() SwapQueryOptions {
	if o.First <= 0 {
		o.First = DefaultSwapLimit
	}
	if o.OrderBy == "" {
		o.OrderBy = DefaultSwapOrderBy
	}
	if o.OrderDirection == "" {
		o.OrderDirection = DefaultSwapOrderDirection
	}
	return o
}

// Client fetches tokens, pools and swaps from the Uniswap V3 subgraph
type Client struct {
	transport *Transport
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a new subgraph client
func NewClient(opts ...Option) *Client {
	return &Client{transport: NewTransport(opts...)}
}

// Endpoint returns the subgraph URL the client queries
func (c *Client) Endpoint() string {
	return c.transport.Endpoint()
}

// FetchToken returns the token with the given id, or nil when the subgraph has none
func (c *Client) FetchToken(ctx context.Context, tokenID string) (*entities.Token, error) {
	fields, err := c.query(ctx, TokenQuery, Variables{"id": tokenID})
	if err != nil {
		return nil, err
	}

	token, err := entities.TokenFromJSON(fields[tokenField])
	if err != nil {
		return nil, &DecodeError{Field: tokenField, Err: err}
	}
	return token, nil
}

// FetchPairsForToken returns the pools whose token0 is the given token, in response order
func (c *Client) FetchPairsForToken(ctx context.Context, tokenID string) ([]entities.Pair, error) {
	fields, err := c.query(ctx, PairsForTokenQuery, Variables{"id": tokenID})
	if err != nil {
		return nil, err
	}
	return decodeRecords(fields, pairsField, entities.PairFromJSON)
}

// FetchSwapTransactions returns swaps of a pool
func (c *Client) FetchSwapTransactions(ctx context.Context, pairID string, opts SwapQueryOptions) ([]entities.Transaction, error) {
	opts = opts.withDefaults()
	fields, err := c.query(ctx, SwapTransactionsQuery, Variables{
		"pairId":         pairID,
		"first":          opts.First,
		"orderBy":        opts.OrderBy,
		"orderDirection": opts.OrderDirection,
	})
	if err != nil {
		return nil, err
	}

	return decodeRecords(fields, swapsField, entities.TransactionFromJSON)
}

// FetchSwapsNear returns the raw swap records of a pool whose timestamp lies in
// [targetTimestamp-window, targetTimestamp+window]. A non-positive window uses
// DefaultSwapWindow. Null or empty records are dropped.
func (c *Client) FetchSwapsNear(ctx context.Context, pairID string, targetTimestamp, window int64) ([]RawRecord, error) {
	if window <= 0 {
		window = DefaultSwapWindow
	}
	start, end := SwapWindow(targetTimestamp, window)

	fields, err := c.query(ctx, SwapsForTimestampQuery, Variables{
		"pair_id":    pairID,
		"start_time": start,
		"end_time":   end,
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeList[RawRecord](fields, swapsField)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(records, func(r RawRecord) bool { return len(r) == 0 }), nil
}

// SwapWindow returns the inclusive bounds around a target timestamp. Bounds
// saturate at the int64 limits.
func SwapWindow(targetTimestamp, window int64) (int64, int64) {
	return saturatingSub(targetTimestamp, window), saturatingAdd(targetTimestamp, window)
}

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}
	return sum
}

func saturatingSub(a, b int64) int64 {
	diff := a - b
	switch {
	case b > 0 && diff > a:
		return math.MinInt64
	case b < 0 && diff < a:
		return math.MaxInt64
	}
	return diff
}

// query sends a document and returns the fields under data. A missing or
// null data key yields an empty field set.
func (c *Client) query(ctx context.Context, query string, variables Variables) (map[string]json.RawMessage, error) {
	envelope, err := c.transport.Send(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	raw, ok := envelope["data"]
	if !ok || isNull(raw) {
		return map[string]json.RawMessage{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DecodeError{Field: "data", Err: err}
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

// decodeList decodes a list field, treating a missing or null field as empty
func decodeList[T any](fields map[string]json.RawMessage, name string) ([]T, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return []T{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var items []T
	if err := dec.Decode(&items); err != nil {
		return nil, &DecodeError{Field: name, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeRecords maps every record of a list field with build. Records that
// build reports as absent are left out.
func decodeRecords[T any](fields map[string]json.RawMessage, name string, build func(json.RawMessage) (*T, error)) ([]T, error) {
	raws, err := decodeList[json.RawMessage](fields, name)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		item, err := build(raw)
		if err != nil {
			return nil, &DecodeError{Field: name, Err: err}
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
