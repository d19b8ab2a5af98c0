package entities

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Int is an integer field as served by the subgraph. BigInt values arrive as
// JSON strings ("18"), plain numbers are accepted as well, null decodes to 0.
type Int int64

var (
	minInt = decimal.NewFromInt(math.MinInt64)
	maxInt = decimal.NewFromInt(math.MaxInt64)
)

// UnmarshalJSON accepts quoted and unquoted integers
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}

	raw := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %s: %w", raw, err)
		}
		raw = unquoted
	}
	if raw == "" {
		*i = 0
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		*i = Int(n)
		return nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("integer %q out of range", raw)
	}

	// Exponent or trailing ".0" forms, e.g. 1e3
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return fmt.Errorf("invalid integer %q", raw)
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return fmt.Errorf("integer %q out of range", raw)
	}
	*i = Int(d.IntPart())
	return nil
}

// Int64 returns the value as int64
func (i Int) Int64() int64 {
	return int64(i)
}
