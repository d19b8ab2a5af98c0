package entities

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// feeTierDenominator converts a V3 fee tier (hundredths of a bip) to a percentage
var feeTierDenominator = decimal.NewFromInt(10000)

// Pair represents a Uniswap V3 pool between two tokens
type Pair struct {
	ID                  string          `json:"id"`
	Token0              *Token          `json:"token0,omitempty"`
	Token1              *Token          `json:"token1,omitempty"`
	FeeTier             Int             `json:"feeTier"` // Fee in hundredths of a bip (e.g., 3000 = 0.3%)
	Liquidity           decimal.Decimal `json:"liquidity"`
	SqrtPrice           decimal.Decimal `json:"sqrtPrice"`
	Token0Price         decimal.Decimal `json:"token0Price"` // token0 per one token1
	Token1Price         decimal.Decimal `json:"token1Price"` // token1 per one token0
	VolumeUSD           decimal.Decimal `json:"volumeUSD"`
	TxCount             Int             `json:"txCount"`
	TotalValueLockedUSD decimal.Decimal `json:"totalValueLockedUSD"`
	CreatedAtTimestamp  Int             `json:"createdAtTimestamp"`
}

// PairFromJSON builds a Pair from a single subgraph pool record.
// A null or empty record yields nil without error.
func PairFromJSON(raw json.RawMessage) (*Pair, error) {
	if isEmptyRecord(raw) {
		return nil, nil
	}

	var pair Pair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// UnmarshalJSON decodes a pool record. A null or empty token object leaves
// the side nil.
func (p *Pair) UnmarshalJSON(data []byte) error {
	if isEmptyRecord(data) {
		return nil
	}

	type plain Pair
	var rec struct {
		plain
		Token0 json.RawMessage `json:"token0"`
		Token1 json.RawMessage `json:"token1"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	token0, err := TokenFromJSON(rec.Token0)
	if err != nil {
		return fmt.Errorf("token0: %w", err)
	}
	token1, err := TokenFromJSON(rec.Token1)
	if err != nil {
		return fmt.Errorf("token1: %w", err)
	}

	*p = Pair(rec.plain)
	p.Token0 = token0
	p.Token1 = token1
	return nil
}

// Fee returns the pool fee as a percentage (3000 -> 0.3)
func (p Pair) Fee() decimal.Decimal {
	return decimal.NewFromInt(p.FeeTier.Int64()).Div(feeTierDenominator)
}

// Contains reports whether the token id is one side of the pair
func (p Pair) Contains(tokenID string) bool {
	return p.Token0.matches(tokenID) || p.Token1.matches(tokenID)
}

// PriceOf returns the price of tokenID denominated in the other side of the pair.
// The second return value is false when tokenID is not part of the pair.
func (p Pair) PriceOf(tokenID string) (decimal.Decimal, bool) {
	switch {
	case p.Token0.matches(tokenID):
		return p.Token1Price, true
	case p.Token1.matches(tokenID):
		return p.Token0Price, true
	default:
		return decimal.Zero, false
	}
}
