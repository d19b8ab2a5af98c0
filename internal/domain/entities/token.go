package entities

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token is an ERC-20 token as indexed by the Uniswap V3 subgraph
type Token struct {
	ID                  string          `json:"id"`
	Symbol              string          `json:"symbol"`
	Name                string          `json:"name"`
	Decimals            Int             `json:"decimals"`
	TotalSupply         decimal.Decimal `json:"totalSupply"`
	Volume              decimal.Decimal `json:"volume"`
	VolumeUSD           decimal.Decimal `json:"volumeUSD"`
	TxCount             Int             `json:"txCount"`
	PoolCount           Int             `json:"poolCount"`
	TotalValueLocked    decimal.Decimal `json:"totalValueLocked"`
	TotalValueLockedUSD decimal.Decimal `json:"totalValueLockedUSD"`
	DerivedETH          decimal.Decimal `json:"derivedETH"`
}

// TokenFromJSON builds a Token from a single subgraph record.
// A null or empty record yields nil without error.
func TokenFromJSON(raw json.RawMessage) (*Token, error) {
	if isEmptyRecord(raw) {
		return nil, nil
	}

	var token Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Address returns the token id as an Ethereum address
func (t Token) Address() common.Address {
	return common.HexToAddress(t.ID)
}

// IsAddress reports whether the token id is a well-formed hex address
func (t Token) IsAddress() bool {
	return common.IsHexAddress(t.ID)
}

// Is reports whether the token has the given id, ignoring case
func (t Token) Is(id string) bool {
	return t.ID != "" && strings.EqualFold(t.ID, id)
}

// matches is Is for an optional token
func (t *Token) matches(id string) bool {
	return t != nil && t.Is(id)
}

// WETH is the canonical Wrapped Ether token on Ethereum mainnet
var WETH = Token{
	ID:       "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
	Symbol:   "WETH",
	Name:     "Wrapped Ether",
	Decimals: 18,
}

// USDC is USD Coin on Ethereum mainnet
var USDC = Token{
	ID:       "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	Symbol:   "USDC",
	Name:     "USD Coin",
	Decimals: 6,
}

// USDT is Tether USD on Ethereum mainnet
var USDT = Token{
	ID:       "0xdac17f958d2ee523a2206206994597c13d831ec7",
	Symbol:   "USDT",
	Name:     "Tether USD",
	Decimals: 6,
}

// DAI is Dai Stablecoin on Ethereum mainnet
var DAI = Token{
	ID:       "0x6b175474e89094c44da98b954eedeac495271d0f",
	Symbol:   "DAI",
	Name:     "Dai Stablecoin",
	Decimals: 18,
}

// isEmptyRecord reports whether raw is absent, null or an object without keys
func isEmptyRecord(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return true
	}
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}
