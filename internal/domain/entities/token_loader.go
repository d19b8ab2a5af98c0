package entities

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenConfig represents token configuration from JSON
type TokenConfig struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int64  `json:"decimals"`
}

// TokensConfig represents the tokens.json structure
type TokensConfig struct {
	Tokens []TokenConfig `json:"tokens"`
}

// TokenRegistry maps well-known symbols to token ids so callers can
// refer to tokens by name instead of address
type TokenRegistry struct {
	byID     map[string]Token
	bySymbol map[string]Token
	all      []Token
}

// NewTokenRegistry creates a new token registry
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		byID:     make(map[string]Token),
		bySymbol: make(map[string]Token),
		all:      make([]Token, 0),
	}
}

// LoadFromFile loads tokens from a JSON config file
func (r *TokenRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read token config: %w", err)
	}

	var config TokensConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse token config: %w", err)
	}

	for _, tc := range config.Tokens {
		if !common.IsHexAddress(tc.Address) {
			return fmt.Errorf("invalid address for token %s: %q", tc.Symbol, tc.Address)
		}
		r.Register(Token{
			ID:       strings.ToLower(tc.Address),
			Symbol:   tc.Symbol,
			Name:     tc.Name,
			Decimals: Int(tc.Decimals),
		})
	}

	return nil
}

// Register adds a token to the registry
func (r *TokenRegistry) Register(token Token) {
	token.ID = strings.ToLower(token.ID)
	r.byID[token.ID] = token
	r.bySymbol[strings.ToUpper(token.Symbol)] = token
	r.all = append(r.all, token)
}

// GetByID returns a token by its id, ignoring case
func (r *TokenRegistry) GetByID(id string) (Token, bool) {
	token, ok := r.byID[strings.ToLower(id)]
	return token, ok
}

// GetBySymbol returns a token by its symbol, ignoring case
func (r *TokenRegistry) GetBySymbol(symbol string) (Token, bool) {
	token, ok := r.bySymbol[strings.ToUpper(symbol)]
	return token, ok
}

// Lookup resolves either a hex address or a registered symbol to a token id.
// Unknown addresses are returned as-is; unknown symbols are not found.
func (r *TokenRegistry) Lookup(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if common.IsHexAddress(ref) {
		return ref, true
	}
	if token, ok := r.GetBySymbol(ref); ok {
		return token.ID, true
	}
	return "", false
}

// GetAll returns all registered tokens
func (r *TokenRegistry) GetAll() []Token {
	return r.all
}

// Count returns the number of registered tokens
func (r *TokenRegistry) Count() int {
	return len(r.all)
}

// DefaultRegistry returns a registry with hardcoded default tokens
// Use this as fallback if config file is not available
func DefaultRegistry() *TokenRegistry {
	r := NewTokenRegistry()
	r.Register(WETH)
	r.Register(USDC)
	r.Register(USDT)
	r.Register(DAI)
	return r
}
