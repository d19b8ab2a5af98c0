package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
	"github.com/bimakw/uniswap-subgraph/internal/logger"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidPair   = errors.New("invalid pair address")
	ErrTokenNotFound = errors.New("token not found")
	ErrPairNotFound  = errors.New("no pool found for token pair")
)

// MarketService answers market questions on top of the subgraph client.
// Absence reported by the client becomes a not-found error here.
type MarketService struct {
	fetcher  subgraph.Fetcher
	registry *entities.TokenRegistry
}

func NewMarketService(fetcher subgraph.Fetcher, registry *entities.TokenRegistry) *MarketService {
	if registry == nil {
		registry = entities.DefaultRegistry()
	}
	return &MarketService{
		fetcher:  fetcher,
		registry: registry,
	}
}

// PriceQuote is the spot price of Base denominated in Quote
type PriceQuote struct {
	Base  string
	Quote string
	Price decimal.Decimal
	Pair  *entities.Pair
}

// GetToken returns a token by address or registered symbol
func (s *MarketService) GetToken(ctx context.Context, ref string) (*entities.Token, error) {
	id, err := s.resolveToken(ref)
	if err != nil {
		return nil, err
	}

	token, err := s.fetcher.FetchToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token %s: %w", id, err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, id)
	}
	return token, nil
}

// TopPairs returns the pools of a token ordered by traded volume, at most limit
// of them when limit is positive
func (s *MarketService) TopPairs(ctx context.Context, ref string, limit int) ([]entities.Pair, error) {
	id, err := s.resolveToken(ref)
	if err != nil {
		return nil, err
	}

	pairs, err := s.fetcher.FetchPairsForToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pairs for %s: %w", id, err)
	}

	slices.SortStableFunc(pairs, func(a, b entities.Pair) int {
		return b.VolumeUSD.Cmp(a.VolumeUSD)
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs, nil
}

// ResolvePair returns the highest-volume pool between two tokens
func (s *MarketService) ResolvePair(ctx context.Context, refA, refB string) (*entities.Pair, error) {
	tokenA, err := s.resolveToken(refA)
	if err != nil {
		return nil, err
	}
	tokenB, err := s.resolveToken(refB)
	if err != nil {
		return nil, err
	}

	pair, err := s.fetcher.FetchSpecificPair(ctx, tokenA, tokenB)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pair: %w", err)
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrPairNotFound, tokenA, tokenB)
	}

	logger.Debug("Resolved pair",
		zap.String("tokenA", tokenA),
		zap.String("tokenB", tokenB),
		zap.String("pair", pair.ID),
		zap.String("volumeUSD", pair.VolumeUSD.String()))

	return pair, nil
}

// SpotPrice returns the current pool price of base in terms of quote.
// An empty quote defaults to USDC.
func (s *MarketService) SpotPrice(ctx context.Context, base, quote string) (*PriceQuote, error) {
	if quote == "" {
		quote = entities.USDC.ID
	}

	pair, err := s.ResolvePair(ctx, base, quote)
	if err != nil {
		return nil, err
	}

	baseID, _ := s.resolveToken(base)
	price, ok := pair.PriceOf(baseID)
	if !ok {
		return nil, fmt.Errorf("%w: pool %s does not contain %s", ErrPairNotFound, pair.ID, baseID)
	}

	quoteID, _ := s.resolveToken(quote)
	return &PriceQuote{
		Base:  baseID,
		Quote: quoteID,
		Price: price,
		Pair:  pair,
	}, nil
}

// RecentSwaps returns the swaps of a pool
func (s *MarketService) RecentSwaps(ctx context.Context, pairID string, opts subgraph.SwapQueryOptions) ([]entities.Transaction, error) {
	if !common.IsHexAddress(pairID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pairID)
	}

	swaps, err := s.fetcher.FetchSwapTransactions(ctx, pairID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swaps for %s: %w", pairID, err)
	}
	return swaps, nil
}

// SwapsNear returns the raw swaps of a pool around a timestamp
func (s *MarketService) SwapsNear(ctx context.Context, pairID string, timestamp, window int64) ([]subgraph.RawRecord, error) {
	if !common.IsHexAddress(pairID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pairID)
	}

	swaps, err := s.fetcher.FetchSwapsNear(ctx, pairID, timestamp, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swaps near %d for %s: %w", timestamp, pairID, err)
	}
	return swaps, nil
}

// resolveToken maps a symbol or address to the lower-case id the subgraph indexes
func (s *MarketService) resolveToken(ref string) (string, error) {
	id, ok := s.registry.Lookup(ref)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidToken, ref)
	}
	return strings.ToLower(id), nil
}
