package subgraph

import (
	"context"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
)

// Fetcher defines the read operations offered by the subgraph client
type Fetcher interface {
	FetchToken(ctx context.Context, tokenID string) (*entities.Token, error)

	FetchPairsForToken(ctx context.Context, tokenID string) ([]entities.Pair, error)

	FetchSwapTransactions(ctx context.Context, pairID string, opts SwapQueryOptions) ([]entities.Transaction, error)

	// FetchSwapsNear returns raw swap records, not mapped to entities
	FetchSwapsNear(ctx context.Context, pairID string, targetTimestamp, window int64) ([]RawRecord, error)

	// FetchSpecificPair resolves the highest-volume pool between two tokens
	FetchSpecificPair(ctx context.Context, token0ID, token1ID string) (*entities.Pair, error)
}
