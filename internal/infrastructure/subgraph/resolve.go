package subgraph

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bimakw/uniswap-subgraph/internal/domain/entities"
)

// FetchSpecificPair returns the pool between two tokens with the highest
// traded volume, querying both token orderings. Token ids are lower-cased
// first. It returns nil when neither ordering has a pool.
func (c *Client) FetchSpecificPair(ctx context.Context, token0ID, token1ID string) (*entities.Pair, error) {
	fields, err := c.query(ctx, SpecificPairQuery, Variables{
		"token0_id": strings.ToLower(token0ID),
		"token1_id": strings.ToLower(token1ID),
	})
	if err != nil {
		return nil, err
	}

	pool0, err := decodeRecords(fields, pool0Field, entities.PairFromJSON)
	if err != nil {
		return nil, err
	}
	pool1, err := decodeRecords(fields, pool1Field, entities.PairFromJSON)
	if err != nil {
		return nil, err
	}

	return SelectPair(pool0, pool1), nil
}

// SelectPair picks one pool out of the two candidate lists returned for the
// (token0, token1) and (token1, token0) orderings.
//
// With both lists populated the highest volume of each list is compared and
// the first record of the winning list is returned; pool0 wins unless pool1's
// maximum is strictly greater. With one list populated its highest-volume
// record is returned, the earliest one on ties. With none it returns nil.
func SelectPair(pool0, pool1 []entities.Pair) *entities.Pair {
	switch {
	case len(pool0) > 0 && len(pool1) > 0:
		if maxVolume(pool1).GreaterThan(maxVolume(pool0)) {
			pair := pool1[0]
			return &pair
		}
		pair := pool0[0]
		return &pair
	case len(pool0) > 0:
		return highestVolume(pool0)
	case len(pool1) > 0:
		return highestVolume(pool1)
	default:
		return nil
	}
}

// maxVolume returns the largest VolumeUSD in a non-empty list
func maxVolume(pairs []entities.Pair) decimal.Decimal {
	return highestVolume(pairs).VolumeUSD
}

// highestVolume returns the first pair with the largest VolumeUSD
func highestVolume(pairs []entities.Pair) *entities.Pair {
	if len(pairs) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(pairs); i++ {
		if pairs[i].VolumeUSD.GreaterThan(pairs[best].VolumeUSD) {
			best = i
		}
	}

	pair := pairs[best]
	return &pair
}
