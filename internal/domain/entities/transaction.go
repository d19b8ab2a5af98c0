package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a swap executed against a pool
type Transaction struct {
	ID        string          `json:"id"`
	Timestamp Int             `json:"timestamp"`
	Pair      *Pair           `json:"pair,omitempty"`
	TxHash    string          `json:"txHash"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	Origin    string          `json:"origin"`
	Amount0   decimal.Decimal `json:"amount0"`
	Amount1   decimal.Decimal `json:"amount1"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	LogIndex  Int             `json:"logIndex"`
}

// swapRecord mirrors the subgraph Swap entity, where the pool and the
// enclosing transaction are nested objects
type swapRecord struct {
	ID          string          `json:"id"`
	Timestamp   Int             `json:"timestamp"`
	Pool        json.RawMessage `json:"pool"`
	Transaction *struct {
		ID string `json:"id"`
	} `json:"transaction"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	Origin    string          `json:"origin"`
	Amount0   decimal.Decimal `json:"amount0"`
	Amount1   decimal.Decimal `json:"amount1"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	LogIndex  Int             `json:"logIndex"`
}

// TransactionFromJSON builds a Transaction from a single subgraph swap record.
// A null or empty record yields nil without error.
func TransactionFromJSON(raw json.RawMessage) (*Transaction, error) {
	if isEmptyRecord(raw) {
		return nil, nil
	}

	var rec swapRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	tx := &Transaction{
		ID:        rec.ID,
		Timestamp: rec.Timestamp,
		Sender:    rec.Sender,
		Recipient: rec.Recipient,
		Origin:    rec.Origin,
		Amount0:   rec.Amount0,
		Amount1:   rec.Amount1,
		AmountUSD: rec.AmountUSD,
		LogIndex:  rec.LogIndex,
	}
	pool, err := PairFromJSON(rec.Pool)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}
	tx.Pair = pool
	if rec.Transaction != nil {
		tx.TxHash = rec.Transaction.ID
	}
	return tx, nil
}

// Time returns the swap timestamp as UTC time
func (t Transaction) Time() time.Time {
	return time.Unix(t.Timestamp.Int64(), 0).UTC()
}

// IsBuy reports whether token0 left the pool, i.e. the trader bought token0
func (t Transaction) IsBuy() bool {
	return t.Amount0.IsNegative()
}
