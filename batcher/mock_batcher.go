// Package batcher implements the mock batcher: an external collaborator
// that periodically drains the mempool by priority through the same
// request/response envelope the mempool uses internally. This batcher is a
// stand-in that logs what it drains rather than building blocks, useful for
// exercising the mempool's drain path during local development.
package batcher

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/starknet-sequencer/mempool/core/types"
)

// MempoolClient is the batcher boundary client contract: GetTransactions(n).
type MempoolClient interface {
	GetTxs(ctx context.Context, n int) ([]types.ThinTransaction, error)
}

// MockBatcher polls the mempool on a fixed interval and drains up to
// batchSize transactions per poll.
type MockBatcher struct {
	client    MempoolClient
	batchSize int
	interval  time.Duration
}

// New constructs a MockBatcher bound to client.
func New(client MempoolClient, batchSize int, interval time.Duration) *MockBatcher {
	return &MockBatcher{client: client, batchSize: batchSize, interval: interval}
}

// Run polls until ctx is canceled, the long-lived task a real batcher
// actor would also run.
func (b *MockBatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.pollOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (b *MockBatcher) pollOnce(ctx context.Context) {
	txs, err := b.client.GetTxs(ctx, b.batchSize)
	if err != nil {
		log.Error("Mock batcher failed to fetch transactions from mempool", "error", err)
		return
	}
	if len(txs) == 0 {
		return
	}
	log.Info("Mock batcher drained transactions", "count", len(txs))
}
