package mempool

import (
	"container/heap"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

var (
	addedTxsMeter    = metrics.NewRegisteredCounter("mempool/txs/added", nil)
	drainedTxsMeter  = metrics.NewRegisteredCounter("mempool/txs/drained", nil)
	rejectedTxsMeter = metrics.NewRegisteredCounter("mempool/txs/rejected", nil)
)

// Pool is the in-memory mempool. It owns the transaction index, the
// per-account ordered queues, and the priority queue, and enforces their
// consistency. A single actor owns this state in production (no concurrent
// writers), but the mutex is kept so the pool is also safe to unit test and
// to drive directly without the component runtime in front of it.
type Pool struct {
	mu sync.Mutex

	txPool        map[felt.Felt]types.ThinTransaction
	txsByAccount  map[felt.Felt]*accountQueue
	expectedNonce map[felt.Felt]uint64
	priority      *priorityQueue

	newPendingTxFeed event.Feed
}

// New constructs an empty Pool.
func New() *Pool {
	return &Pool{
		txPool:        make(map[felt.Felt]types.ThinTransaction),
		txsByAccount:  make(map[felt.Felt]*accountQueue),
		expectedNonce: make(map[felt.Felt]uint64),
		priority:      newPriorityQueue(),
	}
}

// SubscribeNewPendingTx registers ch to receive the hash of every
// transaction admitted by AddTx. The subscription must be canceled by the
// caller when no longer needed.
func (p *Pool) SubscribeNewPendingTx(ch chan<- felt.Felt) event.Subscription {
	return p.newPendingTxFeed.Subscribe(ch)
}

// AddTx admits a single transaction into the pool, rejecting duplicates and
// pushing it onto the priority queue only once it is the front of its
// account's nonce-ordered queue.
func (p *Pool) AddTx(input types.MempoolInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx := input.Tx
	if _, exists := p.txPool[tx.TxHash]; exists {
		rejectedTxsMeter.Inc(1)
		return &ErrDuplicateTransaction{TxHash: tx.TxHash}
	}

	p.txPool[tx.TxHash] = tx

	queue, ok := p.txsByAccount[tx.SenderAddress]
	if !ok {
		queue = newAccountQueue()
		p.txsByAccount[tx.SenderAddress] = queue
	}
	if _, hasExpected := p.expectedNonce[tx.SenderAddress]; !hasExpected {
		p.expectedNonce[tx.SenderAddress] = input.Account.State.Nonce
	}

	ref := TxRef{Address: tx.SenderAddress, Nonce: tx.Nonce, TxHash: tx.TxHash, Tip: tx.Tip}
	queue.insert(ref)

	if tx.Nonce == p.expectedNonce[tx.SenderAddress] {
		p.priority.PushRef(ref)
	}

	addedTxsMeter.Inc(1)
	log.Debug("Added transaction to mempool", "tx_hash", tx.TxHash.Hex(), "sender", tx.SenderAddress.Hex(), "nonce", tx.Nonce)
	p.checkConsistencyDebug()
	p.newPendingTxFeed.Send(tx.TxHash)
	return nil
}

// GetTxs drains up to n highest-priority eligible transactions and promotes
// each account's next-in-line entry when it becomes eligible.
func (p *Pool) GetTxs(n int) []types.ThinTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	drained := make([]types.ThinTransaction, 0, n)
	for i := 0; i < n; i++ {
		ref, ok := p.priority.PopMax()
		if !ok {
			break
		}

		tx, exists := p.txPool[ref.TxHash]
		if !exists {
			// Index inconsistency between the priority queue and tx_pool: an
			// implementation bug, not a recoverable runtime condition.
			log.Crit("mempool: priority queue entry missing from tx_pool", "tx_hash", ref.TxHash.Hex())
		}
		delete(p.txPool, ref.TxHash)

		queue := p.txsByAccount[ref.Address]
		queue.removeFront()
		p.expectedNonce[ref.Address] = ref.Nonce + 1

		if front, hasFront := queue.front(); hasFront && front.Nonce == p.expectedNonce[ref.Address] {
			p.priority.PushRef(front)
		}
		if queue.isEmpty() {
			delete(p.txsByAccount, ref.Address)
		}

		drained = append(drained, tx)
	}

	drainedTxsMeter.Inc(int64(len(drained)))
	p.checkConsistencyDebug()
	return drained
}

// CommitBlock removes committed transactions and advances each affected
// account's expected nonce, expiring now-stale queued entries and promoting
// whichever entry becomes newly eligible. The interface is fixed here though
// driving it from a real consensus/batcher loop is out of scope for this
// revision.
func (p *Pool) CommitBlock(blockNumber uint64, committedTxHashes []felt.Felt, stateChanges map[felt.Felt]types.AccountState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, txHash := range committedTxHashes {
		tx, exists := p.txPool[txHash]
		if !exists {
			continue // idempotent
		}
		delete(p.txPool, txHash)
		if queue, ok := p.txsByAccount[tx.SenderAddress]; ok {
			queue.removeNonce(tx.Nonce)
			if queue.isEmpty() {
				delete(p.txsByAccount, tx.SenderAddress)
			}
		}
		p.priority.removeByHash(txHash)
	}

	for address, state := range stateChanges {
		p.expectedNonce[address] = state.Nonce
		queue, ok := p.txsByAccount[address]
		if !ok {
			continue
		}
		p.promoteOrExpire(address, queue, state.Nonce)
	}

	log.Info("Committed block", "block_number", blockNumber, "committed_txs", len(committedTxHashes))
	p.checkConsistencyDebug()
	return nil
}

// promoteOrExpire drops entries made stale by a committed nonce advance and
// promotes the new front into the priority queue if it is now eligible.
func (p *Pool) promoteOrExpire(address felt.Felt, queue *accountQueue, expected uint64) {
	for {
		front, ok := queue.front()
		if !ok || front.Nonce >= expected {
			break
		}
		queue.removeFront()
		delete(p.txPool, front.TxHash)
		p.priority.removeByHash(front.TxHash)
	}
	if queue.isEmpty() {
		delete(p.txsByAccount, address)
		return
	}
	if front, ok := queue.front(); ok && front.Nonce == expected && !p.priority.Contains(front.TxHash) {
		p.priority.PushRef(front)
	}
}

// checkConsistencyDebug is a consistency check run after every AddTx,
// GetTxs and CommitBlock, in every build: every priority-queue element must
// be present in tx_pool and be its account's front entry. A violation is
// logged with log.Crit, which terminates the process.
func (p *Pool) checkConsistencyDebug() {
	for _, ref := range p.priority.items {
		if _, ok := p.txPool[ref.TxHash]; !ok {
			log.Crit("mempool: priority queue references missing tx_pool entry", "tx_hash", ref.TxHash.Hex())
		}
		queue, ok := p.txsByAccount[ref.Address]
		if !ok {
			log.Crit("mempool: priority queue references address absent from txs_by_account", "address", ref.Address.Hex())
			continue
		}
		if front, _ := queue.front(); front.TxHash != ref.TxHash {
			log.Crit("mempool: priority queue entry is not its account's front", "address", ref.Address.Hex())
		}
	}
}

// removeByHash removes the entry matching txHash from the heap, if present.
func (pq *priorityQueue) removeByHash(txHash felt.Felt) bool {
	for i, item := range pq.items {
		if item.TxHash == txHash {
			heap.Remove(pq, i)
			return true
		}
	}
	return false
}
