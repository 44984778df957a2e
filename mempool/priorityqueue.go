package mempool

import (
	"container/heap"

	"github.com/starknet-sequencer/mempool/common/felt"
)

// TxRef is the lightweight per-account queue entry: enough to locate and
// prioritize a transaction without duplicating its full payload.
type TxRef struct {
	Address felt.Felt
	Nonce   uint64
	TxHash  felt.Felt
	Tip     uint64
}

// priorityQueue is the global index over currently eligible transactions,
// ordered by (tip descending, tx_hash ascending). It is a thin
// container/heap.Interface implementation, the same idiom go-ethereum uses
// for its own transaction price heaps.
type priorityQueue struct {
	items []TxRef
}

func newPriorityQueue() *priorityQueue {
	pq := &priorityQueue{}
	heap.Init(pq)
	return pq
}

func (pq *priorityQueue) Len() int { return len(pq.items) }

// Less reports whether i is strictly higher priority than j: a higher tip
// wins; ties break by the lexicographically smaller tx_hash. Since
// container/heap.Pop removes index 0 (the "least" element under Less), and
// we want the highest-priority element popped first, Less is defined so
// the highest-priority entry sorts as the minimum.
func (pq *priorityQueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.Tip != b.Tip {
		return a.Tip > b.Tip
	}
	return a.TxHash.Cmp(b.TxHash) < 0
}

func (pq *priorityQueue) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *priorityQueue) Push(x any) { pq.items = append(pq.items, x.(TxRef)) }

func (pq *priorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	pq.items = old[:n-1]
	return item
}

// PushRef inserts ref, maintaining heap order.
func (pq *priorityQueue) PushRef(ref TxRef) { heap.Push(pq, ref) }

// PopMax removes and returns the current highest-priority entry.
func (pq *priorityQueue) PopMax() (TxRef, bool) {
	if pq.Len() == 0 {
		return TxRef{}, false
	}
	return heap.Pop(pq).(TxRef), true
}

// Contains reports whether txHash is currently present in the queue, used
// by commit-block promotion to avoid pushing an entry twice.
func (pq *priorityQueue) Contains(txHash felt.Felt) bool {
	for _, item := range pq.items {
		if item.TxHash == txHash {
			return true
		}
	}
	return false
}
