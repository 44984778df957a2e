package mempool

import "sort"

// accountQueue is one account's transactions ordered by nonce. Accounts
// rarely hold more than a handful of in-flight transactions, so a sorted
// slice plus a lookup map keeps the implementation simple without needing
// a balanced tree.
type accountQueue struct {
	nonces  []uint64
	byNonce map[uint64]TxRef
}

func newAccountQueue() *accountQueue {
	return &accountQueue{byNonce: make(map[uint64]TxRef)}
}

func (q *accountQueue) isEmpty() bool { return len(q.nonces) == 0 }

// insert adds ref at its nonce, keeping q.nonces sorted ascending.
func (q *accountQueue) insert(ref TxRef) {
	q.byNonce[ref.Nonce] = ref
	i := sort.Search(len(q.nonces), func(i int) bool { return q.nonces[i] >= ref.Nonce })
	q.nonces = append(q.nonces, 0)
	copy(q.nonces[i+1:], q.nonces[i:])
	q.nonces[i] = ref.Nonce
}

// front returns the lowest-nonce entry, the only one ever eligible for
// priority-queue membership.
func (q *accountQueue) front() (TxRef, bool) {
	if q.isEmpty() {
		return TxRef{}, false
	}
	return q.byNonce[q.nonces[0]], true
}

// removeFront removes the current lowest-nonce entry.
func (q *accountQueue) removeFront() {
	if q.isEmpty() {
		return
	}
	delete(q.byNonce, q.nonces[0])
	q.nonces = q.nonces[1:]
}

// removeNonce removes a specific nonce's entry, wherever it sits in the
// queue (used by commit_block to drop a committed or stale entry that need
// not be the current front).
func (q *accountQueue) removeNonce(nonce uint64) bool {
	if _, ok := q.byNonce[nonce]; !ok {
		return false
	}
	delete(q.byNonce, nonce)
	i := sort.Search(len(q.nonces), func(i int) bool { return q.nonces[i] >= nonce })
	if i < len(q.nonces) && q.nonces[i] == nonce {
		q.nonces = append(q.nonces[:i], q.nonces[i+1:]...)
	}
	return true
}
