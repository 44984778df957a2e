package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

func input(address felt.Felt, nonce, tip uint64, txHash felt.Felt, accountNonce uint64) types.MempoolInput {
	return types.MempoolInput{
		Tx: types.ThinTransaction{
			SenderAddress: address,
			TxHash:        txHash,
			Tip:           tip,
			Nonce:         nonce,
		},
		Account: types.Account{
			Address: address,
			State:   types.AccountState{Nonce: accountNonce},
		},
	}
}

func TestAddTxRejectsDuplicate(t *testing.T) {
	p := New()
	addr := felt.FromUint64(1)
	txHash := felt.FromUint64(100)

	require.NoError(t, p.AddTx(input(addr, 0, 5, txHash, 0)))

	err := p.AddTx(input(addr, 0, 5, txHash, 0))
	require.Error(t, err)
	var dup *ErrDuplicateTransaction
	require.ErrorAs(t, err, &dup)
}

func TestGetTxsOrdersByTipDescendingThenHashAscending(t *testing.T) {
	p := New()
	addrA := felt.FromUint64(1)
	addrB := felt.FromUint64(2)
	addrC := felt.FromUint64(3)

	require.NoError(t, p.AddTx(input(addrA, 0, 10, felt.FromUint64(200), 0)))
	require.NoError(t, p.AddTx(input(addrB, 0, 20, felt.FromUint64(300), 0)))
	require.NoError(t, p.AddTx(input(addrC, 0, 20, felt.FromUint64(100), 0)))

	txs := p.GetTxs(3)
	require.Len(t, txs, 3)
	require.Equal(t, uint64(20), txs[0].Tip)
	require.Equal(t, felt.FromUint64(100), txs[0].TxHash) // tie-break: smaller hash first
	require.Equal(t, uint64(20), txs[1].Tip)
	require.Equal(t, felt.FromUint64(300), txs[1].TxHash)
	require.Equal(t, uint64(10), txs[2].Tip)
}

func TestOnlyFrontNonceIsEligible(t *testing.T) {
	p := New()
	addr := felt.FromUint64(1)

	// nonce 1 arrives before nonce 0: it must not be eligible yet.
	require.NoError(t, p.AddTx(input(addr, 1, 50, felt.FromUint64(2), 0)))
	require.Empty(t, p.GetTxs(10))

	require.NoError(t, p.AddTx(input(addr, 0, 5, felt.FromUint64(1), 0)))

	txs := p.GetTxs(10)
	require.Len(t, txs, 1)
	require.Equal(t, uint64(0), txs[0].Nonce)

	// Now nonce 1 has become the front and eligible.
	txs = p.GetTxs(10)
	require.Len(t, txs, 1)
	require.Equal(t, uint64(1), txs[0].Nonce)
}

func TestCommitBlockAdvancesNonceAndExpiresStale(t *testing.T) {
	p := New()
	addr := felt.FromUint64(1)

	require.NoError(t, p.AddTx(input(addr, 0, 5, felt.FromUint64(1), 0)))
	require.NoError(t, p.AddTx(input(addr, 1, 5, felt.FromUint64(2), 0)))
	require.NoError(t, p.AddTx(input(addr, 2, 5, felt.FromUint64(3), 0)))

	// Block commits nonce 0 directly (e.g. via an external batch), and the
	// account's committed nonce advances to 2, expiring the stale nonce-1
	// entry and promoting nonce-2 to eligible.
	err := p.CommitBlock(1, []felt.Felt{felt.FromUint64(1)}, map[felt.Felt]types.AccountState{
		addr: {Nonce: 2},
	})
	require.NoError(t, err)

	txs := p.GetTxs(10)
	require.Len(t, txs, 1)
	require.Equal(t, uint64(2), txs[0].Nonce)
}

func TestIndexConsistencyAcrossAddAndDrain(t *testing.T) {
	p := New()
	addr := felt.FromUint64(1)
	txHash := felt.FromUint64(1)

	require.NoError(t, p.AddTx(input(addr, 0, 5, txHash, 0)))
	require.Contains(t, p.txPool, txHash)
	require.Contains(t, p.txsByAccount, addr)

	p.GetTxs(1)
	require.NotContains(t, p.txPool, txHash)
	require.NotContains(t, p.txsByAccount, addr)
}

func TestSubscribeNewPendingTxNotifiesOnAdd(t *testing.T) {
	p := New()
	addr := felt.FromUint64(1)
	txHash := felt.FromUint64(42)

	ch := make(chan felt.Felt, 1)
	sub := p.SubscribeNewPendingTx(ch)
	defer sub.Unsubscribe()

	require.NoError(t, p.AddTx(input(addr, 0, 5, txHash, 0)))

	select {
	case got := <-ch:
		require.Equal(t, txHash, got)
	default:
		t.Fatal("expected a pending-tx notification after AddTx")
	}
}
