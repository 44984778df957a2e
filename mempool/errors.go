package mempool

import (
	"fmt"

	"github.com/starknet-sequencer/mempool/common/felt"
)

// ErrDuplicateTransaction is returned by AddTx when tx_hash is already
// present in the pool.
type ErrDuplicateTransaction struct {
	TxHash felt.Felt
}

func (e *ErrDuplicateTransaction) Error() string {
	return fmt.Sprintf("duplicate transaction: %s", e.TxHash.Hex())
}

// ErrTransactionNotFound is returned when a lookup references a tx_hash the
// pool has no record of.
type ErrTransactionNotFound struct {
	TxHash felt.Felt
}

func (e *ErrTransactionNotFound) Error() string {
	return fmt.Sprintf("transaction not found: %s", e.TxHash.Hex())
}
