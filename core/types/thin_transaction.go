package types

import "github.com/starknet-sequencer/mempool/common/felt"

// ThinTransaction is the sole representation the mempool stores: the heavy
// payload (calldata, signature, declared class, ...) is consumed by
// validation and, for accepted declares, handed off to storage out of scope
// here.
type ThinTransaction struct {
	SenderAddress felt.Felt
	TxHash        felt.Felt
	Tip           uint64
	Nonce         uint64
}

// AccountState is the currently committed state the validator observed for
// an account at the pinned snapshot.
type AccountState struct {
	Nonce uint64
}

// Account pairs an address with its committed state at validation time.
type Account struct {
	Address felt.Felt
	State   AccountState
}

// MempoolInput is the tuple the validation pipeline hands to the mempool's
// add_tx.
type MempoolInput struct {
	Tx      ThinTransaction
	Account Account
}
