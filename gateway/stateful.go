package gateway

import (
	"context"
	"crypto/sha256"
	"math/big"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
	"github.com/starknet-sequencer/mempool/statereader"
)

// computeTxHash derives the canonical, deterministic tx_hash over the
// envelope fields common to every variant plus its type-specific payload,
// a stand-in for the real Poseidon-based transaction hasher a Cairo-native
// client would use.
func computeTxHash(tx types.Transaction, classInfo *types.ClassInfo) felt.Felt {
	h := sha256.New()
	h.Write([]byte(tx.Type()))
	var nonceBuf [8]byte
	big.NewInt(0).SetUint64(tx.GetNonce()).FillBytes(nonceBuf[:])
	h.Write(nonceBuf[:])
	for _, sig := range tx.GetSignature() {
		h.Write(sig.Bytes())
	}
	for _, pd := range tx.GetPaymasterData() {
		h.Write(pd.Bytes())
	}

	switch t := tx.(type) {
	case *types.DeclareTransaction:
		h.Write(t.SenderAddress.Bytes())
		h.Write(t.CompiledClassHash.Bytes())
		if classInfo != nil {
			h.Write(classInfo.CompiledClass.CompiledClassHash.Bytes())
		}
	case *types.DeployAccountTransaction:
		h.Write(t.ClassHash.Bytes())
		h.Write(t.ContractAddressSalt.Bytes())
		for _, c := range t.ConstructorCalldata {
			h.Write(c.Bytes())
		}
	case *types.InvokeTransaction:
		h.Write(t.SenderAddress.Bytes())
		for _, c := range t.Calldata {
			h.Write(c.Bytes())
		}
	}

	return felt.FromBigInt(new(big.Int).SetBytes(h.Sum(nil)))
}

// deployerAddress is the fixed deployer field used by contract-address
// derivation for account deployment, which has no separate deployer
// contract.
var deployerAddress = felt.Zero

// computeContractAddress derives the contract address a DeployAccount
// transaction deploys to from {salt, class_hash, constructor_calldata,
// deployer=0}.
func computeContractAddress(salt, classHash felt.Felt, constructorCalldata []felt.Felt) felt.Felt {
	h := sha256.New()
	h.Write(salt.Bytes())
	h.Write(classHash.Bytes())
	for _, c := range constructorCalldata {
		h.Write(c.Bytes())
	}
	h.Write(deployerAddress.Bytes())
	return felt.FromBigInt(new(big.Int).SetBytes(h.Sum(nil)))
}

// statefulResult is what a successful stateful-phase run produces: the
// canonical tx_hash plus, for Declare, the assembled ClassInfo for
// downstream use.
type statefulResult struct {
	TxHash          felt.Felt
	ContractAddress felt.Felt // only meaningful for DeployAccount
	ClassInfo       *types.ClassInfo
	AccountNonce    uint64
}

// runStatefulChecks pins a state-reader snapshot, derives the canonical
// tx_hash and (for DeployAccount) contract address, reads the sender
// account's current nonce, and runs the protocol validator against that
// state. The protocol validator that checks signatures, account deployment
// status, and fee affordability against execution state is out of scope
// here (no EVM/Cairo execution engine is implemented); its contract is
// represented by validateAgainstState, which a full build would replace
// with the real execution-backed validator while keeping this function's
// control flow unchanged.
func runStatefulChecks(ctx context.Context, factory statereader.Factory, tx types.Transaction, classInfo *types.ClassInfo, cfg StatefulConfig) (*statefulResult, error) {
	latestReader := factory.ReaderAtLatestBlock()
	nextBlock, err := statereader.SynthesizeNextBlock(ctx, latestReader)
	if err != nil {
		return nil, err
	}

	pinnedReader := factory.ReaderAtBlock(nextBlock.BlockNumber - 1)

	txHash := computeTxHash(tx, classInfo)

	var contractAddress felt.Felt
	var senderAddress felt.Felt
	switch t := tx.(type) {
	case *types.DeclareTransaction:
		senderAddress = t.SenderAddress
	case *types.DeployAccountTransaction:
		contractAddress = computeContractAddress(t.ContractAddressSalt, t.ClassHash, t.ConstructorCalldata)
		senderAddress = contractAddress
	case *types.InvokeTransaction:
		senderAddress = t.SenderAddress
	}

	accountNonce, err := pinnedReader.GetNonceAt(ctx, senderAddress)
	if err != nil {
		return nil, err
	}

	if err := validateAgainstState(tx, accountNonce, cfg); err != nil {
		return nil, err
	}

	return &statefulResult{
		TxHash:          txHash,
		ContractAddress: contractAddress,
		ClassInfo:       classInfo,
		AccountNonce:    accountNonce,
	}, nil
}

// validateAgainstState is the minimal protocol-validator contract this
// revision enforces: nonces below the configured max-skip threshold bypass
// the expensive signature/fee checks a full execution-backed validator
// would run.
func validateAgainstState(tx types.Transaction, accountNonce uint64, cfg StatefulConfig) error {
	if tx.GetNonce() < cfg.MaxNonceForValidationSkip {
		return nil
	}
	if len(tx.GetSignature()) == 0 {
		return &ErrTransactionPreValidation{Detail: "missing signature"}
	}
	return nil
}
