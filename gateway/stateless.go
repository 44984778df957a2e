package gateway

import (
	"github.com/starknet-sequencer/mempool/core/types"
)

// runStatelessChecks applies the variant-independent admission checks. It
// does not touch state or the compiler; Declare's size-cap checks run
// separately in the pipeline's compile step since they require the declared
// class body, not just the transaction envelope.
func runStatelessChecks(tx types.Transaction, cfg StatelessConfig) error {
	bounds := tx.GetResourceBounds()

	if cfg.ValidateNonZeroL1GasFee {
		l1 := bounds.Get(types.ResourceL1Gas)
		if l1.IsZero() {
			return &ErrZeroResourceBounds{Resource: string(types.ResourceL1Gas)}
		}
	}
	if cfg.ValidateNonZeroL2GasFee {
		l2 := bounds.Get(types.ResourceL2Gas)
		if l2.IsZero() {
			return &ErrZeroResourceBounds{Resource: string(types.ResourceL2Gas)}
		}
	}

	if len(tx.GetSignature()) > cfg.MaxSignatureLength {
		return &ErrSignatureTooLong{Length: len(tx.GetSignature()), Max: cfg.MaxSignatureLength}
	}

	if calldata, hasCalldata := types.Calldata(tx); hasCalldata {
		if len(calldata) > cfg.MaxCalldataLength {
			return &ErrCalldataTooLong{Length: len(calldata), Max: cfg.MaxCalldataLength}
		}
	}

	return nil
}
