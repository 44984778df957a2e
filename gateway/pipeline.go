package gateway

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
	"github.com/starknet-sequencer/mempool/sierracompiler"
	"github.com/starknet-sequencer/mempool/statereader"
)

// Pipeline is the admission decision for a single transaction, a pure
// function of its input and a state-reader snapshot. It owns no mutable
// state of its own.
type Pipeline struct {
	statelessCfg StatelessConfig
	statefulCfg  StatefulConfig
	compiler     *sierracompiler.Compiler
	readers      statereader.Factory
}

// NewPipeline wires the collaborators Admit calls into: the stateless
// bounds, the stateful config, the class compiler, and a state-reader
// factory.
func NewPipeline(statelessCfg StatelessConfig, statefulCfg StatefulConfig, compiler *sierracompiler.Compiler, readers statereader.Factory) *Pipeline {
	return &Pipeline{statelessCfg: statelessCfg, statefulCfg: statefulCfg, compiler: compiler, readers: readers}
}

// Result is what a successfully admitted transaction produces: enough for
// the gateway actor to both answer the submitter and hand the transaction
// to the mempool.
type Result struct {
	TxHash felt.Felt
	Input  types.MempoolInput
}

// Admit runs the full pipeline: version check, stateless checks, compile-
// for-declares, then the stateful phase, and assembles the MempoolInput
// handoff.
func (p *Pipeline) Admit(ctx context.Context, rawVersion string, tx types.Transaction) (felt.Felt, types.MempoolInput, error) {
	if rawVersion != types.SupportedVersion {
		return felt.Zero, types.MempoolInput{}, &ErrUnsupportedTransactionVersion{Version: rawVersion}
	}

	if err := runStatelessChecks(tx, p.statelessCfg); err != nil {
		return felt.Zero, types.MempoolInput{}, err
	}

	var classInfo *types.ClassInfo
	if declare, ok := tx.(*types.DeclareTransaction); ok {
		info, err := p.compileDeclare(ctx, declare)
		if err != nil {
			return felt.Zero, types.MempoolInput{}, err
		}
		classInfo = info
	}

	result, err := runStatefulChecks(ctx, p.readers, tx, classInfo, p.statefulCfg)
	if err != nil {
		return felt.Zero, types.MempoolInput{}, err
	}

	senderAddress := result.ContractAddress
	if senderAddress.IsZero() {
		if declare, ok := tx.(*types.DeclareTransaction); ok {
			senderAddress = declare.SenderAddress
		} else if invoke, ok := tx.(*types.InvokeTransaction); ok {
			senderAddress = invoke.SenderAddress
		}
	}

	input := types.MempoolInput{
		Tx: types.ThinTransaction{
			SenderAddress: senderAddress,
			TxHash:        result.TxHash,
			Tip:           tx.GetTip(),
			Nonce:         tx.GetNonce(),
		},
		Account: types.Account{
			Address: senderAddress,
			State:   types.AccountState{Nonce: result.AccountNonce},
		},
	}

	log.Info("Admitted transaction", "type", tx.Type(), "tx_hash", result.TxHash.Hex(), "sender", senderAddress.Hex())
	return result.TxHash, input, nil
}

// compileDeclare runs the size caps and Sierra-to-Casm compilation for a
// Declare transaction. A panic inside the compiler is reported here as an
// internal error rather than propagated as a typed stateless/compile error.
func (p *Pipeline) compileDeclare(ctx context.Context, declare *types.DeclareTransaction) (*types.ClassInfo, error) {
	class := declare.ContractClass
	if class == nil {
		return nil, &ErrTransactionPreValidation{Detail: "declare transaction missing contract class"}
	}

	if err := sierracompiler.ValidateRawClassSize(class, p.statelessCfg.MaxRawClassSize); err != nil {
		return nil, err
	}

	compiled, err := p.compiler.Compile(ctx, class, declare.CompiledClassHash)
	if err != nil {
		var panicErr *sierracompiler.ErrCompilationPanic
		if asPanic(err, &panicErr) {
			return nil, &ErrInternalCompilation{Err: err}
		}
		return nil, err
	}

	return &types.ClassInfo{
		CompiledClass:       compiled,
		SierraProgramLength: len(class.SierraProgram),
		ABILength:           len(class.ABI),
	}, nil
}

func asPanic(err error, target **sierracompiler.ErrCompilationPanic) bool {
	if e, ok := err.(*sierracompiler.ErrCompilationPanic); ok {
		*target = e
		return true
	}
	return false
}
