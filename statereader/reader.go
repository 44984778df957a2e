// Package statereader implements the capability set that reads declared
// contract state and block info from an external provider at a pinned
// block, and synthesizes the next-block context the stateful validator
// needs.
package statereader

import (
	"context"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

// StateReader is a capability set pinned to one block. A Factory (below)
// yields readers pinned either to the latest block or to a specific block
// number, so a single validation sees a consistent snapshot for its
// duration.
type StateReader interface {
	GetStorageAt(ctx context.Context, address, key felt.Felt) (felt.Felt, error)
	GetNonceAt(ctx context.Context, address felt.Felt) (uint64, error)
	GetClassHashAt(ctx context.Context, address felt.Felt) (felt.Felt, error)
	GetCompiledContractClass(ctx context.Context, classHash felt.Felt) (*types.CompiledClass, error)
	GetCompiledClassHash(ctx context.Context, classHash felt.Felt) (felt.Felt, error)
	GetBlockInfo(ctx context.Context) (types.BlockInfo, error)
}

// Factory yields StateReaders pinned to a specific snapshot. Each call to
// validation obtains its own reader; concurrent validations never share
// reader state.
type Factory interface {
	ReaderAtLatestBlock() StateReader
	ReaderAtBlock(blockNumber uint64) StateReader
}
