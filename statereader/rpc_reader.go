package statereader

import (
	"context"
	"fmt"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/log"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

// RPCReaderFactory dials a single JSON-RPC endpoint and hands out
// StateReaders pinned to a given snapshot, the same shape ethclient.Dial
// wraps a *rpc.Client in.
type RPCReaderFactory struct {
	client *gethrpc.Client
}

// DialRPCReaderFactory connects to endpoint, following the
// rpc.DialContext idiom go-ethereum uses for its own outbound RPC clients.
func DialRPCReaderFactory(ctx context.Context, endpoint string) (*RPCReaderFactory, error) {
	client, err := gethrpc.DialContext(ctx, endpoint)
	if err != nil {
		log.Error("Unable to connect to state-reader RPC endpoint", "endpoint", endpoint, "error", err)
		return nil, &ErrTransport{Err: err}
	}
	log.Info("Initialized state-reader RPC client", "endpoint", endpoint)
	return &RPCReaderFactory{client: client}, nil
}

func (f *RPCReaderFactory) ReaderAtLatestBlock() StateReader {
	return &rpcStateReader{client: f.client, pinned: latestBlockID()}
}

func (f *RPCReaderFactory) ReaderAtBlock(blockNumber uint64) StateReader {
	return &rpcStateReader{client: f.client, pinned: numberBlockID(blockNumber)}
}

// rpcStateReader implements StateReader against one pinned blockID. It holds
// no mutable state of its own: every call is independently servable and
// shares only the read-only pinned block identifier.
type rpcStateReader struct {
	client *gethrpc.Client
	pinned blockID
}

func (r *rpcStateReader) call(ctx context.Context, result any, method string, params ...any) error {
	err := r.client.CallContext(ctx, result, method, params...)
	if err == nil {
		return nil
	}
	if rpcErr, ok := err.(gethrpc.Error); ok {
		switch rpcErr.ErrorCode() {
		case rpcErrorBlockNotFound:
			return &ErrBlockNotFound{Request: method}
		case rpcErrorContractAddressNotFound:
			return &ErrContractAddressNotFound{Request: method}
		}
	}
	return &ErrTransport{Err: err}
}

func (r *rpcStateReader) GetStorageAt(ctx context.Context, address, key felt.Felt) (felt.Felt, error) {
	var result felt.Felt
	err := r.call(ctx, &result, "starknet_getStorageAt", address, key, r.pinned)
	return result, err
}

func (r *rpcStateReader) GetNonceAt(ctx context.Context, address felt.Felt) (uint64, error) {
	var result felt.Felt
	err := r.call(ctx, &result, "starknet_getNonce", r.pinned, address)
	if _, notFound := asContractAddressNotFound(err); notFound {
		// An undeployed account's nonce is defined as zero.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return result.Big().Uint64(), nil
}

func (r *rpcStateReader) GetClassHashAt(ctx context.Context, address felt.Felt) (felt.Felt, error) {
	var result felt.Felt
	err := r.call(ctx, &result, "starknet_getClassHashAt", r.pinned, address)
	return result, err
}

func (r *rpcStateReader) GetCompiledContractClass(ctx context.Context, classHash felt.Felt) (*types.CompiledClass, error) {
	var result types.CompiledClass
	err := r.call(ctx, &result, "starknet_getClass", r.pinned, classHash)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *rpcStateReader) GetCompiledClassHash(ctx context.Context, classHash felt.Felt) (felt.Felt, error) {
	var result felt.Felt
	err := r.call(ctx, &result, "starknet_getCompiledClassHash", r.pinned, classHash)
	return result, err
}

func (r *rpcStateReader) GetBlockInfo(ctx context.Context) (types.BlockInfo, error) {
	var result blockWithTxHashesResult
	if err := r.call(ctx, &result, "starknet_getBlockWithTxHashes", r.pinned); err != nil {
		return types.BlockInfo{}, err
	}

	ethL1, err := result.L1GasPrice.weiUint64()
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("statereader: %w", err)
	}
	strkL1, err := result.L1GasPrice.friUint64()
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("statereader: %w", err)
	}
	ethL1Data, err := result.L1DataGasPrice.weiUint64()
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("statereader: %w", err)
	}
	strkL1Data, err := result.L1DataGasPrice.friUint64()
	if err != nil {
		return types.BlockInfo{}, fmt.Errorf("statereader: %w", err)
	}

	return types.BlockInfo{
		BlockNumber:      result.BlockNumber,
		BlockTimestamp:   result.Timestamp,
		SequencerAddress: result.SequencerAddress,
		GasPrices: types.GasPrices{
			EthL1:      ethL1,
			StrkL1:     strkL1,
			EthL1Data:  ethL1Data,
			StrkL1Data: strkL1Data,
		},
		UseKZGDataAvail: result.L1DAMode == "BLOB",
	}, nil
}

func asContractAddressNotFound(err error) (*ErrContractAddressNotFound, bool) {
	e, ok := err.(*ErrContractAddressNotFound)
	return e, ok
}
