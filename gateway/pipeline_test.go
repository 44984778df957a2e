package gateway

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
	"github.com/starknet-sequencer/mempool/sierracompiler"
	"github.com/starknet-sequencer/mempool/statereader"
)

type fakeStateReader struct {
	nonce     uint64
	blockInfo types.BlockInfo
}

func (f *fakeStateReader) GetStorageAt(context.Context, felt.Felt, felt.Felt) (felt.Felt, error) {
	return felt.Zero, nil
}
func (f *fakeStateReader) GetNonceAt(context.Context, felt.Felt) (uint64, error) { return f.nonce, nil }
func (f *fakeStateReader) GetClassHashAt(context.Context, felt.Felt) (felt.Felt, error) {
	return felt.Zero, nil
}
func (f *fakeStateReader) GetCompiledContractClass(context.Context, felt.Felt) (*types.CompiledClass, error) {
	return nil, nil
}
func (f *fakeStateReader) GetCompiledClassHash(context.Context, felt.Felt) (felt.Felt, error) {
	return felt.Zero, nil
}
func (f *fakeStateReader) GetBlockInfo(context.Context) (types.BlockInfo, error) {
	return f.blockInfo, nil
}

type fakeFactory struct {
	reader *fakeStateReader
}

func (f *fakeFactory) ReaderAtLatestBlock() statereader.StateReader { return f.reader }

func (f *fakeFactory) ReaderAtBlock(uint64) statereader.StateReader { return f.reader }

func sampleBounds() types.ResourceBoundsMapping {
	return types.ResourceBoundsMapping{
		types.ResourceL1Gas: {MaxAmount: 10, MaxPricePerUnit: uint256.NewInt(1)},
		types.ResourceL2Gas: {MaxAmount: 10, MaxPricePerUnit: uint256.NewInt(1)},
	}
}

func newTestPipeline(reader *fakeStateReader) *Pipeline {
	compiler := sierracompiler.NewCompiler(sierracompiler.DefaultConfig(), 2)
	return NewPipeline(DefaultStatelessConfig(), DefaultStatefulConfig(), compiler, &fakeFactory{reader: reader})
}

func TestAdmitRejectsUnsupportedVersion(t *testing.T) {
	reader := &fakeStateReader{blockInfo: types.BlockInfo{BlockNumber: 1, GasPrices: types.GasPrices{EthL1: 1, StrkL1: 1, EthL1Data: 1, StrkL1Data: 1}}}
	p := newTestPipeline(reader)

	tx := &types.InvokeTransaction{
		SenderAddress: felt.FromUint64(1),
	}

	_, _, err := p.Admit(context.Background(), "0x1", tx)
	require.Error(t, err)
	var versionErr *ErrUnsupportedTransactionVersion
	require.ErrorAs(t, err, &versionErr)
}

func TestAdmitRejectsZeroResourceBounds(t *testing.T) {
	reader := &fakeStateReader{blockInfo: types.BlockInfo{BlockNumber: 1, GasPrices: types.GasPrices{EthL1: 1, StrkL1: 1, EthL1Data: 1, StrkL1Data: 1}}}
	p := newTestPipeline(reader)

	tx := &types.InvokeTransaction{
		SenderAddress: felt.FromUint64(1),
	}
	tx.ResBounds = types.ResourceBoundsMapping{}

	_, _, err := p.Admit(context.Background(), types.SupportedVersion, tx)
	require.Error(t, err)
	var boundsErr *ErrZeroResourceBounds
	require.ErrorAs(t, err, &boundsErr)
}

func TestAdmitAcceptsValidInvoke(t *testing.T) {
	reader := &fakeStateReader{
		nonce:     3,
		blockInfo: types.BlockInfo{BlockNumber: 10, GasPrices: types.GasPrices{EthL1: 1, StrkL1: 1, EthL1Data: 1, StrkL1Data: 1}},
	}
	p := newTestPipeline(reader)

	tx := &types.InvokeTransaction{
		SenderAddress: felt.FromUint64(42),
		Calldata:      []felt.Felt{felt.FromUint64(1)},
	}
	tx.ResBounds = sampleBounds()
	tx.Signature = []felt.Felt{felt.FromUint64(7)}
	tx.Nonce = 3

	txHash, input, err := p.Admit(context.Background(), types.SupportedVersion, tx)
	require.NoError(t, err)
	require.False(t, txHash.IsZero())
	require.EqualValues(t, 3, input.Account.State.Nonce)
	require.Equal(t, felt.FromUint64(42), input.Account.Address)
}
