package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-sequencer/mempool/common/felt"
)

func sampleResourceBounds() ResourceBoundsMapping {
	return ResourceBoundsMapping{
		ResourceL1Gas: {MaxAmount: 2214, MaxPricePerUnit: MaxPricePerUnit(100_000_000_000)},
		ResourceL2Gas: {MaxAmount: 0, MaxPricePerUnit: MaxPricePerUnit(0)},
	}
}

func TestInvokeTransactionJSONRoundTrip(t *testing.T) {
	original := &InvokeTransaction{
		commonFields: commonFields{
			Nonce:      0,
			Signature:  []felt.Felt{felt.FromUint64(1)},
			ResBounds:  sampleResourceBounds(),
			Tip:        5,
			NonceDAMode: DAModeL1,
			FeeDAMode:   DAModeL1,
		},
		SenderAddress: felt.FromUint64(0xABC),
		Calldata:      nil,
	}

	data, err := MarshalTransactionJSON(original)
	require.NoError(t, err)

	parsed, err := UnmarshalTransactionJSON(data)
	require.NoError(t, err)

	invoke, ok := parsed.(*InvokeTransaction)
	require.True(t, ok)
	assert.Equal(t, original.SenderAddress, invoke.SenderAddress)
	assert.Equal(t, original.GetNonce(), invoke.GetNonce())
	assert.Equal(t, original.GetTip(), invoke.GetTip())
	assert.Equal(t, original.GetSignature(), invoke.GetSignature())
}

func TestDeclareTransactionJSONRoundTrip(t *testing.T) {
	original := &DeclareTransaction{
		commonFields: commonFields{
			Nonce:     2,
			ResBounds: sampleResourceBounds(),
			Tip:       1,
		},
		SenderAddress: felt.FromUint64(7),
		ContractClass: &ContractClass{
			SierraProgram: []felt.Felt{felt.FromUint64(1), felt.FromUint64(0), felt.FromUint64(0)},
			ABI:           "[]",
		},
		CompiledClassHash: felt.FromUint64(0x1234),
	}

	data, err := MarshalTransactionJSON(original)
	require.NoError(t, err)

	parsed, err := UnmarshalTransactionJSON(data)
	require.NoError(t, err)

	declare, ok := parsed.(*DeclareTransaction)
	require.True(t, ok)
	assert.Equal(t, original.CompiledClassHash, declare.CompiledClassHash)
	assert.Equal(t, original.SenderAddress, declare.SenderAddress)
	require.NotNil(t, declare.ContractClass)
	assert.Len(t, declare.ContractClass.SierraProgram, 3)
}

func TestDeployAccountCalldataAccessor(t *testing.T) {
	tx := &DeployAccountTransaction{
		ConstructorCalldata: []felt.Felt{felt.FromUint64(1), felt.FromUint64(2)},
	}
	calldata, ok := Calldata(tx)
	require.True(t, ok)
	assert.Len(t, calldata, 2)

	declare := &DeclareTransaction{}
	_, ok = Calldata(declare)
	assert.False(t, ok, "Declare transactions carry no calldata")
}
