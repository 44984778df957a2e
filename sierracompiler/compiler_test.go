package sierracompiler

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

func versionHeader(major, minor, patch uint64) []felt.Felt {
	return []felt.Felt{
		felt.FromUint64(major),
		felt.FromUint64(minor),
		felt.FromUint64(patch),
	}
}

func sampleClass(bodyWords int, builtins []string) *types.ContractClass {
	program := versionHeader(1, 0, 0)
	for i := 0; i < bodyWords; i++ {
		program = append(program, felt.FromUint64(uint64(i+1)))
	}
	return &types.ContractClass{
		SierraProgram: program,
		ABI:           "[]",
		EntryPoints: types.EntryPointsByType{
			External: []types.EntryPoint{
				{Selector: felt.FromUint64(1), Offset: 0, Builtins: builtins},
			},
		},
	}
}

func TestCompileRejectsShortProgram(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := &types.ContractClass{SierraProgram: versionHeader(1, 0, 0)[:2]}

	_, err := c.Compile(context.Background(), class, felt.Zero)
	require.Error(t, err)
	var versionErr *ErrInvalidSierraVersion
	require.ErrorAs(t, err, &versionErr)
}

func TestCompileBytecodeSizeBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBytecodeSize = 4

	c := NewCompiler(cfg, 2)

	atLimit := sampleClass(4, []string{"pedersen"})
	_, err := c.Compile(context.Background(), atLimit, felt.Zero)
	require.NoError(t, err)

	overLimit := sampleClass(5, []string{"pedersen"})
	_, err = c.Compile(context.Background(), overLimit, felt.Zero)
	require.Error(t, err)
	var sizeErr *ErrBytecodeSizeTooLarge
	require.ErrorAs(t, err, &sizeErr)
}

func TestCompileRejectsUnsupportedBuiltinOrder(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := sampleClass(2, []string{"range_check", "pedersen"})

	_, err := c.Compile(context.Background(), class, felt.Zero)
	require.Error(t, err)
	var builtinErr *ErrUnsupportedBuiltins
	require.ErrorAs(t, err, &builtinErr)
}

func TestCompileRejectsDisallowedBuiltin(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := sampleClass(2, []string{"keccak"})

	_, err := c.Compile(context.Background(), class, felt.Zero)
	require.Error(t, err)
	var builtinErr *ErrUnsupportedBuiltins
	require.ErrorAs(t, err, &builtinErr)
}

func TestCompileAcceptsSubsequenceOrder(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := sampleClass(2, []string{"pedersen", "bitwise", "poseidon"})

	compiled, err := c.Compile(context.Background(), class, felt.Zero)
	require.NoError(t, err)
	require.NotNil(t, compiled)
}

func TestCompileHashMismatch(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := sampleClass(2, []string{"pedersen"})

	wrongHash := felt.FromBigInt(big.NewInt(1))
	_, err := c.Compile(context.Background(), class, wrongHash)
	require.Error(t, err)
	var mismatchErr *ErrCompiledClassHashMismatch
	require.ErrorAs(t, err, &mismatchErr)
}

func TestCompileHashMatchesOwnOutput(t *testing.T) {
	c := NewCompiler(DefaultConfig(), 2)
	class := sampleClass(2, []string{"pedersen"})

	first, err := c.Compile(context.Background(), class, felt.Zero)
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), class, first.CompiledClassHash)
	require.NoError(t, err)
}

func TestIsSubsequence(t *testing.T) {
	supported := []string{"pedersen", "range_check", "ecdsa", "bitwise", "ec_op", "poseidon", "segment_arena"}

	require.True(t, isSubsequence(nil, supported))
	require.True(t, isSubsequence([]string{"pedersen", "ec_op"}, supported))
	require.False(t, isSubsequence([]string{"ecdsa", "pedersen"}, supported))
	require.False(t, isSubsequence([]string{"keccak"}, supported))
}
