package gateway

// StatelessConfig holds the stateless validator's configurable bounds.
type StatelessConfig struct {
	ValidateNonZeroL1GasFee bool
	ValidateNonZeroL2GasFee bool
	MaxCalldataLength       int
	MaxSignatureLength      int
	MaxBytecodeSize         int
	MaxRawClassSize         int
}

// DefaultStatelessConfig mirrors the compiler's own size caps
// (81_920 bytecode words, 3.9MiB raw class), extended here with generous
// but bounded signature/calldata lengths.
func DefaultStatelessConfig() StatelessConfig {
	return StatelessConfig{
		ValidateNonZeroL1GasFee: true,
		ValidateNonZeroL2GasFee: true,
		MaxCalldataLength:       5_000,
		MaxSignatureLength:      4_000,
		MaxBytecodeSize:         81_920,
		MaxRawClassSize:         4_089_446,
	}
}

// ChainInfo identifies the network the stateful validator runs against.
type ChainInfo struct {
	ChainID string
}

// StatefulConfig holds the stateful validator's configurable bounds.
type StatefulConfig struct {
	ChainInfo                ChainInfo
	MaxNonceForValidationSkip uint64
	ValidateMaxNSteps        uint32
	MaxRecursionDepth        int
}

// DefaultStatefulConfig returns conservative defaults.
func DefaultStatefulConfig() StatefulConfig {
	return StatefulConfig{
		ChainInfo:                 ChainInfo{ChainID: "SN_SEQUENCER"},
		MaxNonceForValidationSkip: 0,
		ValidateMaxNSteps:         4_000_000,
		MaxRecursionDepth:         50,
	}
}
