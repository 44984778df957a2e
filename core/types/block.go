package types

import "github.com/starknet-sequencer/mempool/common/felt"

// GasPrices carries the four gas-price components the protocol tracks: ETH
// and STRK denominated, each for L1 execution gas and L1 data-availability
// gas. Every field must be strictly positive before a BlockInfo built from
// them is accepted.
type GasPrices struct {
	EthL1      uint64
	StrkL1     uint64
	EthL1Data  uint64
	StrkL1Data uint64
}

// AllPositive reports whether every price component is nonzero, the
// condition BlockInfo construction requires.
func (g GasPrices) AllPositive() bool {
	return g.EthL1 > 0 && g.StrkL1 > 0 && g.EthL1Data > 0 && g.StrkL1Data > 0
}

// BlockInfo is the block context the validator reads from the state reader
// and, for the stateful phase, synthesizes one block ahead of.
type BlockInfo struct {
	BlockNumber      uint64
	BlockTimestamp   uint64
	SequencerAddress felt.Felt
	GasPrices        GasPrices
	UseKZGDataAvail  bool
}
