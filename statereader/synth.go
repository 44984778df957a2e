package statereader

import (
	"context"
	"math"

	"github.com/starknet-sequencer/mempool/core/types"
)

// SynthesizeNextBlock reads the latest BlockInfo via reader and returns the
// context the stateful validator runs against: the same block number plus
// one, with gas prices and the DA mode propagated unchanged.
func SynthesizeNextBlock(ctx context.Context, reader StateReader) (types.BlockInfo, error) {
	latest, err := reader.GetBlockInfo(ctx)
	if err != nil {
		return types.BlockInfo{}, err
	}

	if latest.BlockNumber == math.MaxUint64 {
		return types.BlockInfo{}, &ErrOutOfRangeBlockNumber{BlockNumber: latest.BlockNumber}
	}

	if !latest.GasPrices.AllPositive() {
		return types.BlockInfo{}, &ErrGasPriceParsingFailure{Field: zeroGasPriceField(latest.GasPrices)}
	}

	next := latest
	next.BlockNumber = latest.BlockNumber + 1
	return next, nil
}

func zeroGasPriceField(g types.GasPrices) string {
	switch {
	case g.EthL1 == 0:
		return "eth_l1"
	case g.StrkL1 == 0:
		return "strk_l1"
	case g.EthL1Data == 0:
		return "eth_l1_data"
	case g.StrkL1Data == 0:
		return "strk_l1_data"
	default:
		return "unknown"
	}
}
