package statereader

import (
	"encoding/json"

	"github.com/starknet-sequencer/mempool/common/felt"
)

// blockID is the untagged union the provider's JSON-RPC methods accept for
// "which block": either a tag, a hash, or a number.
type blockID struct {
	tag    string
	hash   *felt.Felt
	number *uint64
}

func latestBlockID() blockID { return blockID{tag: "latest"} }

func numberBlockID(n uint64) blockID { return blockID{number: &n} }

// MarshalJSON renders the variant actually set: a block number, a block
// hash, or (when neither is set) a block tag, the BLOCK_ID shape the
// starknet_getBlockWithTxHashes RPC method expects.
func (b blockID) MarshalJSON() ([]byte, error) {
	switch {
	case b.number != nil:
		return json.Marshal(struct {
			BlockNumber uint64 `json:"block_number"`
		}{*b.number})
	case b.hash != nil:
		return json.Marshal(struct {
			BlockHash felt.Felt `json:"block_hash"`
		}{*b.hash})
	default:
		return json.Marshal(struct {
			Tag string `json:"tag"`
		}{b.tag})
	}
}

// blockWithTxHashesResult mirrors the subset of starknet_getBlockWithTxHashes
// fields this reader needs to build a BlockInfo.
type blockWithTxHashesResult struct {
	BlockNumber      uint64        `json:"block_number"`
	Timestamp        uint64        `json:"timestamp"`
	SequencerAddress felt.Felt     `json:"sequencer_address"`
	L1GasPrice       resourcePrice `json:"l1_gas_price"`
	L1DataGasPrice   resourcePrice `json:"l1_data_gas_price"`
	L1DAMode         string        `json:"l1_da_mode"`
}

type resourcePrice struct {
	PriceInWei string `json:"price_in_wei"`
	PriceInFri string `json:"price_in_fri"`
}

func (p resourcePrice) weiUint64() (uint64, error) {
	return hexOrDecimalToUint64(p.PriceInWei)
}

func (p resourcePrice) friUint64() (uint64, error) {
	return hexOrDecimalToUint64(p.PriceInFri)
}

func hexOrDecimalToUint64(s string) (uint64, error) {
	var f felt.Felt
	if err := f.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return f.Big().Uint64(), nil
}
