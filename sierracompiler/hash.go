package sierracompiler

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

// computeCompiledClassHash derives a deterministic compiled-class hash from
// the compiled bytecode and entry-point tables. The real protocol hash is a
// Poseidon-based construction over the Casm representation; this only needs
// a stable, order-sensitive digest reduced into the field, since what
// matters here is consistency between what was compiled and what was
// declared, not matching the Starknet mainnet hash function bit for bit.
func computeCompiledClassHash(bytecode []felt.Felt, entryPoints types.EntryPointsByType) (felt.Felt, error) {
	h := sha256.New()
	for _, word := range bytecode {
		h.Write(word.Bytes())
	}
	for _, ep := range entryPoints.All() {
		h.Write(ep.Selector.Bytes())
		var offsetBuf [8]byte
		binary.BigEndian.PutUint64(offsetBuf[:], uint64(ep.Offset))
		h.Write(offsetBuf[:])
		for _, b := range ep.Builtins {
			h.Write([]byte(b))
		}
	}
	digest := h.Sum(nil)
	return felt.FromBigInt(new(big.Int).SetBytes(digest)), nil
}
