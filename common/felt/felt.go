// Package felt implements the Starknet field element: a 252-bit unsigned
// integer modulo the Stark prime, used throughout the sequencer core as the
// common currency for addresses, hashes, nonces and calldata entries.
package felt

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Length is the number of bytes used for the big-endian encoding of a Felt.
const Length = 32

// Prime is the Stark field modulus: 2**251 + 17*2**192 + 1.
var Prime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)

// Felt is a 252-bit field element, stored big-endian. The zero value is the
// field element zero. Felt is comparable and usable as a map key, mirroring
// how go-ethereum's common.Hash is used for tx/block/class hashes.
type Felt [Length]byte

// Zero is the additive identity.
var Zero = Felt{}

// FromBigInt reduces x modulo Prime and encodes it as a Felt.
func FromBigInt(x *big.Int) Felt {
	reduced := new(big.Int).Mod(x, Prime)
	var f Felt
	reduced.FillBytes(f[:])
	return f
}

// FromUint64 encodes a small non-negative integer as a Felt.
func FromUint64(v uint64) Felt {
	var f Felt
	binary.BigEndian.PutUint64(f[24:], v)
	return f
}

// Big returns the field element as an unsigned big.Int.
func (f Felt) Big() *big.Int {
	return new(big.Int).SetBytes(f[:])
}

// Bytes returns the big-endian byte representation.
func (f Felt) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, f[:])
	return b
}

// SetBytes copies the big-endian bytes of b into a Felt, right-aligning (and
// truncating any leading bytes beyond Length, matching common.Hash.SetBytes).
func SetBytes(b []byte) Felt {
	var f Felt
	if len(b) > Length {
		b = b[len(b)-Length:]
	}
	copy(f[Length-len(b):], b)
	return f
}

// Cmp gives the lexicographic (big-endian byte) ordering used for the
// tx_hash tie-break in the mempool's priority queue.
func (f Felt) Cmp(other Felt) int {
	for i := range f {
		if f[i] != other[i] {
			if f[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// IsZero reports whether f is the zero element.
func (f Felt) IsZero() bool {
	return f == Zero
}

// Hex returns the canonical "0x"-prefixed, leading-zero-trimmed hex form.
func (f Felt) Hex() string {
	return hexutil.EncodeBig(f.Big())
}

// String implements fmt.Stringer.
func (f Felt) String() string {
	return f.Hex()
}

// MarshalText implements encoding.TextMarshaler so Felt round-trips through
// JSON as a hex string, matching the wire form external clients submit.
func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Felt) UnmarshalText(input []byte) error {
	big, err := hexutil.DecodeBig(string(input))
	if err != nil {
		return fmt.Errorf("felt: invalid hex value %q: %w", input, err)
	}
	if big.Sign() < 0 {
		return fmt.Errorf("felt: negative value %q", input)
	}
	*f = FromBigInt(big)
	return nil
}
