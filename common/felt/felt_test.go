package felt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBigIntReducesModPrime(t *testing.T) {
	over := new(big.Int).Add(Prime, big.NewInt(5))
	f := FromBigInt(over)
	assert.Equal(t, big.NewInt(5), f.Big())
}

func TestHexRoundTrip(t *testing.T) {
	f := FromUint64(0xdeadbeef)
	var out Felt
	text, err := f.MarshalText()
	require.NoError(t, err)
	require.NoError(t, out.UnmarshalText(text))
	assert.Equal(t, f, out)
	assert.Equal(t, "0xdeadbeef", f.Hex())
}

func TestCmpLexicographic(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
}

func TestUnmarshalTextRejectsNegative(t *testing.T) {
	var f Felt
	assert.Error(t, f.UnmarshalText([]byte("-0x1")))
}
