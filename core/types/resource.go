package types

import "github.com/holiman/uint256"

// ResourceKind names a billable resource dimension a transaction bounds its
// spend on. Only L1Gas and L2Gas exist in this revision.
type ResourceKind string

const (
	ResourceL1Gas ResourceKind = "L1_GAS"
	ResourceL2Gas ResourceKind = "L2_GAS"
)

// ResourceBounds caps the amount and per-unit price a sender is willing to
// pay for one resource kind. MaxPricePerUnit is a 128-bit quantity on the
// wire; it's carried in a uint256.Int since Go has no native u128.
type ResourceBounds struct {
	MaxAmount       uint64
	MaxPricePerUnit *uint256.Int
}

// IsZero reports whether either the amount or the unit price is zero, the
// condition stateless validation rejects when the corresponding
// validate-non-zero-fee flag is set.
func (b ResourceBounds) IsZero() bool {
	return b.MaxAmount == 0 || b.MaxPricePerUnit == nil || b.MaxPricePerUnit.IsZero()
}

// ResourceBoundsMapping is the transaction's full fee-bound declaration.
type ResourceBoundsMapping map[ResourceKind]ResourceBounds

// Get returns the bounds for kind, or the zero value if absent.
func (m ResourceBoundsMapping) Get(kind ResourceKind) ResourceBounds {
	return m[kind]
}

// DAMode is the data-availability mode a transaction declares for its nonce
// or fee payment.
type DAMode uint8

const (
	DAModeL1 DAMode = iota
	DAModeL2
)

func (m DAMode) String() string {
	if m == DAModeL2 {
		return "L2"
	}
	return "L1"
}

// MarshalText renders the mode the way external clients expect it.
func (m DAMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses "L1"/"L2".
func (m *DAMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "L2":
		*m = DAModeL2
	default:
		*m = DAModeL1
	}
	return nil
}
