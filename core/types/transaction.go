package types

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/starknet-sequencer/mempool/common/felt"
)

// TxType tags the three transaction variants this revision supports.
type TxType string

const (
	TxTypeDeclare       TxType = "DECLARE"
	TxTypeDeployAccount TxType = "DEPLOY_ACCOUNT"
	TxTypeInvoke        TxType = "INVOKE"
)

// SupportedVersion is the single transaction version this revision accepts.
const SupportedVersion = "0x3"

// Transaction is the capability every external transaction variant
// implements: the common envelope fields needed by the stateless phase and
// by hashing/eligibility bookkeeping. Type-specific payload (calldata,
// contract class, ...) is reached via a type switch on the concrete struct,
// a tagged-variant design rather than a deep interface hierarchy.
type Transaction interface {
	Type() TxType
	GetNonce() uint64
	GetSignature() []felt.Felt
	GetResourceBounds() ResourceBoundsMapping
	GetTip() uint64
	GetPaymasterData() []felt.Felt
	GetNonceDAMode() DAMode
	GetFeeDAMode() DAMode
}

// commonFields is embedded in every concrete transaction to avoid repeating
// the envelope accessors three times.
type commonFields struct {
	Nonce         uint64                `json:"nonce"`
	Signature     []felt.Felt           `json:"signature"`
	ResBounds     ResourceBoundsMapping `json:"resource_bounds"`
	Tip           uint64                `json:"tip"`
	PaymasterData []felt.Felt           `json:"paymaster_data"`
	NonceDAMode   DAMode                `json:"nonce_data_availability_mode"`
	FeeDAMode     DAMode                `json:"fee_data_availability_mode"`
}

func (c commonFields) GetNonce() uint64                        { return c.Nonce }
func (c commonFields) GetSignature() []felt.Felt                { return c.Signature }
func (c commonFields) GetResourceBounds() ResourceBoundsMapping { return c.ResBounds }
func (c commonFields) GetTip() uint64                           { return c.Tip }
func (c commonFields) GetPaymasterData() []felt.Felt            { return c.PaymasterData }
func (c commonFields) GetNonceDAMode() DAMode                   { return c.NonceDAMode }
func (c commonFields) GetFeeDAMode() DAMode                     { return c.FeeDAMode }

// DeclareTransaction declares a new contract class. It carries the
// high-level class and the hash the submitter claims the compiled class will
// hash to, which the compiler verifies against the actual compiled result.
type DeclareTransaction struct {
	commonFields
	SenderAddress     felt.Felt
	ContractClass     *ContractClass
	CompiledClassHash felt.Felt
}

func (DeclareTransaction) Type() TxType { return TxTypeDeclare }

// DeployAccountTransaction deploys and invokes a new account contract in one
// step. It has no sender_address field; the contract address is derived
// from {salt, class_hash, constructor_calldata, deployer=0} during stateful
// validation.
type DeployAccountTransaction struct {
	commonFields
	ClassHash           felt.Felt
	ContractAddressSalt felt.Felt
	ConstructorCalldata []felt.Felt
}

func (DeployAccountTransaction) Type() TxType { return TxTypeDeployAccount }

// InvokeTransaction invokes an already-deployed account's __execute__.
type InvokeTransaction struct {
	commonFields
	SenderAddress felt.Felt
	Calldata      []felt.Felt
}

func (InvokeTransaction) Type() TxType { return TxTypeInvoke }

// Calldata returns the calldata slice for variants that carry one: Declare
// has none, DeployAccount uses constructor_calldata, Invoke uses calldata.
func Calldata(tx Transaction) ([]felt.Felt, bool) {
	switch t := tx.(type) {
	case *DeployAccountTransaction:
		return t.ConstructorCalldata, true
	case *InvokeTransaction:
		return t.Calldata, true
	default:
		return nil, false
	}
}

// wireTransaction is the JSON-on-the-wire shape: a flat, tagged envelope
// matching what an external client posts to /add_tx.
type wireTransaction struct {
	Type                string                `json:"type"`
	Version             string                `json:"version"`
	SenderAddress       *felt.Felt            `json:"sender_address,omitempty"`
	Nonce               felt.Felt             `json:"nonce"`
	Signature           []felt.Felt           `json:"signature"`
	ResourceBounds      ResourceBoundsMapping `json:"resource_bounds"`
	Tip                 string                `json:"tip"`
	PaymasterData       []felt.Felt           `json:"paymaster_data"`
	NonceDAMode         DAMode                `json:"nonce_data_availability_mode"`
	FeeDAMode           DAMode                `json:"fee_data_availability_mode"`
	ContractClass       *ContractClass        `json:"contract_class,omitempty"`
	CompiledClassHash   *felt.Felt            `json:"compiled_class_hash,omitempty"`
	ClassHash           *felt.Felt            `json:"class_hash,omitempty"`
	ContractAddressSalt *felt.Felt            `json:"contract_address_salt,omitempty"`
	ConstructorCalldata []felt.Felt           `json:"constructor_calldata,omitempty"`
	Calldata            []felt.Felt           `json:"calldata,omitempty"`
}

// MarshalTransactionJSON renders tx in its external wire form.
func MarshalTransactionJSON(tx Transaction) ([]byte, error) {
	w := wireTransaction{
		Version:        SupportedVersion,
		Nonce:          felt.FromUint64(tx.GetNonce()),
		Signature:      tx.GetSignature(),
		ResourceBounds: tx.GetResourceBounds(),
		Tip:            felt.FromUint64(tx.GetTip()).Hex(),
		PaymasterData:  tx.GetPaymasterData(),
		NonceDAMode:    tx.GetNonceDAMode(),
		FeeDAMode:      tx.GetFeeDAMode(),
	}
	switch t := tx.(type) {
	case *DeclareTransaction:
		w.Type = string(TxTypeDeclare)
		w.SenderAddress = &t.SenderAddress
		w.ContractClass = t.ContractClass
		w.CompiledClassHash = &t.CompiledClassHash
	case *DeployAccountTransaction:
		w.Type = string(TxTypeDeployAccount)
		w.ClassHash = &t.ClassHash
		w.ContractAddressSalt = &t.ContractAddressSalt
		w.ConstructorCalldata = t.ConstructorCalldata
	case *InvokeTransaction:
		w.Type = string(TxTypeInvoke)
		w.SenderAddress = &t.SenderAddress
		w.Calldata = t.Calldata
	default:
		return nil, fmt.Errorf("types: unknown transaction variant %T", tx)
	}
	return json.Marshal(w)
}

// UnmarshalTransactionJSON parses the external wire form, dispatching on the
// "type" tag.
func UnmarshalTransactionJSON(data []byte) (Transaction, error) {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	tip, err := parseTip(w.Tip)
	if err != nil {
		return nil, err
	}
	common := commonFields{
		Nonce:         w.Nonce.Big().Uint64(),
		Signature:     w.Signature,
		ResBounds:     w.ResourceBounds,
		Tip:           tip,
		PaymasterData: w.PaymasterData,
		NonceDAMode:   w.NonceDAMode,
		FeeDAMode:     w.FeeDAMode,
	}
	switch TxType(w.Type) {
	case TxTypeDeclare:
		if w.SenderAddress == nil || w.CompiledClassHash == nil {
			return nil, fmt.Errorf("types: declare transaction missing required fields")
		}
		return &DeclareTransaction{
			commonFields:      common,
			SenderAddress:     *w.SenderAddress,
			ContractClass:     w.ContractClass,
			CompiledClassHash: *w.CompiledClassHash,
		}, nil
	case TxTypeDeployAccount:
		if w.ClassHash == nil || w.ContractAddressSalt == nil {
			return nil, fmt.Errorf("types: deploy_account transaction missing required fields")
		}
		return &DeployAccountTransaction{
			commonFields:        common,
			ClassHash:           *w.ClassHash,
			ContractAddressSalt: *w.ContractAddressSalt,
			ConstructorCalldata: w.ConstructorCalldata,
		}, nil
	case TxTypeInvoke:
		if w.SenderAddress == nil {
			return nil, fmt.Errorf("types: invoke transaction missing sender_address")
		}
		return &InvokeTransaction{
			commonFields:  common,
			SenderAddress: *w.SenderAddress,
			Calldata:      w.Calldata,
		}, nil
	default:
		return nil, fmt.Errorf("types: unsupported transaction type %q", w.Type)
	}
}

func parseTip(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	var f felt.Felt
	if err := f.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("types: invalid tip %q: %w", s, err)
	}
	return f.Big().Uint64(), nil
}

// MaxPricePerUnit is a convenience constructor used by tests and the gateway
// to build a ResourceBounds from a plain uint64 unit price.
func MaxPricePerUnit(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}
