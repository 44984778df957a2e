package sierracompiler

import (
	"fmt"
	"strings"

	"github.com/starknet-sequencer/mempool/common/felt"
)

// ErrInvalidSierraVersion is returned when the program's leading three
// elements cannot be decoded as {major, minor, patch}.
type ErrInvalidSierraVersion struct {
	ProgramLength int
}

func (e *ErrInvalidSierraVersion) Error() string {
	return fmt.Sprintf("invalid sierra version: program has %d elements, need at least 3", e.ProgramLength)
}

// ErrBytecodeSizeTooLarge is returned when compiled bytecode exceeds the
// configured cap.
type ErrBytecodeSizeTooLarge struct {
	Size, Max int
}

func (e *ErrBytecodeSizeTooLarge) Error() string {
	return fmt.Sprintf("bytecode size %d exceeds max %d", e.Size, e.Max)
}

// ErrContractClassObjectSizeTooLarge is returned when the raw declared class
// exceeds the configured serialized-size cap.
type ErrContractClassObjectSizeTooLarge struct {
	Size, Max int
}

func (e *ErrContractClassObjectSizeTooLarge) Error() string {
	return fmt.Sprintf("contract class object size %d exceeds max %d", e.Size, e.Max)
}

// ErrAllowedLibfuncs is returned when the compiler's version-compatibility
// check rejects the class.
type ErrAllowedLibfuncs struct {
	Kind string
}

func (e *ErrAllowedLibfuncs) Error() string { return fmt.Sprintf("allowed libfuncs check failed: %s", e.Kind) }

// ErrStarknetSierraCompilation wraps a failure raised by the compilation
// pass itself (not a panic — a reported compiler error).
type ErrStarknetSierraCompilation struct {
	Kind string
}

func (e *ErrStarknetSierraCompilation) Error() string {
	return fmt.Sprintf("sierra compilation failed: %s", e.Kind)
}

// ErrCompilationPanic is surfaced when the compilation pass panics; the
// panic itself never escapes the worker.
type ErrCompilationPanic struct {
	Recovered any
}

func (e *ErrCompilationPanic) Error() string {
	return fmt.Sprintf("compilation panic: %v", e.Recovered)
}

// ErrCompiledClassHashMismatch is returned when the declared
// compiled_class_hash does not match the hash computed from the compiler
// output.
type ErrCompiledClassHashMismatch struct {
	Supplied, Computed felt.Felt
}

func (e *ErrCompiledClassHashMismatch) Error() string {
	return fmt.Sprintf("compiled class hash mismatch: supplied %s, computed %s", e.Supplied.Hex(), e.Computed.Hex())
}

// ErrUnsupportedBuiltins is returned when an entry point's declared builtins
// are not a subsequence of the fixed supported-builtins order.
type ErrUnsupportedBuiltins struct {
	Found, Supported []string
}

func (e *ErrUnsupportedBuiltins) Error() string {
	return fmt.Sprintf("unsupported builtins %s (supported order: %s)",
		strings.Join(e.Found, ","), strings.Join(e.Supported, ","))
}
