package types

import "github.com/starknet-sequencer/mempool/common/felt"

// SierraVersion decodes the leading three field elements of a Sierra program,
// which encode {major, minor, patch}.
type SierraVersion struct {
	Major, Minor, Patch uint64
}

// ContractClass is the high-level, declared (pre-compilation) form of a
// contract: an ordered Sierra program, an opaque ABI blob, and entry-point
// selectors grouped by kind. It is the payload of a Declare transaction.
type ContractClass struct {
	SierraProgram []felt.Felt
	ABI           string
	EntryPoints   EntryPointsByType
}

// EntryPointsByType groups a class's entry points by the three kinds the
// runtime dispatches on.
type EntryPointsByType struct {
	External    []EntryPoint
	L1Handler   []EntryPoint
	Constructor []EntryPoint
}

// All returns the external, l1_handler and constructor entry points in that
// fixed order, the iteration order the compiler's builtin check walks.
func (e EntryPointsByType) All() []EntryPoint {
	all := make([]EntryPoint, 0, len(e.External)+len(e.L1Handler)+len(e.Constructor))
	all = append(all, e.External...)
	all = append(all, e.L1Handler...)
	all = append(all, e.Constructor...)
	return all
}

// EntryPoint is one compiled entry point: a selector, its code offset, and
// the builtins it declares as required.
type EntryPoint struct {
	Selector felt.Felt
	Offset   int
	Builtins []string
}

// CompiledClass is the executable form produced by the Sierra-to-Casm
// compiler: raw bytecode plus the same entry-point grouping, now carrying
// code offsets, and the deterministic hash of the compiled output.
type CompiledClass struct {
	Bytecode          []felt.Felt
	EntryPoints       EntryPointsByType
	CompiledClassHash felt.Felt
}

// ClassInfo is what a successful Declare validation hands to downstream
// storage (out of scope here): the compiled class plus the two size figures
// used for accounting.
type ClassInfo struct {
	CompiledClass       *CompiledClass
	SierraProgramLength int
	ABILength           int
}
