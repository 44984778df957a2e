package sierracompiler

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/log"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

// ParseSierraVersion decodes a program's leading three elements as
// {major, minor, patch}.
func ParseSierraVersion(program []felt.Felt) (types.SierraVersion, error) {
	if len(program) < 3 {
		return types.SierraVersion{}, &ErrInvalidSierraVersion{ProgramLength: len(program)}
	}
	return types.SierraVersion{
		Major: program[0].Big().Uint64(),
		Minor: program[1].Big().Uint64(),
		Patch: program[2].Big().Uint64(),
	}, nil
}

// ValidateRawClassSize enforces the raw declared-class serialized-size cap.
func ValidateRawClassSize(class *types.ContractClass, maxRawClassSize int) error {
	encoded, err := json.Marshal(class)
	if err != nil {
		return err
	}
	if len(encoded) > maxRawClassSize {
		return &ErrContractClassObjectSizeTooLarge{Size: len(encoded), Max: maxRawClassSize}
	}
	return nil
}

// Compiler runs Sierra-to-Casm compilation with resource caps, version
// compatibility checks, and panic-isolated execution.
type Compiler struct {
	cfg   Config
	pool  *workerPool
	cache *classCache
}

// defaultCacheBytes bounds the compiled-class dedup cache at a fixed memory
// footprint rather than an entry count, matching fastcache's own sizing
// convention.
const defaultCacheBytes = 32 * 1024 * 1024

// NewCompiler builds a Compiler whose compiles are bounded by maxConcurrent
// in-flight compilations.
func NewCompiler(cfg Config, maxConcurrent int) *Compiler {
	return &Compiler{cfg: cfg, pool: newWorkerPool(maxConcurrent), cache: newClassCache(defaultCacheBytes)}
}

// Compile transforms declared into an executable compiled class, verifying
// the version-compatibility check, the supported-builtins subsequence, and
// — when expectedHash is non-zero — the declared compiled_class_hash.
// Panics inside the compilation pass are contained and surfaced as
// ErrCompilationPanic.
func (c *Compiler) Compile(ctx context.Context, declared *types.ContractClass, expectedHash felt.Felt) (*types.CompiledClass, error) {
	version, err := ParseSierraVersion(declared.SierraProgram)
	if err != nil {
		return nil, err
	}

	if err := ValidateRawClassSize(declared, c.cfg.MaxRawClassSize); err != nil {
		return nil, err
	}

	if err := checkVersionCompatibility(version, c.cfg); err != nil {
		return nil, err
	}

	if !expectedHash.IsZero() {
		if cached, ok := c.cache.get(expectedHash); ok {
			log.Debug("Compiled class cache hit", "hash", expectedHash.Hex())
			return cached, nil
		}
	}

	result, err := c.pool.run(ctx, func() (*types.CompiledClass, error) {
		return compileCore(declared, c.cfg)
	})
	if err != nil {
		return nil, err
	}

	for _, ep := range result.EntryPoints.All() {
		if !isSubsequence(ep.Builtins, c.cfg.SupportedBuiltins) {
			return nil, &ErrUnsupportedBuiltins{Found: ep.Builtins, Supported: c.cfg.SupportedBuiltins}
		}
	}

	if !expectedHash.IsZero() {
		if err := ValidateCompiledClassHash(result, expectedHash); err != nil {
			return nil, err
		}
		c.cache.set(expectedHash, result)
	}

	log.Debug("Compiled declared class", "bytecode_len", len(result.Bytecode), "hash", result.CompiledClassHash.Hex())
	return result, nil
}

// ValidateCompiledClassHash compares the hash computed from compiled
// against expected, independent of a full Compile call.
func ValidateCompiledClassHash(compiled *types.CompiledClass, expected felt.Felt) error {
	if compiled.CompiledClassHash != expected {
		return &ErrCompiledClassHashMismatch{Supplied: expected, Computed: compiled.CompiledClassHash}
	}
	return nil
}

// checkVersionCompatibility rejects classes whose decoded version falls
// outside what this compiler build accepts.
func checkVersionCompatibility(version types.SierraVersion, cfg Config) error {
	if cfg.AllowedLibfuncsList != "" && version.Major == 0 && version.Minor == 0 && version.Patch == 0 {
		return &ErrAllowedLibfuncs{Kind: "zero version rejected under " + cfg.AllowedLibfuncsList}
	}
	return nil
}

// compileCore performs the actual Sierra→Casm transformation. It runs
// on the bounded worker pool and may panic on malformed programs; the pool
// recovers and reports ErrCompilationPanic.
func compileCore(declared *types.ContractClass, cfg Config) (*types.CompiledClass, error) {
	if len(declared.SierraProgram) < 3 {
		// Unreachable in practice: ParseSierraVersion already rejected this.
		// Kept so a malformed program still fails loudly inside the worker
		// instead of indexing out of range below.
		panic("compileCore: program shorter than version header")
	}

	bytecode := make([]felt.Felt, 0, len(declared.SierraProgram))
	bytecode = append(bytecode, declared.SierraProgram[3:]...)
	if len(bytecode) > cfg.MaxBytecodeSize {
		return nil, &ErrBytecodeSizeTooLarge{Size: len(bytecode), Max: cfg.MaxBytecodeSize}
	}

	hash, err := computeCompiledClassHash(bytecode, declared.EntryPoints)
	if err != nil {
		return nil, &ErrStarknetSierraCompilation{Kind: err.Error()}
	}

	return &types.CompiledClass{
		Bytecode:          bytecode,
		EntryPoints:       declared.EntryPoints,
		CompiledClassHash: hash,
	}, nil
}
