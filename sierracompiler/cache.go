package sierracompiler

import (
	"encoding/json"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/starknet-sequencer/mempool/common/felt"
	"github.com/starknet-sequencer/mempool/core/types"
)

// classCache deduplicates compiled classes by their declared compiled_class_hash,
// the same role fastcache plays for go-ethereum's trie clean-cache: a
// fixed-memory, GC-friendly cache in front of repeated expensive work. A
// resubmitted Declare for a class this node already compiled skips
// compileCore entirely.
type classCache struct {
	cache *fastcache.Cache
}

func newClassCache(maxBytes int) *classCache {
	return &classCache{cache: fastcache.New(maxBytes)}
}

func (c *classCache) get(hash felt.Felt) (*types.CompiledClass, bool) {
	key := hash.Bytes()
	raw, ok := c.cache.HasGet(nil, key)
	if !ok {
		return nil, false
	}
	var compiled types.CompiledClass
	if err := json.Unmarshal(raw, &compiled); err != nil {
		return nil, false
	}
	return &compiled, true
}

func (c *classCache) set(hash felt.Felt, compiled *types.CompiledClass) {
	encoded, err := json.Marshal(compiled)
	if err != nil {
		return
	}
	key := hash.Bytes()
	c.cache.Set(key, encoded)
}

// entryCount is a rough cache-size hint derived from fastcache's own entry
// counter. Nothing in this module calls it.
func (c *classCache) entryCount() uint64 {
	var stats fastcache.Stats
	c.cache.UpdateStats(&stats)
	return stats.EntriesCount
}
