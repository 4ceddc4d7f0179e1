// Package hashtable provides the position caches consulted by the game core:
// a check-status table and a pawn-structure table. Both are keyed by the
// board's two-part hash plus the side the value was computed for.
package hashtable

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/hailam/sidecore/internal/board"
)

// Number of shards for locking (power of 2 for fast modulo)
const shardCount = 64
const shardMask = shardCount - 1

// Key identifies a cached value: the position hash pair and the side the
// value belongs to.
type Key struct {
	A, B  uint64
	Color board.Color
}

// slot mixes the full key through xxhash so that the A and B halves and
// the color all influence the bucket.
func (k Key) slot() uint64 {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:], k.A)
	binary.LittleEndian.PutUint64(buf[8:], k.B)
	buf[16] = byte(k.Color)
	return xxhash.Sum64(buf[:])
}

type entry[V any] struct {
	key   Key
	used  bool
	value V
}

// Stats is a snapshot of table usage counters.
type Stats struct {
	Size    uint64
	Probes  uint64
	Hits    uint64
	Records uint64
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	if s.Probes == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Probes) * 100
}

// table is a fixed-size, always-replace hash table. A probe only succeeds
// when the stored key matches in full, so a value is never returned for a
// different position.
type table[V any] struct {
	entries []entry[V]
	shards  [shardCount]sync.RWMutex
	mask    uint64

	probes  atomic.Uint64
	hits    atomic.Uint64
	records atomic.Uint64
}

func newTable[V any](sizeMB int, entrySize uint64) *table[V] {
	if sizeMB < 1 {
		sizeMB = 1
	}
	n := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	return &table[V]{
		entries: make([]entry[V], n),
		mask:    n - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (t *table[V]) probe(k Key) (V, bool) {
	t.probes.Add(1)

	idx := k.slot() & t.mask
	shard := idx & shardMask

	t.shards[shard].RLock()
	e := t.entries[idx]
	t.shards[shard].RUnlock()

	if e.used && e.key == k {
		t.hits.Add(1)
		return e.value, true
	}
	var zero V
	return zero, false
}

func (t *table[V]) record(k Key, v V) {
	t.records.Add(1)

	idx := k.slot() & t.mask
	shard := idx & shardMask

	t.shards[shard].Lock()
	t.entries[idx] = entry[V]{key: k, used: true, value: v}
	t.shards[shard].Unlock()
}

func (t *table[V]) clear() {
	for s := range t.shards {
		t.shards[s].Lock()
	}
	clear(t.entries)
	for s := range t.shards {
		t.shards[s].Unlock()
	}
	t.probes.Store(0)
	t.hits.Store(0)
	t.records.Store(0)
}

func (t *table[V]) stats() Stats {
	return Stats{
		Size:    uint64(len(t.entries)),
		Probes:  t.probes.Load(),
		Hits:    t.hits.Load(),
		Records: t.records.Load(),
	}
}
