package wfc

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheKey identifies a memoized support computation: a direction plus the
// content hash of the cell domain it was computed from. Two different
// domains that happen to hash equal are disambiguated by comparing the
// stored domain itself with Equals before trusting a hit (see Support), so
// a hash collision is rejected rather than silently aliased.
type cacheKey struct {
	hash uint64
	dir  Direction
}

type cacheEntry struct {
	domain  *BitDomain // clone of the cell domain this entry was computed from
	support *BitDomain
}

// CacheStats is a set of plain counters, observability only, never
// consulted for correctness.
type CacheStats struct {
	Hits, Misses int64
	PeakSize     int
}

// SupportCache memoizes support(cellDomain, direction) = the union, over
// every tile index set in cellDomain, of TileTable.Allow(tile, direction).
// It is solve-scoped: one cache per Solve call, never shared or
// process-wide, which is what keeps determinism intact across concurrent
// solves.
//
// Eviction is bounded and LRU when a positive capacity is configured
// (NewSupportCache); with capacity 0 the cache grows without bound, which
// is fine for the instance sizes this engine targets.
type SupportCache struct {
	table     *TileTable
	bounded   *lru.Cache[cacheKey, []cacheEntry]
	unbounded map[cacheKey][]cacheEntry
	stats     CacheStats
}

// NewSupportCache creates a cache over table. capacity <= 0 means unbounded
// growth; a positive capacity bounds the number of distinct (direction,
// hash-bucket) keys retained, evicting least-recently-used ones first.
func NewSupportCache(table *TileTable, capacity int) *SupportCache {
	sc := &SupportCache{table: table}
	if capacity > 0 {
		c, err := lru.New[cacheKey, []cacheEntry](capacity)
		if err != nil {
			// Only returned by golang-lru for a non-positive size, already
			// excluded above; a non-nil error here would be a library
			// contract violation, not a recoverable input error.
			panic(err)
		}
		sc.bounded = c
	} else {
		sc.unbounded = make(map[cacheKey][]cacheEntry)
	}
	return sc
}

// Support returns support(cellDomain, d), computing and memoizing it on a
// miss. The cached entry clones cellDomain so later mutation of the
// caller's live domain cannot poison the cache.
func (sc *SupportCache) Support(cellDomain *BitDomain, d Direction) *BitDomain {
	key := cacheKey{hash: cellDomain.Hash(), dir: d}

	bucket := sc.getBucket(key)
	for _, e := range bucket {
		if e.domain.Equals(cellDomain) {
			sc.stats.Hits++
			return e.support
		}
	}
	sc.stats.Misses++

	support := sc.compute(cellDomain, d)
	entry := cacheEntry{domain: cellDomain.Clone(), support: support}
	bucket = append(bucket, entry)
	sc.setBucket(key, bucket)
	return support
}

func (sc *SupportCache) compute(cellDomain *BitDomain, d Direction) *BitDomain {
	out := NewBitDomain(sc.table.N())
	cellDomain.Each(func(tile int) {
		out.UnionInto(sc.table.Allow(tile, d))
	})
	return out
}

func (sc *SupportCache) getBucket(key cacheKey) []cacheEntry {
	if sc.bounded != nil {
		if v, ok := sc.bounded.Get(key); ok {
			return v
		}
		return nil
	}
	return sc.unbounded[key]
}

func (sc *SupportCache) setBucket(key cacheKey, bucket []cacheEntry) {
	if sc.bounded != nil {
		sc.bounded.Add(key, bucket)
	} else {
		sc.unbounded[key] = bucket
	}
	if sz := sc.size(); sz > sc.stats.PeakSize {
		sc.stats.PeakSize = sz
	}
}

func (sc *SupportCache) size() int {
	if sc.bounded != nil {
		return sc.bounded.Len()
	}
	return len(sc.unbounded)
}

// Clear empties the cache, keeping its capacity configuration.
func (sc *SupportCache) Clear() {
	if sc.bounded != nil {
		sc.bounded.Purge()
	} else {
		sc.unbounded = make(map[cacheKey][]cacheEntry)
	}
}

// Stats returns a snapshot of hit/miss/peak-size counters.
func (sc *SupportCache) Stats() CacheStats {
	return sc.stats
}
