// Copyright 2024 The Hashmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashmap implements a generic open-addressed hash table that owns
// its keys and values and delegates hashing, destruction, and string
// rendering to caller-supplied callbacks.
//
// # Layout and probing
//
// A Map is a single contiguous array of slots. Each slot is in one of three
// states: empty (never occupied since the array was allocated), occupied
// (holds an entry), or tombstone (previously occupied, vacated by a
// removal). Collisions are resolved with linear probing: starting from
// abs(hash) mod capacity, slots are scanned sequentially with wraparound.
// A search skips tombstones and terminates at the first empty slot, so the
// table always keeps at least one empty slot to bound the scan. An insertion
// may reclaim the first open slot it finds, whether empty or tombstone.
//
// Each occupied slot points to a heap-allocated entry holding the key, the
// value, and the key's precomputed signed 64-bit hash. Caching the hash makes
// a resize linear in the number of entries rather than in key hashing cost,
// since entries are redistributed by their stored hash without touching the
// keys.
//
// # Resizing
//
// Before an insertion the table is rebuilt if the load factor exceeds 2/3 or
// if only a single empty slot remains (the loop-termination guard above; it
// matters independently for very small capacity hints). Both conditions
// count tombstones as well as occupied slots, since a tombstone is as
// opaque to a probing search as a live entry. A rebuild redistributes the
// live entries and discards every tombstone; the capacity grows only when
// the live entries alone breach the thresholds, so a table whose rebuild
// was forced by deletion debt is compacted in place rather than grown. A
// table below 65536 buckets quadruples its capacity on growth, a larger one
// doubles it: more frequent but cheap resizes while small, rarer ones once
// large. Both thresholds are tunable, see WithMaxLoadFactor and
// WithGrowthThreshold.
//
// # Key identity
//
// Two keys are considered the same key if and only if their 64-bit hashes
// are equal. Key bytes are never re-compared. A full-width hash collision
// between distinct keys therefore silently merges them. This is a documented
// simplification: callers needing strict identity must supply a hash that is
// injective over their key population.
//
// # Ownership
//
// The Map exclusively owns every key and value reachable through its
// occupied slots. Insert transfers ownership of both key and value to the
// table; an overwrite releases the previous pair through the DestroyKey and
// DestroyValue callbacks. Remove releases the key but transfers the value
// back to the caller, while DeleteKey releases both. Clear and Close release
// everything that survives. Each entry is destroyed exactly once.
//
// A Map is NOT goroutine-safe.
package hashmap

import (
	"fmt"
	"math/bits"
)

const (
	debug      = false
	invariants = false

	defaultCapacity        = 16
	defaultMaxLoadFactor   = 2.0 / 3.0
	defaultGrowthThreshold = 65536
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotTombstone
	slotOccupied
)

// entry is a key-value pair stored by the map. The key's full hash value is
// kept alongside so that it never has to be recomputed during lookup or
// resize.
type entry[K, V any] struct {
	hash  int64
	key   K
	value V
}

// slot is one element of the bucket array. The state tag distinguishes empty
// slots from tombstones; entry is non-nil only for occupied slots.
type slot[K, V any] struct {
	state slotState
	entry *entry[K, V]
}

// Hooks bundles the callbacks a Map needs to manage and render the keys and
// values it owns. All four are mandatory; New fails with ErrMissingCallback
// if any is nil.
//
// DestroyKey and DestroyValue must release every resource owned by the key
// or value. For plain Go data they are typically no-ops, but the map still
// requires them so that ownership transfer is explicit at the call site.
// RenderKey and RenderValue must return a fresh string representation.
type Hooks[K, V any] struct {
	DestroyKey   func(K)
	RenderKey    func(K) string
	DestroyValue func(V)
	RenderValue  func(V) string
}

// Map is an unordered map from keys to values with Insert, Get, Remove,
// DeleteKey, and Contains operations. Unlike Go's builtin map, a Map owns
// its keys and values: destruction and rendering are delegated to the Hooks
// supplied at construction, and K is not required to be comparable because
// key identity is the 64-bit hash (see the package documentation).
//
// The zero value for a Map is not usable; construct one with New. A nil
// *Map is safe to call: every operation is a no-op reporting absence.
//
// A Map is NOT goroutine-safe.
type Map[K, V any] struct {
	// slots is the bucket array. len(slots) is the capacity and is always a
	// power of two.
	slots []slot[K, V]
	// The number of occupied slots. Always < len(slots).
	length int
	// The number of tombstone slots. length+tombstones < len(slots) always
	// holds, preserving the empty slot that terminates probe loops.
	tombstones int
	// The hash function for keys of type K. Defaults to djb2 for string and
	// []byte keys; any other key type requires WithHash.
	hash  func(K) int64
	hooks Hooks[K, V]

	// Tuning knobs, see WithMaxLoadFactor and WithGrowthThreshold.
	maxLoadFactor   float64
	growthThreshold int

	// capacityHint is only consulted during New.
	capacityHint int
}

// New constructs a Map with the supplied hooks. The capacity defaults to 16
// buckets and can be changed with WithCapacity; a hint is rounded up to the
// smallest power of two that accommodates it. When WithHash is not given the
// built-in djb2 byte-string hash is used, which restricts K to string or
// []byte.
//
// New reports a configuration error and allocates nothing when a hook is
// missing, when no hash function is available for K, or when an option
// carries an invalid value.
func New[K, V any](hooks Hooks[K, V], options ...option[K, V]) (*Map[K, V], error) {
	if hooks.DestroyKey == nil || hooks.RenderKey == nil ||
		hooks.DestroyValue == nil || hooks.RenderValue == nil {
		return nil, ErrMissingCallback
	}

	m := &Map[K, V]{
		hooks:           hooks,
		maxLoadFactor:   defaultMaxLoadFactor,
		growthThreshold: defaultGrowthThreshold,
		capacityHint:    defaultCapacity,
	}
	for _, op := range options {
		op.apply(m)
	}

	if m.capacityHint <= 0 {
		return nil, fmt.Errorf("%w: capacity hint %d", ErrInvalidConfig, m.capacityHint)
	}
	if m.maxLoadFactor <= 0 || m.maxLoadFactor >= 1 {
		return nil, fmt.Errorf("%w: max load factor %v", ErrInvalidConfig, m.maxLoadFactor)
	}
	if m.growthThreshold <= 0 {
		return nil, fmt.Errorf("%w: growth threshold %d", ErrInvalidConfig, m.growthThreshold)
	}
	if m.hash == nil {
		h, ok := byteStringHash[K]()
		if !ok {
			return nil, ErrMissingHash
		}
		m.hash = h
	}

	m.slots = make([]slot[K, V], ceilPow2(m.capacityHint))
	return m, nil
}

// Insert sets the value associated with key, transferring ownership of both
// to the map. If an entry with the same key (i.e. the same hash) already
// exists, its old key and value are destroyed and replaced in place without
// changing Len. Insert reports false only for a nil map.
func (m *Map[K, V]) Insert(key K, value V) bool {
	if m == nil {
		return false
	}

	if m.needsResize() {
		m.resize()
	}

	e := &entry[K, V]{hash: m.hash(key), key: key, value: value}
	if debug {
		fmt.Printf("insert: hash=%d start=%d\n", e.hash, probeIndex(e.hash, len(m.slots)))
	}
	if m.place(m.slots, e) {
		m.length++
	}
	m.checkInvariants()
	return true
}

// Get returns the value associated with key without transferring ownership;
// ok is false if the key is not present or the map is nil.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if m == nil {
		return value, false
	}
	i := m.find(m.hash(key))
	if i < 0 {
		return value, false
	}
	return m.slots[i].entry.value, true
}

// Contains reports whether key is present in the map.
func (m *Map[K, V]) Contains(key K) bool {
	if m == nil {
		return false
	}
	return m.find(m.hash(key)) >= 0
}

// Remove removes the entry associated with key. The key is destroyed, but
// ownership of the value transfers back to the caller: it is returned
// undamaged and the DestroyValue hook is not invoked. The vacated slot
// becomes a tombstone so that probe sequences running through it stay
// intact. ok is false if the key is not present or the map is nil.
func (m *Map[K, V]) Remove(key K) (value V, ok bool) {
	if m == nil {
		return value, false
	}
	i := m.find(m.hash(key))
	if i < 0 {
		return value, false
	}

	e := m.slots[i].entry
	m.hooks.DestroyKey(e.key)
	m.slots[i] = slot[K, V]{state: slotTombstone}
	m.length--
	m.tombstones++
	m.checkInvariants()
	return e.value, true
}

// DeleteKey removes the entry associated with key and destroys both the key
// and the value. Deleting an absent key is a permissive no-op: DeleteKey
// reports true whenever the map itself is valid.
func (m *Map[K, V]) DeleteKey(key K) bool {
	if m == nil {
		return false
	}
	if value, ok := m.Remove(key); ok {
		m.hooks.DestroyValue(value)
	}
	return true
}

// Len returns the number of entries in the map, or -1 for a nil map.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return -1
	}
	return m.length
}

// IsEmpty reports whether the map contains no entries. A nil map reports
// false, matching the convention that a nil map answers every query
// negatively.
func (m *Map[K, V]) IsEmpty() bool {
	if m == nil {
		return false
	}
	return m.length == 0
}

// Clear destroys every surviving key and value and resets every slot to
// empty. The bucket array is deliberately kept at its current capacity to
// avoid churn if the map is reused.
func (m *Map[K, V]) Clear() {
	if m == nil {
		return
	}
	for i := range m.slots {
		if s := m.slots[i]; s.state == slotOccupied {
			m.hooks.DestroyValue(s.entry.value)
			m.hooks.DestroyKey(s.entry.key)
		}
		m.slots[i] = slot[K, V]{}
	}
	m.length = 0
	m.tombstones = 0
}

// Close destroys every surviving key and value and releases the bucket
// array. It is invalid to use a Map after it has been closed, though Close
// itself is idempotent and safe on a nil map.
func (m *Map[K, V]) Close() {
	if m == nil {
		return
	}
	m.Clear()
	m.slots = nil
}

// find returns the index of the occupied slot whose stored hash equals h, or
// -1 if probing reached an empty slot first. Tombstones are skipped.
func (m *Map[K, V]) find(h int64) int {
	i := probeIndex(h, len(m.slots))
	for m.slots[i].state != slotEmpty {
		if m.slots[i].state == slotOccupied && m.slots[i].entry.hash == h {
			return i
		}
		i = (i + 1) % len(m.slots)
	}
	return -1
}

// place inserts e into slots without checking whether a resize is due. It
// probes from e's hash until it reaches an open slot (empty or tombstone) or
// an occupied slot with an equal hash. In the latter case the old key and
// value are destroyed and e takes over the slot. Reports whether e claimed a
// new slot, in which case the caller must increment length.
func (m *Map[K, V]) place(slots []slot[K, V], e *entry[K, V]) bool {
	i := probeIndex(e.hash, len(slots))
	for slots[i].state == slotOccupied {
		if old := slots[i].entry; old.hash == e.hash {
			m.hooks.DestroyValue(old.value)
			m.hooks.DestroyKey(old.key)
			slots[i].entry = e
			return false
		}
		i = (i + 1) % len(slots)
	}
	if slots[i].state == slotTombstone {
		m.tombstones--
	}
	slots[i] = slot[K, V]{state: slotOccupied, entry: e}
	return true
}

// needsResize reports whether an insertion may no longer proceed safely:
// either the load factor threshold has been breached, or only one empty
// slot remains. Both conditions count tombstones alongside occupied slots.
// A search only terminates at an empty slot, so a tombstone consumes probe
// headroom exactly as a live entry does; counting occupancy alone would let
// deletions use up the last empty slot and leave an absent-key search
// spinning forever. The single-empty-slot condition also matters on its own
// for tables created with a tiny capacity hint, well below the load factor
// threshold.
func (m *Map[K, V]) needsResize() bool {
	filled := m.length + m.tombstones
	if float64(filled)/float64(len(m.slots)) > m.maxLoadFactor {
		return true
	}
	return filled == len(m.slots)-1
}

// resize rebuilds the bucket array and redistributes every occupied entry
// into it using the entries' stored hashes and the normal probing rule.
// Tombstones are not carried over. The capacity grows only when the live
// entries alone breach the resize thresholds; when the rebuild was forced
// by accumulated tombstones the array is reallocated at its current
// capacity, compacting the deletion debt without growing, so churning
// inserts and deletes do not inflate the table.
func (m *Map[K, V]) resize() {
	capacity := len(m.slots)
	if float64(m.length)/float64(capacity) > m.maxLoadFactor || m.length >= capacity-1 {
		if capacity >= m.growthThreshold {
			capacity *= 2
		} else {
			capacity *= 4
		}
	}
	next := make([]slot[K, V], capacity)

	if debug {
		fmt.Printf("resize: capacity=%d->%d length=%d\n", len(m.slots), len(next), m.length)
	}

	// The bucket array is mostly open space, so stop scanning as soon as
	// every live entry has been moved.
	moved := 0
	for i := 0; moved < m.length && i < len(m.slots); i++ {
		if m.slots[i].state != slotOccupied {
			continue
		}
		m.place(next, m.slots[i].entry)
		moved++
	}
	m.slots = next
	m.tombstones = 0
	m.checkInvariants()
}

// probeIndex returns the starting probe position for hash h in an array of
// n slots.
func probeIndex(h int64, n int) int {
	u := uint64(h)
	if h < 0 {
		u = uint64(-h)
	}
	return int(u % uint64(n))
}

// ceilPow2 returns the smallest power of two >= n, with a minimum of 1.
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		var occupied, tombstones, empty int
		for i := range m.slots {
			switch m.slots[i].state {
			case slotOccupied:
				if e := m.slots[i].entry; e == nil {
					panic(fmt.Sprintf("invariant failed: slot(%d) occupied with nil entry\n%s",
						i, m.debugString()))
				} else if j := m.find(e.hash); j < 0 {
					panic(fmt.Sprintf("invariant failed: slot(%d) hash=%d not findable\n%s",
						i, e.hash, m.debugString()))
				}
				occupied++
			case slotTombstone:
				tombstones++
			case slotEmpty:
				empty++
			}
		}
		if occupied != m.length {
			panic(fmt.Sprintf("invariant failed: found %d occupied slots, but length is %d\n%s",
				occupied, m.length, m.debugString()))
		}
		if tombstones != m.tombstones {
			panic(fmt.Sprintf("invariant failed: found %d tombstone slots, but tombstones is %d\n%s",
				tombstones, m.tombstones, m.debugString()))
		}
		if empty == 0 {
			panic(fmt.Sprintf("invariant failed: no empty slot left to terminate probing\n%s",
				m.debugString()))
		}
	}
}
