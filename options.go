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

package hashmap

import "errors"

var (
	// ErrMissingCallback is reported by New when any of the four Hooks
	// callbacks is nil.
	ErrMissingCallback = errors.New("hashmap: missing destroy or render callback")

	// ErrMissingHash is reported by New when WithHash was not given and the
	// key type has no built-in hash (only string and []byte do).
	ErrMissingHash = errors.New("hashmap: no hash function for key type")

	// ErrInvalidConfig is reported by New when an option carries an invalid
	// value. Use errors.Is to test for it; the returned error includes the
	// offending value.
	ErrInvalidConfig = errors.New("hashmap: invalid configuration")
)

// option provides an interface to do work on a Map while it is being
// created. Option values are validated by New after all options have been
// applied.
type option[K, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K, V any] struct {
	hash func(K) int64
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function for a Map[K,V]. It is
// mandatory for key types other than string and []byte. Because key identity
// is decided by hash equality alone, the supplied function should be
// injective over the keys the caller intends to store.
func WithHash[K, V any](hash func(K) int64) option[K, V] {
	return hashOption[K, V]{hash}
}

type capacityOption[K, V any] struct {
	capacity int
}

func (op capacityOption[K, V]) apply(m *Map[K, V]) {
	m.capacityHint = op.capacity
}

// WithCapacity is an option to specify the initial capacity of a Map[K,V] in
// buckets. The hint is rounded up to the smallest power of two >= capacity,
// with a minimum of 1. A hint <= 0 is a configuration error.
func WithCapacity[K, V any](capacity int) option[K, V] {
	return capacityOption[K, V]{capacity}
}

type loadFactorOption[K, V any] struct {
	maxLoadFactor float64
}

func (op loadFactorOption[K, V]) apply(m *Map[K, V]) {
	m.maxLoadFactor = op.maxLoadFactor
}

// WithMaxLoadFactor is an option to specify the occupancy ratio above which
// a Map[K,V] grows before the next insertion. The default is 2/3. The value
// must lie strictly between 0 and 1.
func WithMaxLoadFactor[K, V any](maxLoadFactor float64) option[K, V] {
	return loadFactorOption[K, V]{maxLoadFactor}
}

type growthThresholdOption[K, V any] struct {
	buckets int
}

func (op growthThresholdOption[K, V]) apply(m *Map[K, V]) {
	m.growthThreshold = op.buckets
}

// WithGrowthThreshold is an option to specify the bucket count at which a
// Map[K,V] is considered large. A map below the threshold quadruples its
// capacity on growth; at or above it, the capacity only doubles. The default
// is 65536.
func WithGrowthThreshold[K, V any](buckets int) option[K, V] {
	return growthThresholdOption[K, V]{buckets}
}
