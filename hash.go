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

import "github.com/cespare/xxhash/v2"

// djb2Seed is the starting value of the djb2 string hashing algorithm,
// created by Daniel J. Bernstein. The variant used here XORs each byte into
// the running hash instead of adding it; Bernstein is on record preferring
// the XOR version for standard use. See
// http://www.cse.yorku.ca/~oz/hash.html#djb2.
const djb2Seed = 5381

// Djb2String hashes a string with the djb2-XOR algorithm. It is the default
// hash for Maps with string keys.
func Djb2String(s string) int64 {
	h := int64(djb2Seed)
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) ^ int64(s[i]) // (h * 33) XOR byte
	}
	return h
}

// Djb2Bytes hashes a byte slice with the djb2-XOR algorithm. It is the
// default hash for Maps with []byte keys.
func Djb2Bytes(b []byte) int64 {
	h := int64(djb2Seed)
	for _, c := range b {
		h = ((h << 5) + h) ^ int64(c)
	}
	return h
}

// XXHashString hashes a string with xxHash (XXH64). djb2 is simple but weak
// on short similar keys; callers who want a stronger byte-string hash can
// pass this to WithHash.
func XXHashString(s string) int64 {
	return int64(xxhash.Sum64String(s))
}

// XXHashBytes is XXHashString for byte slices.
func XXHashBytes(b []byte) int64 {
	return int64(xxhash.Sum64(b))
}

// byteStringHash returns the built-in hash function for K if one exists.
// Only string and []byte keys have a built-in hash; every other key type
// requires WithHash.
func byteStringHash[K any]() (func(K) int64, bool) {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) int64 { return Djb2String(any(k).(string)) }, true
	case []byte:
		return func(k K) int64 { return Djb2Bytes(any(k).([]byte)) }, true
	}
	return nil, false
}
