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

import (
	"strconv"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestDjb2(t *testing.T) {
	// hash("") is the seed; hash("a") = (5381*33) XOR 'a'.
	require.EqualValues(t, 5381, Djb2String(""))
	require.EqualValues(t, (5381*33)^'a', Djb2String("a"))
	require.Equal(t, Djb2String("number 5"), Djb2Bytes([]byte("number 5")))
	require.NotEqual(t, Djb2String("5"), Djb2String("20000"))
}

func TestXXHash(t *testing.T) {
	require.EqualValues(t, xxhash.Sum64String("number 5"), uint64(XXHashString("number 5")))
	require.Equal(t, XXHashString("number 5"), XXHashBytes([]byte("number 5")))
}

func TestXXHashAsMapHash(t *testing.T) {
	c := &hookCounts{}
	m, err := New[string, string](countingHooks(c),
		WithHash[string, string](XXHashString))
	require.NoError(t, err)

	require.True(t, m.Insert("5", "number 5"))
	require.True(t, m.Insert("20000", "number 20000"))
	v, ok := m.Get("5")
	require.True(t, ok)
	require.Equal(t, "number 5", v)
	require.True(t, m.Contains("20000"))
	require.False(t, m.Contains("12345"))
}

func TestDefaultHashByteKeys(t *testing.T) {
	m, err := New[[]byte, int](Hooks[[]byte, int]{
		DestroyKey:   func([]byte) {},
		RenderKey:    func(k []byte) string { return string(k) },
		DestroyValue: func(int) {},
		RenderValue:  strconv.Itoa,
	})
	require.NoError(t, err)

	require.True(t, m.Insert([]byte("alpha"), 1))
	v, ok := m.Get([]byte("alpha"))
	require.True(t, ok)
	require.Equal(t, 1, v)
}
