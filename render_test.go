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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type foo struct {
	value uint16
	name  string
}

func fooHooks() Hooks[string, *foo] {
	return Hooks[string, *foo]{
		DestroyKey:   func(string) {},
		RenderKey:    func(k string) string { return k },
		DestroyValue: func(*foo) {},
		RenderValue: func(f *foo) string {
			return fmt.Sprintf("Foo<%05d, %q>", f.value, f.name)
		},
	}
}

func TestStringEmpty(t *testing.T) {
	m, err := New[string, *foo](fooHooks())
	require.NoError(t, err)
	require.Equal(t, "{}", m.String())
}

func TestStringSingleEntry(t *testing.T) {
	m, err := New[string, *foo](fooHooks())
	require.NoError(t, err)

	require.True(t, m.Insert("5", &foo{value: 5, name: "number 5"}))
	require.Equal(t, `{5: Foo<00005, "number 5">}`, m.String())
	require.Equal(t, fmt.Sprintf("%v", m), m.String())
}

func TestStringArrayOrder(t *testing.T) {
	// Pin the slot positions so the rendering order is deterministic: the
	// whole-map rendering walks the bucket array, not insertion order.
	hashes := map[string]int64{"b": 1, "a": 3}
	c := &hookCounts{}
	m, err := New[string, string](countingHooks(c),
		WithCapacity[string, string](8),
		WithHash[string, string](func(k string) int64 { return hashes[k] }))
	require.NoError(t, err)

	require.True(t, m.Insert("a", "va"))
	require.True(t, m.Insert("b", "vb"))
	require.Equal(t, "{b: vb, a: va}", m.String())
}

func TestValueString(t *testing.T) {
	m, err := New[string, *foo](fooHooks())
	require.NoError(t, err)

	require.True(t, m.Insert("5", &foo{value: 5, name: "number 5"}))
	require.Equal(t, `Foo<00005, "number 5">`, m.ValueString("5"))
	require.Equal(t, "", m.ValueString("25"))
}

func TestDebugString(t *testing.T) {
	hashes := map[string]int64{"x": 0, "y": 1}
	c := &hookCounts{}
	m, err := New[string, string](countingHooks(c),
		WithCapacity[string, string](4),
		WithHash[string, string](func(k string) int64 { return hashes[k] }))
	require.NoError(t, err)

	require.True(t, m.Insert("x", "vx"))
	require.True(t, m.Insert("y", "vy"))
	_, ok := m.Remove("y")
	require.True(t, ok)

	s := m.debugString()
	require.Contains(t, s, "capacity=4  length=1")
	require.Contains(t, s, "x: vx [hash=0]")
	require.Contains(t, s, "tombstone")
	require.Contains(t, s, "empty")
}
