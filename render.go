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
	"strings"
)

// String renders the whole map as "{key: value, key: value}" using the
// RenderKey and RenderValue hooks, or "{}" for a nil or empty map. Entries
// appear in bucket array order, which depends on the map's capacity and
// mutation history: this is a diagnostic convenience, not an ordered
// traversal.
func (m *Map[K, V]) String() string {
	if m == nil || m.length == 0 {
		return "{}"
	}

	var buf strings.Builder
	buf.WriteByte('{')
	n := 0
	for i := range m.slots {
		if m.slots[i].state != slotOccupied {
			continue
		}
		if n > 0 {
			buf.WriteString(", ")
		}
		e := m.slots[i].entry
		buf.WriteString(m.hooks.RenderKey(e.key))
		buf.WriteString(": ")
		buf.WriteString(m.hooks.RenderValue(e.value))
		n++
	}
	buf.WriteByte('}')
	return buf.String()
}

// ValueString renders the value associated with key using the RenderValue
// hook. A nil map or a missing key renders as the empty string.
func (m *Map[K, V]) ValueString(key K) string {
	if m == nil {
		return ""
	}
	value, ok := m.Get(key)
	if !ok {
		return ""
	}
	return m.hooks.RenderValue(value)
}

// debugString renders every slot in array order, including empty slots and
// tombstones, one per line. Useful when diagnosing probe behavior.
func (m *Map[K, V]) debugString() string {
	if m == nil {
		return "<nil>\n"
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  length=%d\n", len(m.slots), m.length)
	for i := range m.slots {
		switch s := m.slots[i]; s.state {
		case slotEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case slotTombstone:
			fmt.Fprintf(&buf, "  %4d: tombstone\n", i)
		default:
			fmt.Fprintf(&buf, "  %4d: %s: %s [hash=%d]\n",
				i, m.hooks.RenderKey(s.entry.key), m.hooks.RenderValue(s.entry.value), s.entry.hash)
		}
	}
	return buf.String()
}
