// Command example exercises the hashmap package with a small owned struct
// type, mirroring typical usage: construct a map with destroy/render hooks,
// insert, overwrite, look up, remove, render, and tear down.
package main

import (
	"fmt"
	"log"

	"github.com/jcoffa/hashmap"
)

type foo struct {
	value uint16
	name  string
}

func fooHooks() hashmap.Hooks[string, *foo] {
	return hashmap.Hooks[string, *foo]{
		DestroyKey:   func(string) {},
		RenderKey:    func(k string) string { return k },
		DestroyValue: func(*foo) {}, // nothing to release, the GC owns the memory
		RenderValue: func(f *foo) string {
			return fmt.Sprintf("Foo<%05d, %q>", f.value, f.name)
		},
	}
}

func main() {
	// Start with 4 buckets so the growth path is visible early.
	m, err := hashmap.New[string, *foo](fooHooks(), hashmap.WithCapacity[string, *foo](4))
	if err != nil {
		log.Fatalf("failed to create map: %v", err)
	}
	defer m.Close()

	for _, n := range []uint16{5, 20000, 12345, 42069, 333} {
		key := fmt.Sprint(n)
		m.Insert(key, &foo{value: n, name: "number " + key})
		fmt.Printf("inserted %s (length=%d): %v\n", key, m.Len(), m)
	}

	// Overwriting a key keeps the length unchanged.
	m.Insert("5", &foo{value: 5, name: "the cooler 5"})
	fmt.Printf("after overwrite (length=%d): %s\n", m.Len(), m.ValueString("5"))

	if f, ok := m.Get("12345"); ok {
		fmt.Printf("get 12345: Foo<%05d, %q>\n", f.value, f.name)
	}
	fmt.Printf("contains 25: %v\n", m.Contains("25"))

	// Remove hands the value back to the caller.
	if f, ok := m.Remove("20000"); ok {
		fmt.Printf("removed 20000, got back Foo<%05d, %q>\n", f.value, f.name)
	}
	fmt.Printf("after removal (length=%d): %v\n", m.Len(), m)

	// A map keyed by anything other than byte strings needs an explicit
	// hash; xxHash is a good choice for long string keys too.
	strong, err := hashmap.New[string, *foo](fooHooks(),
		hashmap.WithHash[string, *foo](hashmap.XXHashString))
	if err != nil {
		log.Fatalf("failed to create map: %v", err)
	}
	defer strong.Close()

	strong.Insert("6789", &foo{value: 6789, name: "number 6789"})
	fmt.Printf("xxhash-backed map: %v\n", strong)
}
