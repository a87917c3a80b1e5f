package img2ascii

import (
	"cmp"
	"slices"
)

// SortedMap is a map that keeps its keys in ascending order. Inserts and
// deletes use binary search over the key slice, so iteration order is
// always sorted regardless of insertion order.
//
// SortedMap is not safe for concurrent use.
type SortedMap[K cmp.Ordered, V any] struct {
	keys   []K
	values map[K]V
}

// NewSortedMap creates an empty SortedMap.
func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return &SortedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set adds or replaces a key-value pair.
func (m *SortedMap[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		i, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, i, key)
	}
	m.values[key] = value
}

// Get retrieves a value by key.
func (m *SortedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *SortedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (m *SortedMap[K, V]) Delete(key K) bool {
	if _, exists := m.values[key]; !exists {
		return false
	}
	delete(m.values, key)
	if i, found := slices.BinarySearch(m.keys, key); found {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return true
}

// Keys returns a copy of the keys in ascending order.
func (m *SortedMap[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Iterate calls f for each key-value pair in ascending key order.
func (m *SortedMap[K, V]) Iterate(f func(key K, value V)) {
	for _, k := range m.keys {
		f(k, m.values[k])
	}
}

// Len returns the number of elements in the map.
func (m *SortedMap[K, V]) Len() int {
	return len(m.keys)
}
