package orderedmap

import (
	"errors"
	"iter"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	entries []K
	keys    map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	// TODO: use pooling
	return &Map[K, V]{
		entries: make([]K, 0),
		keys:    make(map[K]V),
	}
}

func (m *Map[K, V]) Set(key K, value V) error {
	_, exists := m.keys[key]
	if exists {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, key)
	m.keys[key] = value
	return nil
}

// Overwrite inserts key/value, or updates value in place if key is
// already present, preserving key's original position in iteration
// order.
func (m *Map[K, V]) Overwrite(key K, value V) {
	if _, exists := m.keys[key]; !exists {
		m.entries = append(m.entries, key)
	}
	m.keys[key] = value
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.keys[key]
	return v, ok
}

// Delete removes key, returning its former value and whether it was
// present.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	v, ok := m.keys[key]
	if !ok {
		return v, false
	}
	delete(m.keys, key)
	for i, k := range m.entries {
		if k == key {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return v, true
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Clone returns a deep copy that shares no backing storage with m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := New[K, V]()
	c.entries = append(c.entries, m.entries...)
	for k, v := range m.keys {
		c.keys[k] = v
	}
	return c
}

func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.entries {
			v := m.keys[k]
			if !yield(k, v) {
				break
			}
		}
	}
}
