package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a string-keyed map that remembers insertion order and
// marshals to a JSON object in that order.
type OrderedMap[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: orderedmap.New[string, V]()}
}

// Set inserts or replaces key. Replacing keeps the original position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.m == nil {
		m.m = orderedmap.New[string, V]()
	}
	m.m.Set(key, v)
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.m == nil {
		var zero V
		return zero, false
	}
	return m.m.Get(key)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil || m.m == nil {
		return nil
	}
	keys := make([]string, 0, m.m.Len())
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	if m == nil || m.m == nil {
		return nil
	}
	out := make([]V, 0, m.m.Len())
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

func (m *OrderedMap[V]) Len() int {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Len()
}

func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m.m == nil {
		return []byte("{}"), nil
	}
	return m.m.MarshalJSON()
}

// UnmarshalJSON replaces the contents, keeping the order keys appear in.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.m = orderedmap.New[string, V]()
	return m.m.UnmarshalJSON(data)
}
