package model

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// caseInsensitiveEntry holds one key-value pair with the key's original casing.
type caseInsensitiveEntry struct {
	key   string
	value string
}

// CaseInsensitiveMap is a string map with case-insensitive key lookup that
// preserves both insertion order and the original casing of keys. Setting an
// existing key (under any casing) overwrites the value in place, keeping the
// entry's position but adopting the casing of the latest write.
//
// It backs extra-metadata fields and run-value sections, where vendor files
// are inconsistent about key casing but round-trip output must reproduce what
// the user last wrote.
type CaseInsensitiveMap struct {
	entries []caseInsensitiveEntry
	index   map[string]int
}

// NewCaseInsensitiveMap create new empty CaseInsensitiveMap.
func NewCaseInsensitiveMap() *CaseInsensitiveMap {
	return &CaseInsensitiveMap{
		entries: []caseInsensitiveEntry{},
		index:   map[string]int{},
	}
}

// foldKey normalizes a key for lookup.
func foldKey(key string) string {
	return strings.ToLower(key)
}

// Set stores value under key. If the key already exists under any casing, the
// existing entry is overwritten in place and takes on the new casing.
func (m *CaseInsensitiveMap) Set(key, value string) {
	fold := foldKey(key)
	if i, ok := m.index[fold]; ok {
		m.entries[i] = caseInsensitiveEntry{key: key, value: value}
		return
	}
	m.index[fold] = len(m.entries)
	m.entries = append(m.entries, caseInsensitiveEntry{key: key, value: value})
}

// Get returns the value for key, matching case-insensitively.
func (m *CaseInsensitiveMap) Get(key string) (string, bool) {
	i, ok := m.index[foldKey(key)]
	if !ok {
		return "", false
	}
	return m.entries[i].value, true
}

// Has reports whether key exists under any casing.
func (m *CaseInsensitiveMap) Has(key string) bool {
	_, ok := m.index[foldKey(key)]
	return ok
}

// OriginalKey returns the stored casing for key.
func (m *CaseInsensitiveMap) OriginalKey(key string) (string, bool) {
	i, ok := m.index[foldKey(key)]
	if !ok {
		return "", false
	}
	return m.entries[i].key, true
}

// Delete removes key under any casing. It reports whether an entry was
// removed. Remaining entries keep their relative order.
func (m *CaseInsensitiveMap) Delete(key string) bool {
	fold := foldKey(key)
	i, ok := m.index[fold]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, fold)
	for f, j := range m.index {
		if j > i {
			m.index[f] = j - 1
		}
	}
	return true
}

// Keys returns all keys in insertion order with their stored casing.
func (m *CaseInsensitiveMap) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Len returns the number of entries.
func (m *CaseInsensitiveMap) Len() int {
	return len(m.entries)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *CaseInsensitiveMap) Range(fn func(key, value string) bool) {
	for _, e := range m.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Clone returns a deep copy.
func (m *CaseInsensitiveMap) Clone() *CaseInsensitiveMap {
	clone := &CaseInsensitiveMap{
		entries: make([]caseInsensitiveEntry, len(m.entries)),
		index:   make(map[string]int, len(m.index)),
	}
	copy(clone.entries, m.entries)
	for k, v := range m.index {
		clone.index[k] = v
	}
	return clone
}

// Equal compare CaseInsensitiveMap. Two maps are equal when they hold the
// same folded keys with the same values; entry order and key casing are not
// compared.
func (m *CaseInsensitiveMap) Equal(m2 *CaseInsensitiveMap) bool {
	if m == nil || m2 == nil {
		return m == m2
	}
	if len(m.entries) != len(m2.entries) {
		return false
	}
	for _, e := range m.entries {
		v, ok := m2.Get(e.key)
		if !ok || v != e.value {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the map as a JSON object in insertion order with the
// stored key casing.
func (m *CaseInsensitiveMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, taking the object's key
// order as insertion order. Existing entries are discarded.
func (m *CaseInsensitiveMap) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("failed to decode case-insensitive map: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("case-insensitive map must be a JSON object")
	}

	decoded := NewCaseInsensitiveMap()
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("failed to decode case-insensitive map: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return errors.New("case-insensitive map keys must be strings")
		}
		var value string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("value for key %q must be a string: %w", key, err)
		}
		decoded.Set(key, value)
	}
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("failed to decode case-insensitive map: %w", err)
	}

	*m = *decoded
	return nil
}
