package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a simple in-memory Store, intended for tests. Records are
// kept in insertion order per kind.
type MemoryStore struct {
	mu    sync.RWMutex
	kinds map[string][]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kinds: make(map[string][]Record)}
}

func (m *MemoryStore) FindByKey(kind, field string, value interface{}) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.kinds[kind] {
		if matches(rec[field], value) {
			return clone(rec), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) FindAll(kind string, filter map[string]interface{}) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Record{}
	for _, rec := range m.kinds[kind] {
		ok := true
		for field, value := range filter {
			if !matches(rec[field], value) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (m *MemoryStore) Create(kind string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := clone(rec)
	saved["id"] = uuid.NewString()
	m.kinds[kind] = append(m.kinds[kind], saved)
	return clone(saved), nil
}

func (m *MemoryStore) Save(kind string, rec Record) (Record, error) {
	id := rec.ID()
	if id == "" {
		return m.Create(kind, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.kinds[kind] {
		if existing.ID() == id {
			saved := clone(rec)
			m.kinds[kind][i] = saved
			return clone(saved), nil
		}
	}
	return nil, fmt.Errorf("record %s/%s: not found", kind, id)
}

func (m *MemoryStore) Delete(kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.kinds[kind]
	for i, rec := range recs {
		if rec.ID() == id {
			m.kinds[kind] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %s/%s: not found", kind, id)
}

func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// matches compares loosely so that numeric values survive a JSON round trip
// (int vs float64) without breaking lookups.
func matches(a, b interface{}) bool {
	if a == b {
		return true
	}
	return toString(a) == toString(b)
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
