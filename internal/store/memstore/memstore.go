// Package memstore is an in-memory Store used by tests and by
// STORE_MODE=memory. Documents are deep-copied on the way in and out so
// callers can never alias internal state.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"atelier-backend/internal/store"
)

type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string]store.Doc
}

func New() *MemStore {
	return &MemStore{data: make(map[string]map[string]store.Doc)}
}

func (m *MemStore) Insert(ctx context.Context, collection string, doc store.Doc) error {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("document has no id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]store.Doc)
	}
	m.data[collection][id] = clone(doc)
	return nil
}

func (m *MemStore) FindByID(ctx context.Context, collection, id string) (store.Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(doc), nil
}

func (m *MemStore) FindOne(ctx context.Context, collection string, filter store.Doc) (store.Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.data[collection] {
		if matches(doc, filter) {
			return clone(doc), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) Find(ctx context.Context, collection string, filter store.Doc, opts store.FindOptions) ([]store.Doc, error) {
	m.mu.RLock()
	out := make([]store.Doc, 0)
	for _, doc := range m.data[collection] {
		if matches(doc, filter) {
			out = append(out, clone(doc))
		}
	}
	m.mu.RUnlock()

	if opts.SortField != "" {
		sort.Slice(out, func(i, j int) bool {
			a := stringField(out[i], opts.SortField)
			b := stringField(out[j], opts.SortField)
			if opts.SortDesc {
				return a > b
			}
			return a < b
		})
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MemStore) SetFields(ctx context.Context, collection, id string, fields store.Doc) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return false, nil
	}
	for k, v := range clone(fields) {
		doc[k] = v
	}
	return true, nil
}

func (m *MemStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[collection][id]; !ok {
		return false, nil
	}
	delete(m.data[collection], id)
	return true, nil
}

func (m *MemStore) DeleteOlderThan(ctx context.Context, collection, field, cutoff string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, doc := range m.data[collection] {
		if v := stringField(doc, field); v != "" && v < cutoff {
			delete(m.data[collection], id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemStore) Close(ctx context.Context) error { return nil }

func matches(doc, filter store.Doc) bool {
	for k, want := range filter {
		if doc[k] != want {
			return false
		}
	}
	return true
}

func stringField(doc store.Doc, field string) string {
	s, _ := doc[field].(string)
	return s
}

// clone deep-copies a document through its JSON form; values stay within the
// JSON type set the rest of the store contract assumes.
func clone(doc store.Doc) store.Doc {
	b, err := json.Marshal(doc)
	if err != nil {
		return store.Doc{}
	}
	var out store.Doc
	if err := json.Unmarshal(b, &out); err != nil {
		return store.Doc{}
	}
	return out
}
