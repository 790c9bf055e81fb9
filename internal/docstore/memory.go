package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store with full subscription semantics. It backs
// tests and local development in place of Postgres.
type Memory struct {
	mu   sync.Mutex
	cols map[string][]*memDoc
	hub  *Hub
}

type memDoc struct {
	id        string
	createdAt time.Time
	fields    map[string]any
}

func NewMemory() *Memory {
	m := &Memory{cols: map[string][]*memDoc{}}
	m.hub = NewHub(m.Snapshot)
	return m
}

func (m *Memory) Create(ctx context.Context, collection string, doc any) (string, time.Time, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", time.Time{}, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return "", time.Time{}, err
	}

	d := &memDoc{id: uuid.NewString(), createdAt: time.Now(), fields: fields}
	m.mu.Lock()
	m.cols[collection] = append(m.cols[collection], d)
	m.mu.Unlock()

	m.hub.Notify(collection)
	return d.id, d.createdAt, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	m.mu.Lock()
	var found *memDoc
	for _, d := range m.cols[collection] {
		if d.id == id {
			found = d
			break
		}
	}
	if found == nil {
		m.mu.Unlock()
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	for k, v := range patch {
		found.fields[k] = v
	}
	m.mu.Unlock()

	m.hub.Notify(collection)
	return nil
}

func (m *Memory) Subscribe(collection string, q Query, fn func([]Document)) (Unsubscribe, error) {
	return m.hub.Add(collection, q, fn), nil
}

// Snapshot evaluates q against the current collection contents. The
// result is fully detached inside the critical section: Update mutates
// field maps in place, so nothing shared may leak past the unlock.
func (m *Memory) Snapshot(ctx context.Context, collection string, q Query) ([]Document, error) {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = FieldCreatedAt
	}

	type snap struct {
		doc Document
		key string
	}

	m.mu.Lock()
	var hit []snap
	for _, d := range m.cols[collection] {
		if !matches(d, q.Filters) {
			continue
		}
		raw, err := json.Marshal(d.fields)
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		hit = append(hit, snap{
			doc: Document{ID: d.id, CreatedAt: d.createdAt, Data: raw},
			key: fmt.Sprint(d.fields[orderBy]),
		})
	}
	m.mu.Unlock()

	sort.SliceStable(hit, func(i, j int) bool {
		if q.Desc {
			i, j = j, i
		}
		if orderBy == FieldCreatedAt {
			return hit[i].doc.CreatedAt.Before(hit[j].doc.CreatedAt)
		}
		return hit[i].key < hit[j].key
	})

	out := make([]Document, 0, len(hit))
	for _, s := range hit {
		out = append(out, s.doc)
	}
	return out, nil
}

// Len reports the number of documents in a collection.
func (m *Memory) Len(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cols[collection])
}

func matches(d *memDoc, filters []Filter) bool {
	for _, f := range filters {
		if !matchOne(d, f) {
			return false
		}
	}
	return true
}

func matchOne(d *memDoc, f Filter) bool {
	if f.Field == FieldCreatedAt {
		t, ok := f.Value.(time.Time)
		if !ok {
			return false
		}
		switch f.Op {
		case OpEq:
			return d.createdAt.Equal(t)
		case OpGte:
			return !d.createdAt.Before(t)
		}
		return false
	}

	v, ok := d.fields[f.Field]
	if !ok {
		return false
	}
	s := fmt.Sprint(v)
	switch f.Op {
	case OpEq:
		return s == fmt.Sprint(f.Value)
	case OpGte:
		return s >= fmt.Sprint(f.Value)
	case OpIn:
		want, ok := f.Value.([]string)
		if !ok {
			return false
		}
		for _, w := range want {
			if s == w {
				return true
			}
		}
	}
	return false
}
