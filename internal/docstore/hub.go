package docstore

import (
	"context"
	"log"
	"sync"
)

// SnapshotFunc runs a query against the backing store and returns the
// current matching documents.
type SnapshotFunc func(ctx context.Context, collection string, q Query) ([]Document, error)

// Hub tracks live queries and re-delivers snapshots when a collection
// changes, whether the change was local or arrived over the change feed.
type Hub struct {
	snapshot SnapshotFunc

	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	collection string
	q          Query
	fn         func([]Document)
	mu         sync.Mutex // serializes pushes to fn
}

func NewHub(snapshot SnapshotFunc) *Hub {
	return &Hub{snapshot: snapshot, subs: map[int]*subscription{}}
}

// Add registers a live query and pushes the initial snapshot.
func (h *Hub) Add(collection string, q Query, fn func([]Document)) Unsubscribe {
	s := &subscription{collection: collection, q: q, fn: fn}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = s
	h.mu.Unlock()

	go h.deliver(s)

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Notify re-runs every live query on the collection and pushes fresh
// snapshots. Redundant notifications are harmless, they just re-query.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	var hit []*subscription
	for _, s := range h.subs {
		if s.collection == collection {
			hit = append(hit, s)
		}
	}
	h.mu.Unlock()

	for _, s := range hit {
		go h.deliver(s)
	}
}

func (h *Hub) deliver(s *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := h.snapshot(context.Background(), s.collection, s.q)
	if err != nil {
		log.Printf("docstore: snapshot %s: %v", s.collection, err)
		return
	}
	s.fn(docs)
}
