// Package cart holds the pre-checkout line items for one session. Storage
// is injected so Redis and the in-memory test store are interchangeable,
// and UI refreshes hang off an observer callback instead of the cart
// knowing about any view.
package cart

import (
	"context"
	"encoding/json"
)

// Line is one cart entry. Prices are whole currency units (DA).
type Line struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Qty   int    `json:"qty"`
}

// KV is the persisted key-value store behind the cart.
type KV interface {
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key, val string) error
	Del(ctx context.Context, key string) error
}

type Store struct {
	kv  KV
	key string

	// onChange receives the new item count after every successful
	// mutation (the badge-refresh contract). May be nil.
	onChange func(count int)
}

func New(kv KV, key string, onChange func(count int)) *Store {
	return &Store{kv: kv, key: key, onChange: onChange}
}

// Items returns the current cart. Missing or corrupt storage reads are
// deliberately treated as an empty cart, never as an error.
func (s *Store) Items(ctx context.Context) []Line {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil
	}
	return lines
}

// Add merges by id: an existing line gains item.Qty (default 1), a new
// line is appended.
func (s *Store) Add(ctx context.Context, item Line) error {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	lines := s.Items(ctx)
	merged := false
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Qty += item.Qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, item)
	}
	return s.save(ctx, lines)
}

// Remove deletes the matching line. Absent ids are a no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	lines := s.Items(ctx)
	out := lines[:0]
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return s.save(ctx, out)
}

// UpdateQty sets the quantity exactly; qty <= 0 removes the line. Absent
// ids leave the cart unchanged.
func (s *Store) UpdateQty(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, id)
	}
	lines := s.Items(ctx)
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Qty = qty
			return s.save(ctx, lines)
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.key); err != nil {
		return err
	}
	s.notify(0)
	return nil
}

// Total is the sum of price*qty over the cart.
func (s *Store) Total(ctx context.Context) int {
	total := 0
	for _, l := range s.Items(ctx) {
		total += l.Price * l.Qty
	}
	return total
}

// Count is the sum of quantities over the cart.
func (s *Store) Count(ctx context.Context) int {
	count := 0
	for _, l := range s.Items(ctx) {
		count += l.Qty
	}
	return count
}

func (s *Store) save(ctx context.Context, lines []Line) error {
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return err
	}
	count := 0
	for _, l := range lines {
		count += l.Qty
	}
	s.notify(count)
	return nil
}

func (s *Store) notify(count int) {
	if s.onChange != nil {
		s.onChange(count)
	}
}
