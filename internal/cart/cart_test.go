package cart

import (
	"context"
	"reflect"
	"testing"
)

func newTestStore(onChange func(int)) *Store {
	return New(NewMemoryKV(), "cart:test", onChange)
}

func TestAddDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(nil)

	adds := []Line{
		{ID: "tea", Name: "Thé", Price: 500, Qty: 2},
		{ID: "hookah", Name: "Chicha", Price: 1200, Qty: 1},
		{ID: "juice", Name: "Jus", Price: 300}, // qty defaults to 1
	}
	for _, l := range adds {
		if err := s.Add(ctx, l); err != nil {
			t.Fatalf("Add(%s): %v", l.ID, err)
		}
	}

	if got := s.Count(ctx); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := len(s.Items(ctx)); got != 3 {
		t.Errorf("len(Items()) = %d, want 3", got)
	}
}

func TestAddMergesSameID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(nil)

	_ = s.Add(ctx, Line{ID: "x", Name: "X", Price: 100, Qty: 2})
	_ = s.Add(ctx, Line{ID: "x", Name: "X", Price: 100, Qty: 3})

	items := s.Items(ctx)
	if len(items) != 1 {
		t.Fatalf("len(Items()) = %d, want 1", len(items))
	}
	if items[0].Qty != 5 {
		t.Errorf("qty = %d, want 5", items[0].Qty)
	}
}

func TestUpdateQty(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []int{0, -1} {
		s := newTestStore(nil)
		_ = s.Add(ctx, Line{ID: "x", Name: "X", Price: 100, Qty: 2})
		if err := s.UpdateQty(ctx, "x", qty); err != nil {
			t.Fatalf("UpdateQty(x, %d): %v", qty, err)
		}
		if got := len(s.Items(ctx)); got != 0 {
			t.Errorf("UpdateQty(x, %d): len(Items()) = %d, want 0", qty, got)
		}
	}

	s := newTestStore(nil)
	_ = s.Add(ctx, Line{ID: "x", Name: "X", Price: 100, Qty: 2})
	before := s.Items(ctx)
	if err := s.UpdateQty(ctx, "absent", 7); err != nil {
		t.Fatalf("UpdateQty(absent): %v", err)
	}
	if !reflect.DeepEqual(s.Items(ctx), before) {
		t.Error("UpdateQty on absent id changed the cart")
	}

	if err := s.UpdateQty(ctx, "x", 9); err != nil {
		t.Fatalf("UpdateQty(x, 9): %v", err)
	}
	if got := s.Items(ctx)[0].Qty; got != 9 {
		t.Errorf("qty = %d, want 9", got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(nil)
	_ = s.Add(ctx, Line{ID: "x", Name: "X", Price: 100})
	if err := s.Remove(ctx, "nope"); err != nil {
		t.Fatalf("Remove(nope): %v", err)
	}
	if got := len(s.Items(ctx)); got != 1 {
		t.Errorf("len(Items()) = %d, want 1", got)
	}
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(nil)
	_ = s.Add(ctx, Line{ID: "a", Name: "A", Price: 500, Qty: 2})
	_ = s.Add(ctx, Line{ID: "b", Name: "B", Price: 1200, Qty: 1})
	if got := s.Total(ctx); got != 2200 {
		t.Errorf("Total() = %d, want 2200", got)
	}
}

func TestCorruptStorageReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, "cart:test", "{definitely not json")

	s := New(kv, "cart:test", nil)
	if got := s.Items(ctx); len(got) != 0 {
		t.Errorf("Items() on corrupt storage = %v, want empty", got)
	}
	if got := s.Total(ctx); got != 0 {
		t.Errorf("Total() on corrupt storage = %d, want 0", got)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(nil)
	_ = s.Add(ctx, Line{ID: "a", Name: "A", Price: 500, Qty: 2})
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear(): %v", err)
	}
	if got := len(s.Items(ctx)); got != 0 {
		t.Errorf("len(Items()) after Clear = %d, want 0", got)
	}
}

func TestOnChangeObserver(t *testing.T) {
	ctx := context.Background()
	var counts []int
	s := newTestStore(func(n int) { counts = append(counts, n) })

	_ = s.Add(ctx, Line{ID: "a", Name: "A", Price: 500, Qty: 2})
	_ = s.UpdateQty(ctx, "a", 5)
	_ = s.Remove(ctx, "a")
	_ = s.Clear(ctx)

	want := []int{2, 5, 0, 0}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("onChange counts = %v, want %v", counts, want)
	}
}
