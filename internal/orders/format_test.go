package orders

import (
	"testing"
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
)

func TestFormatOrderCard(t *testing.T) {
	o := Order{
		CreatedAt: time.Date(2026, 8, 28, 21, 30, 0, 0, time.Local),
		Items: []cart.Line{
			{ID: "moj", Name: "Mojito", Price: 600, Qty: 2},
			{ID: "piz", Name: "Pizza", Price: 1000, Qty: 1},
		},
		Status: StatusPreparing,
	}
	card := FormatOrderCard(o)
	if card.Time != "21:30" {
		t.Errorf("Time = %q, want 21:30", card.Time)
	}
	if card.Items != "Mojito x2, Pizza x1" {
		t.Errorf("Items = %q", card.Items)
	}
	if card.Status != "🔥 En préparation" {
		t.Errorf("Status = %q", card.Status)
	}
	if card.Paid != "❌ NON PAYÉ" {
		t.Errorf("Paid = %q", card.Paid)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPreparing, StatusReady, StatusDone} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "shipped", "Pending"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
