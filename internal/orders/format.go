package orders

import (
	"fmt"
	"strings"

	"github.com/bumblebee-lounge/lounge-api/internal/receipt"
)

// Card holds the display-only fields of an order. Pure derivation,
// nothing here is persisted.
type Card struct {
	Time   string `json:"time"`
	Items  string `json:"items"`
	Status string `json:"status"`
	Paid   string `json:"paid"`
}

// FormatOrderCard derives the dashboard card for one order: HH:MM time,
// comma-joined item summary, status label, payment marker.
func FormatOrderCard(o Order) Card {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Qty))
	}
	return Card{
		Time:   o.CreatedAt.Format("15:04"),
		Items:  strings.Join(parts, ", "),
		Status: o.Status.Label(),
		Paid:   receipt.PaidLabel(o.Paid),
	}
}
