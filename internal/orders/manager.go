package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/notify"
	"github.com/bumblebee-lounge/lounge-api/internal/receipt"
)

var ErrEmptyCart = errors.New("cart is empty")

// Manager owns the order lifecycle: placement from a cart snapshot,
// staff status/payment mutations, and the dashboard live feeds.
type Manager struct {
	Store      docstore.Store
	Notify     *notify.Scheduler
	OwnerPhone string
}

// Place converts the cart into a persisted order. Preconditions run
// before any side effect: an empty cart aborts with ErrEmptyCart and
// leaves everything untouched. On success the cart is cleared and the
// client and owner receipts are scheduled, staggered.
func (m *Manager) Place(ctx context.Context, c *cart.Store, info ClientInfo) (Order, error) {
	items := c.Items(ctx)
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	o := Order{
		OrderID:     receipt.NewOrderID(),
		ClientName:  info.Name,
		ClientPhone: info.Phone,
		Items:       items,
		Total:       c.Total(ctx),
		Paid:        false,
		Status:      StatusPending,
	}

	id, createdAt, err := m.Store.Create(ctx, Collection, orderDoc{
		OrderID:     o.OrderID,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		Items:       o.Items,
		Total:       o.Total,
		Paid:        o.Paid,
		Status:      o.Status,
	})
	if err != nil {
		return Order{}, fmt.Errorf("place order: %w", err)
	}
	o.ID, o.CreatedAt = id, createdAt

	// The order is placed; a failed cart clear must not undo it.
	if err := c.Clear(ctx); err != nil {
		log.Printf("orders: clear cart after %s: %v", o.OrderID, err)
	}

	v := m.view(o)
	m.Notify.Send(
		notify.Link(o.ClientPhone, receipt.OrderText(v)),
		notify.Link(m.OwnerPhone, receipt.NewOrderText(v)),
	)
	return o, nil
}

// UpdateStatus patches the status field. Values outside the closed enum
// are rejected before the store is touched.
func (m *Manager) UpdateStatus(ctx context.Context, id string, s Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrBadStatus, s)
	}
	return m.Store.Update(ctx, Collection, id, map[string]any{"status": string(s)})
}

// UpdatePaid patches the payment flag.
func (m *Manager) UpdatePaid(ctx context.Context, id string, paid bool) error {
	return m.Store.Update(ctx, Collection, id, map[string]any{"paid": paid})
}

// SendPaidConfirmation messages the client that their payment was
// received. Fire-and-forget like every notification.
func (m *Manager) SendPaidConfirmation(o Order) {
	m.Notify.SendOne(notify.Link(o.ClientPhone, receipt.PaidText(m.view(o))))
}

// ListenAll feeds every order, newest first.
func (m *Manager) ListenAll(fn func([]Order)) (docstore.Unsubscribe, error) {
	return m.listen(docstore.Query{OrderBy: docstore.FieldCreatedAt, Desc: true}, fn)
}

// ListenToday feeds orders created since local midnight, newest first.
func (m *Manager) ListenToday(fn func([]Order)) (docstore.Unsubscribe, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return m.listen(docstore.Query{
		Filters: []docstore.Filter{{Field: docstore.FieldCreatedAt, Op: docstore.OpGte, Value: midnight}},
		OrderBy: docstore.FieldCreatedAt,
		Desc:    true,
	}, fn)
}

// ListenPending feeds the kitchen queue: pending and preparing orders,
// newest first.
func (m *Manager) ListenPending(fn func([]Order)) (docstore.Unsubscribe, error) {
	return m.listen(docstore.Query{
		Filters: []docstore.Filter{{Field: "status", Op: docstore.OpIn,
			Value: []string{string(StatusPending), string(StatusPreparing)}}},
		OrderBy: docstore.FieldCreatedAt,
		Desc:    true,
	}, fn)
}

func (m *Manager) listen(q docstore.Query, fn func([]Order)) (docstore.Unsubscribe, error) {
	return m.Store.Subscribe(Collection, q, func(docs []docstore.Document) {
		fn(decodeAll(docs))
	})
}

func decodeAll(docs []docstore.Document) []Order {
	out := make([]Order, 0, len(docs))
	for _, d := range docs {
		var o Order
		if err := json.Unmarshal(d.Data, &o); err != nil {
			log.Printf("orders: decode %s: %v", d.ID, err)
			continue
		}
		o.ID, o.CreatedAt = d.ID, d.CreatedAt
		out = append(out, o)
	}
	return out
}

func (m *Manager) view(o Order) receipt.Order {
	return receipt.Order{
		OrderID:    o.OrderID,
		ClientName: o.ClientName,
		CreatedAt:  o.CreatedAt,
		Items:      o.Items,
		Total:      o.Total,
		Paid:       o.Paid,
	}
}
