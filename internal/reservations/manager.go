package reservations

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/notify"
	"github.com/bumblebee-lounge/lounge-api/internal/receipt"
)

// Manager owns the reservation lifecycle. Unlike orders, reservations
// are not cart-backed; there is no emptiness precondition.
type Manager struct {
	Store      docstore.Store
	Notify     *notify.Scheduler
	OwnerPhone string
}

// Place validates and persists a reservation in one operation, then
// schedules the staggered client and owner messages. Invalid input
// returns a *ValidationError and nothing is persisted.
func (m *Manager) Place(ctx context.Context, in Input) (Reservation, error) {
	if res := Validate(in); !res.Valid {
		return Reservation{}, &ValidationError{Fields: res.Errors}
	}

	r := Reservation{
		ReservationID: receipt.NewReservationID(),
		ClientName:    in.Name,
		ClientPhone:   in.Phone,
		Date:          in.Date,
		Time:          in.Time,
		Guests:        in.Guests,
		Hookah:        in.Hookah,
		Match:         in.Match,
		Status:        StatusPending,
	}
	if r.Hookah == "" {
		r.Hookah = "—"
	}

	id, createdAt, err := m.Store.Create(ctx, Collection, resDoc{
		ReservationID: r.ReservationID,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		Date:          r.Date,
		Time:          r.Time,
		Guests:        r.Guests,
		Hookah:        r.Hookah,
		Match:         r.Match,
		Status:        r.Status,
	})
	if err != nil {
		return Reservation{}, fmt.Errorf("place reservation: %w", err)
	}
	r.ID, r.CreatedAt = id, createdAt

	v := m.view(r)
	m.Notify.Send(
		notify.Link(r.ClientPhone, receipt.ReservationText(v)),
		notify.Link(m.OwnerPhone, receipt.NewReservationText(v)),
	)
	return r, nil
}

// UpdateStatus patches the status field; values outside the closed enum
// are rejected before the store is touched.
func (m *Manager) UpdateStatus(ctx context.Context, id string, s Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrBadStatus, s)
	}
	return m.Store.Update(ctx, Collection, id, map[string]any{"status": string(s)})
}

// SendConfirmation messages the client that their reservation is
// confirmed. Staff action, fire-and-forget.
func (m *Manager) SendConfirmation(r Reservation) {
	m.Notify.SendOne(notify.Link(r.ClientPhone, receipt.ConfirmationText(m.view(r))))
}

// SendCancellation messages the client that their reservation was
// cancelled.
func (m *Manager) SendCancellation(r Reservation) {
	m.Notify.SendOne(notify.Link(r.ClientPhone, receipt.CancellationText(m.view(r))))
}

// ListenAll feeds every reservation, newest first.
func (m *Manager) ListenAll(fn func([]Reservation)) (docstore.Unsubscribe, error) {
	return m.listen(docstore.Query{OrderBy: docstore.FieldCreatedAt, Desc: true}, fn)
}

// ListenToday feeds reservations whose date is today, newest first.
func (m *Manager) ListenToday(fn func([]Reservation)) (docstore.Unsubscribe, error) {
	today := time.Now().Format("2006-01-02")
	return m.listen(docstore.Query{
		Filters: []docstore.Filter{{Field: "date", Op: docstore.OpEq, Value: today}},
		OrderBy: docstore.FieldCreatedAt,
		Desc:    true,
	}, fn)
}

// ListenUpcoming feeds still-active reservations from today onward,
// soonest first.
func (m *Manager) ListenUpcoming(fn func([]Reservation)) (docstore.Unsubscribe, error) {
	today := time.Now().Format("2006-01-02")
	return m.listen(docstore.Query{
		Filters: []docstore.Filter{
			{Field: "date", Op: docstore.OpGte, Value: today},
			{Field: "status", Op: docstore.OpIn,
				Value: []string{string(StatusPending), string(StatusConfirmed)}},
		},
		OrderBy: "date",
	}, fn)
}

func (m *Manager) listen(q docstore.Query, fn func([]Reservation)) (docstore.Unsubscribe, error) {
	return m.Store.Subscribe(Collection, q, func(docs []docstore.Document) {
		fn(decodeAll(docs))
	})
}

func decodeAll(docs []docstore.Document) []Reservation {
	out := make([]Reservation, 0, len(docs))
	for _, d := range docs {
		var r Reservation
		if err := json.Unmarshal(d.Data, &r); err != nil {
			log.Printf("reservations: decode %s: %v", d.ID, err)
			continue
		}
		r.ID, r.CreatedAt = d.ID, d.CreatedAt
		out = append(out, r)
	}
	return out
}

func (m *Manager) view(r Reservation) receipt.Reservation {
	return receipt.Reservation{
		ReservationID: r.ReservationID,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		Date:          r.Date,
		Time:          r.Time,
		Guests:        r.Guests,
		Hookah:        r.Hookah,
	}
}
