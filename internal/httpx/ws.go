package httpx

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/orders"
	"github.com/bumblebee-lounge/lounge-api/internal/reservations"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ordersFeed streams full order snapshots to a dashboard. ?feed picks
// the filter: all (default), today, or pending.
func (h *Handler) ordersFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var mu sync.Mutex
	push := func(os []orders.Order) {
		mu.Lock()
		defer mu.Unlock()
		_ = conn.WriteJSON(os)
	}

	var unsub docstore.Unsubscribe
	switch r.URL.Query().Get("feed") {
	case "today":
		unsub, err = h.Orders.ListenToday(push)
	case "pending":
		unsub, err = h.Orders.ListenPending(push)
	default:
		unsub, err = h.Orders.ListenAll(push)
	}
	if err != nil {
		return
	}
	defer unsub()

	readUntilClosed(conn)
}

// reservationsFeed streams reservation snapshots. ?feed: all (default),
// today, or upcoming.
func (h *Handler) reservationsFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var mu sync.Mutex
	push := func(rs []reservations.Reservation) {
		mu.Lock()
		defer mu.Unlock()
		_ = conn.WriteJSON(rs)
	}

	var unsub docstore.Unsubscribe
	switch r.URL.Query().Get("feed") {
	case "today":
		unsub, err = h.Reservations.ListenToday(push)
	case "upcoming":
		unsub, err = h.Reservations.ListenUpcoming(push)
	default:
		unsub, err = h.Reservations.ListenAll(push)
	}
	if err != nil {
		return
	}
	defer unsub()

	readUntilClosed(conn)
}

// readUntilClosed blocks until the client goes away, so the deferred
// unsubscribe releases the live query exactly when the view is torn down.
func readUntilClosed(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
