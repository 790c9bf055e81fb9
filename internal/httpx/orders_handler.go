package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/orders"
	"github.com/bumblebee-lounge/lounge-api/internal/reservations"
)

// Handler wires the managers to the HTTP surface.
type Handler struct {
	KV           cart.KV
	Orders       *orders.Manager
	Reservations *reservations.Manager
}

func (h *Handler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))

		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{id}", h.updateCartQty)
		r.Delete("/cart/items/{id}", h.removeCartItem)
		r.Delete("/cart", h.clearCart)

		r.Post("/orders", h.placeOrder)
		r.Patch("/orders/{id}/status", h.updateOrderStatus)
		r.Patch("/orders/{id}/payment", h.updateOrderPayment)

		r.Post("/reservations", h.placeReservation)
		r.Patch("/reservations/{id}/status", h.updateReservationStatus)
	})

	// websocket feeds live past any request timeout
	r.Get("/ws/orders", h.ordersFeed)
	r.Get("/ws/reservations", h.reservationsFeed)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var info orders.ClientInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if info.Name == "" || info.Phone == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.Place(ctx, c, info)
	if errors.Is(err, orders.ErrEmptyCart) {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not place order")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status orders.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Orders.UpdateStatus(ctx, chi.URLParam(r, "id"), body.Status)
	switch {
	case errors.Is(err, orders.ErrBadStatus):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case err != nil:
		writeErr(w, http.StatusInternalServerError, "could not update status")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
	}
}

func (h *Handler) updateOrderPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Paid bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Orders.UpdatePaid(ctx, chi.URLParam(r, "id"), body.Paid)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case err != nil:
		writeErr(w, http.StatusInternalServerError, "could not update payment")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"paid": body.Paid})
	}
}

func (h *Handler) placeReservation(w http.ResponseWriter, r *http.Request) {
	var in reservations.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Place(ctx, in)
	var verr *reservations.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Fields})
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not place reservation")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status reservations.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Reservations.UpdateStatus(ctx, chi.URLParam(r, "id"), body.Status)
	switch {
	case errors.Is(err, reservations.ErrBadStatus):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case err != nil:
		writeErr(w, http.StatusInternalServerError, "could not update status")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
	}
}
