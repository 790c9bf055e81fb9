package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
	"github.com/bumblebee-lounge/lounge-api/internal/redisx"
)

// CartState mirrors what the navbar badge and cart page need: the lines
// plus the derived total and count. Every mutation returns the fresh
// state, which is the badge-refresh contract over HTTP.
type CartState struct {
	Items []cart.Line `json:"items"`
	Total int         `json:"total"`
	Count int         `json:"count"`
}

// sessionCart builds the caller's cart store, or fails the request when
// no session header is present.
func (h *Handler) sessionCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	session := r.Header.Get("X-Session-Id")
	if session == "" {
		writeErr(w, http.StatusBadRequest, "missing X-Session-Id")
		return nil, false
	}
	return cart.New(h.KV, fmt.Sprintf(redisx.KeyCart, session), nil), true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	h.writeCart(w, r, c)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var line cart.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if line.ID == "" {
		writeErr(w, http.StatusBadRequest, "missing id")
		return
	}
	if err := c.Add(r.Context(), line); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeCart(w, r, c)
}

func (h *Handler) updateCartQty(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := c.UpdateQty(r.Context(), chi.URLParam(r, "id"), body.Qty); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeCart(w, r, c)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	if err := c.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeCart(w, r, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.sessionCart(w, r)
	if !ok {
		return
	}
	if err := c.Clear(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeCart(w, r, c)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, c *cart.Store) {
	ctx := r.Context()
	items := c.Items(ctx)
	if items == nil {
		items = []cart.Line{}
	}
	writeJSON(w, http.StatusOK, CartState{
		Items: items,
		Total: c.Total(ctx),
		Count: c.Count(ctx),
	})
}
