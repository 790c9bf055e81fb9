package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
	"github.com/bumblebee-lounge/lounge-api/internal/docstore"
	"github.com/bumblebee-lounge/lounge-api/internal/notify"
	"github.com/bumblebee-lounge/lounge-api/internal/orders"
	"github.com/bumblebee-lounge/lounge-api/internal/reservations"
)

func newTestServer(t *testing.T) (*httptest.Server, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	sched := &notify.Scheduler{
		Opener:      notify.LogOpener{},
		ClientDelay: time.Millisecond,
		OwnerDelay:  time.Millisecond,
	}
	h := &Handler{
		KV:           cart.NewMemoryKV(),
		Orders:       &orders.Manager{Store: store, Notify: sched, OwnerPhone: "213778097833"},
		Reservations: &reservations.Manager{Store: store, Notify: sched, OwnerPhone: "213778097833"},
	}
	r := NewRouter()
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Session-Id", "sess-1")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf strings.Builder
	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err == nil {
		buf.Write(raw)
	}
	return resp, []byte(buf.String())
}

func decodeCart(t *testing.T, body []byte) CartState {
	t.Helper()
	var st CartState
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode cart state: %v (%s)", err, body)
	}
	return st
}

func TestCartRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/cart", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /cart = %d", resp.StatusCode)
	}
	if st := decodeCart(t, body); st.Count != 0 || st.Items == nil {
		t.Errorf("empty cart state = %+v, want zero count and non-nil items", st)
	}

	resp, body = do(t, srv, http.MethodPost, "/cart/items",
		`{"id":"moj","name":"Mojito","price":600,"qty":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /cart/items = %d", resp.StatusCode)
	}
	if st := decodeCart(t, body); st.Count != 2 || st.Total != 1200 {
		t.Errorf("cart state = %+v, want count 2 total 1200", st)
	}

	resp, body = do(t, srv, http.MethodPatch, "/cart/items/moj", `{"qty":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH qty = %d", resp.StatusCode)
	}
	if st := decodeCart(t, body); st.Count != 5 || st.Total != 3000 {
		t.Errorf("cart state = %+v, want count 5 total 3000", st)
	}

	resp, body = do(t, srv, http.MethodDelete, "/cart", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE /cart = %d", resp.StatusCode)
	}
	if st := decodeCart(t, body); st.Count != 0 {
		t.Errorf("cart state after clear = %+v", st)
	}
}

func TestCartRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/cart", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("no session = %d, want 400", resp.StatusCode)
	}
}

func TestPlaceOrderRoute(t *testing.T) {
	srv, store := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/orders", `{"name":"Yacine","phone":"0555123456"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("empty cart order = %d, want 409", resp.StatusCode)
	}

	if resp, _ := do(t, srv, http.MethodPost, "/cart/items",
		`{"id":"moj","name":"Mojito","price":600,"qty":2}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("seed cart = %d", resp.StatusCode)
	}

	resp, body := do(t, srv, http.MethodPost, "/orders", `{"name":"Yacine","phone":"0555123456"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place order = %d (%s)", resp.StatusCode, body)
	}
	var o orders.Order
	if err := json.Unmarshal(body, &o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if o.Total != 1200 || o.Status != orders.StatusPending {
		t.Errorf("order = %+v", o)
	}
	if n := store.Len(orders.Collection); n != 1 {
		t.Errorf("store has %d orders, want 1", n)
	}

	// cart drains with the placed order
	resp, body = do(t, srv, http.MethodGet, "/cart", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /cart = %d", resp.StatusCode)
	}
	if st := decodeCart(t, body); st.Count != 0 {
		t.Errorf("cart after order = %+v, want empty", st)
	}

	resp, _ = do(t, srv, http.MethodPatch, "/orders/"+o.ID+"/status", `{"status":"preparing"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("update status = %d", resp.StatusCode)
	}
	resp, _ = do(t, srv, http.MethodPatch, "/orders/"+o.ID+"/status", `{"status":"shipped"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("bad status = %d, want 422", resp.StatusCode)
	}
	resp, _ = do(t, srv, http.MethodPatch, "/orders/missing/status", `{"status":"done"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing order = %d, want 404", resp.StatusCode)
	}
	resp, _ = do(t, srv, http.MethodPatch, "/orders/"+o.ID+"/payment", `{"paid":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("update payment = %d", resp.StatusCode)
	}
}

func TestPlaceReservationRoute(t *testing.T) {
	srv, store := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/reservations", `{"name":"x","phone":"12"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid reservation = %d, want 422", resp.StatusCode)
	}
	var fail struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &fail); err != nil {
		t.Fatalf("decode validation body: %v", err)
	}
	if fail.Errors["name"] == "" || fail.Errors["date"] == "" {
		t.Errorf("validation errors = %+v", fail.Errors)
	}

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp, body = do(t, srv, http.MethodPost, "/reservations",
		`{"name":"Amine","phone":"0555123456","date":"`+date+`","time":"21:00","guests":4}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place reservation = %d (%s)", resp.StatusCode, body)
	}
	var res reservations.Reservation
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode reservation: %v", err)
	}
	if res.Status != reservations.StatusPending {
		t.Errorf("status = %q, want pending", res.Status)
	}
	if n := store.Len(reservations.Collection); n != 1 {
		t.Errorf("store has %d reservations, want 1", n)
	}

	resp, _ = do(t, srv, http.MethodPatch, "/reservations/"+res.ID+"/status", `{"status":"confirmed"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("confirm = %d", resp.StatusCode)
	}
	resp, _ = do(t, srv, http.MethodPatch, "/reservations/"+res.ID+"/status", `{"status":"waitlisted"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("bad status = %d, want 422", resp.StatusCode)
	}
}
