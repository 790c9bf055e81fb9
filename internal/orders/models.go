package orders

import (
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
)

const Collection = "orders"

type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Order as served to dashboards. Items is an immutable snapshot of the
// cart at submission time; Total was computed once at placement.
type Order struct {
	ID          string      `json:"id"` // store-assigned
	OrderID     string      `json:"orderId"`
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	Items       []cart.Line `json:"items"`
	Total       int         `json:"total"`
	Paid        bool        `json:"paid"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"` // store-assigned
}

// orderDoc is the persisted shape; id and createdAt belong to the store.
type orderDoc struct {
	OrderID     string      `json:"orderId"`
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	Items       []cart.Line `json:"items"`
	Total       int         `json:"total"`
	Paid        bool        `json:"paid"`
	Status      Status      `json:"status"`
}
