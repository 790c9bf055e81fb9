package reservations

import "time"

const Collection = "reservations"

// Input is a reservation request as submitted by the client.
type Input struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Date   string `json:"date"` // ISO date, 2006-01-02
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Hookah string `json:"hookah"`
	Match  string `json:"match"`
}

// Reservation as served to dashboards. Independent of the cart/order
// flow; clients are free-text name/phone, not a customer entity.
type Reservation struct {
	ID            string    `json:"id"` // store-assigned
	ReservationID string    `json:"reservationId"`
	ClientName    string    `json:"clientName"`
	ClientPhone   string    `json:"clientPhone"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Guests        int       `json:"guests"`
	Hookah        string    `json:"hookah"`
	Match         string    `json:"match,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"` // store-assigned
}

// resDoc is the persisted shape; id and createdAt belong to the store.
type resDoc struct {
	ReservationID string `json:"reservationId"`
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Guests        int    `json:"guests"`
	Hookah        string `json:"hookah"`
	Match         string `json:"match,omitempty"`
	Status        Status `json:"status"`
}
