package reservations

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusArrived   Status = "arrived"
)

var ErrBadStatus = errors.New("unknown reservation status")

// StatusLabel is the display pair for a status.
type StatusLabel struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

var labels = map[Status]StatusLabel{
	StatusPending:   {Text: "⏳ En attente", Color: "#c9a84c"},
	StatusConfirmed: {Text: "✅ Confirmée", Color: "#25d366"},
	StatusCancelled: {Text: "❌ Annulée", Color: "#e05252"},
	StatusArrived:   {Text: "🟢 Arrivé", Color: "#25d366"},
}

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label falls back to the pending label for unknown values.
func (s Status) Label() StatusLabel {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[StatusPending]
}
