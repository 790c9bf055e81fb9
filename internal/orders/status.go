package orders

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDone      Status = "done"
)

var ErrBadStatus = errors.New("unknown order status")

var labels = map[Status]string{
	StatusPending:   "⏳ En attente",
	StatusPreparing: "🔥 En préparation",
	StatusReady:     "✅ Prêt",
	StatusDone:      "✔️ Terminé",
}

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}
