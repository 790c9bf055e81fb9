// Package receipt builds the WhatsApp text blocks for orders and
// reservations. Everything here is pure formatting; sending is the
// notifier's job.
package receipt

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bumblebee-lounge/lounge-api/internal/cart"
)

const divider = "─────────────────"

// Order is the view of an order the formatter needs.
type Order struct {
	OrderID    string
	ClientName string
	CreatedAt  time.Time
	Items      []cart.Line
	Total      int
	Paid       bool
}

// Reservation is the view of a reservation the formatter needs.
type Reservation struct {
	ReservationID string
	ClientName    string
	ClientPhone   string
	Date          string
	Time          string
	Guests        int
	Hookah        string
}

// NewOrderID returns a BB-#### display id, 4 random digits. Collisions
// are possible; the store-assigned uuid stays the real key.
func NewOrderID() string {
	return fmt.Sprintf("BB-%d", 1000+rand.Intn(9000))
}

// NewReservationID returns a RES-#### display id, same caveat.
func NewReservationID() string {
	return fmt.Sprintf("RES-%d", 1000+rand.Intn(9000))
}

// OrderText is the itemized client receipt.
func OrderText(o Order) string {
	at := o.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}

	var items strings.Builder
	total := 0
	for _, it := range o.Items {
		sub := it.Price * it.Qty
		total += sub
		fmt.Fprintf(&items, "• %s x%d     %d DA\n", it.Name, it.Qty, sub)
	}

	return fmt.Sprintf(`🐝 *BUMBLEBEE LOUNGE*
%[1]s
📋 Commande *%[2]s*
📅 %[3]s · %[4]s
👤 %[5]s
%[1]s
%[6]s%[1]s
💰 *TOTAL: %[7]d DA*
%[1]s
💵 PAIEMENT: %[8]s
   Cash uniquement · Sur place
%[1]s
Merci de votre visite 🙏
📍 M69W+792, Djelfa`,
		divider, o.OrderID, at.Format("02/01/2006"), at.Format("15:04"),
		o.ClientName, items.String(), total, PaidLabel(o.Paid))
}

// NewOrderText is the staff variant of the receipt.
func NewOrderText(o Order) string {
	return "📥 *NOUVELLE COMMANDE*\n\n" + OrderText(o)
}

// PaidText confirms a received payment to the client.
func PaidText(o Order) string {
	return fmt.Sprintf(`✅ *BUMBLEBEE LOUNGE — Paiement confirmé*

📋 Commande *%s*
👤 %s
💰 Total: *%d DA*
💵 Statut: *PAYÉ ✅*

Merci pour votre paiement ! 🙏
À bientôt chez Bumblebee 🐝`, o.OrderID, o.ClientName, o.Total)
}

// ReservationText is the client copy of a new reservation.
func ReservationText(r Reservation) string {
	return fmt.Sprintf(`🐝 *BUMBLEBEE LOUNGE — Réservation*
%[1]s
📋 Réservation *%[2]s*
👤 %[3]s
📞 %[4]s
📅 %[5]s · %[6]s
👥 %[7]d personne(s)
🪄 Chicha: %[8]s
%[1]s
⏳ En attente de confirmation
Notre équipe vous contactera bientôt.
%[1]s
📍 M69W+792, Djelfa
🐝 Bumblebee Lounge`,
		divider, r.ReservationID, r.ClientName, r.ClientPhone,
		r.Date, r.Time, r.Guests, hookah(r))
}

// NewReservationText is the staff variant.
func NewReservationText(r Reservation) string {
	return "📥 *NOUVELLE RÉSERVATION*\n\n" + ReservationText(r)
}

// ConfirmationText tells the client their reservation is confirmed.
func ConfirmationText(r Reservation) string {
	return fmt.Sprintf(`✅ *BUMBLEBEE LOUNGE — Réservation confirmée !*

📋 *%s*
👤 %s
📅 %s · %s
👥 %d personne(s)
🪄 Chicha: %s

Votre réservation est *confirmée* ✅
Nous vous attendons !

📍 M69W+792, Djelfa
🐝 Bumblebee Lounge`,
		r.ReservationID, r.ClientName, r.Date, r.Time, r.Guests, hookah(r))
}

// CancellationText tells the client their reservation was cancelled.
func CancellationText(r Reservation) string {
	return fmt.Sprintf(`❌ *BUMBLEBEE LOUNGE — Réservation annulée*

📋 *%s*
👤 %s
📅 %s · %s

Votre réservation a été annulée.
Pour plus d'infos, contactez-nous :
📞 +213 778 097 833

🐝 Bumblebee Lounge`,
		r.ReservationID, r.ClientName, r.Date, r.Time)
}

func PaidLabel(paid bool) string {
	if paid {
		return "✅ PAYÉ"
	}
	return "❌ NON PAYÉ"
}

func hookah(r Reservation) string {
	if r.Hookah == "" {
		return "—"
	}
	return r.Hookah
}
