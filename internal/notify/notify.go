// Package notify turns receipt texts into WhatsApp deep links and opens
// them through a pluggable Opener. Delivery is best-effort: whether the
// messaging app actually opened is neither detected nor reported.
package notify

import (
	"log"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Phone normalizes a number for wa.me: strip whitespace and a leading +.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimPrefix(b.String(), "+")
}

// Link builds the wa.me deep link for a pre-formatted message.
func Link(phone, text string) string {
	esc := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + Phone(phone) + "?text=" + esc
}

// Opener opens a deep link in some browsing context. Fire-and-forget.
type Opener interface {
	Open(url string)
}

// LogOpener just logs the link, for deployments with no display.
type LogOpener struct{}

func (LogOpener) Open(url string) { log.Printf("notify: open %s", url) }

// Scheduler staggers the client and owner links on independent timers so
// two messaging windows never open at once. Delays are configuration.
type Scheduler struct {
	Opener      Opener
	ClientDelay time.Duration
	OwnerDelay  time.Duration
}

// Send schedules both opens and returns immediately.
func (s *Scheduler) Send(clientURL, ownerURL string) {
	time.AfterFunc(s.ClientDelay, func() { s.Opener.Open(clientURL) })
	time.AfterFunc(s.OwnerDelay, func() { s.Opener.Open(ownerURL) })
}

// SendOne schedules a single client-side open.
func (s *Scheduler) SendOne(url string) {
	time.AfterFunc(s.ClientDelay, func() { s.Opener.Open(url) })
}
