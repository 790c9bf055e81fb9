package reservations

import (
	"strings"
	"time"
	"unicode"
)

// Result is the field-level validation outcome. Validation failures are
// data, never errors; the UI surfaces them inline for correction.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Validate checks a reservation request: name at least 2 chars trimmed,
// phone at least 9 chars with whitespace removed, date/time/guests
// present, and the date not before today (same-day allowed, time of day
// ignored).
func Validate(in Input) Result {
	errs := map[string]string{}

	if len(strings.TrimSpace(in.Name)) < 2 {
		errs["name"] = "Nom invalide"
	}
	if len(stripSpace(in.Phone)) < 9 {
		errs["phone"] = "Numéro invalide"
	}
	if in.Date == "" {
		errs["date"] = "Date requise"
	}
	if in.Time == "" {
		errs["time"] = "Heure requise"
	}
	if in.Guests <= 0 {
		errs["guests"] = "Nombre de personnes requis"
	}

	if in.Date != "" {
		selected, err := time.ParseInLocation("2006-01-02", in.Date, time.Local)
		if err != nil {
			errs["date"] = "Date invalide"
		} else {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if selected.Before(today) {
				errs["date"] = "La date ne peut pas être dans le passé"
			}
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidationError carries the field map when Place refuses invalid input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid reservation" }

func stripSpace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
