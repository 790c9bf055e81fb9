package reservations

import (
	"testing"
	"time"
)

func futureDate() string { return time.Now().AddDate(0, 0, 7).Format("2006-01-02") }

func validInput() Input {
	return Input{
		Name:   "Amine",
		Phone:  "0555123456",
		Date:   futureDate(),
		Time:   "21:00",
		Guests: 4,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
		msg    string
	}{
		{"short name", func(in *Input) { in.Name = " a " }, "name", "Nom invalide"},
		{"short phone", func(in *Input) { in.Phone = "0555 12" }, "phone", "Numéro invalide"},
		{"missing date", func(in *Input) { in.Date = "" }, "date", "Date requise"},
		{"missing time", func(in *Input) { in.Time = "" }, "time", "Heure requise"},
		{"zero guests", func(in *Input) { in.Guests = 0 }, "guests", "Nombre de personnes requis"},
		{"negative guests", func(in *Input) { in.Guests = -1 }, "guests", "Nombre de personnes requis"},
		{"unparsable date", func(in *Input) { in.Date = "31/12/2026" }, "date", "Date invalide"},
		{"past date", func(in *Input) {
			in.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		}, "date", "La date ne peut pas être dans le passé"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validInput()
			c.mutate(&in)
			res := Validate(in)
			if res.Valid {
				t.Fatal("input reported valid")
			}
			if got := res.Errors[c.field]; got != c.msg {
				t.Errorf("Errors[%q] = %q, want %q", c.field, got, c.msg)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	res := Validate(validInput())
	if !res.Valid || len(res.Errors) != 0 {
		t.Fatalf("valid input rejected: %+v", res.Errors)
	}
}

func TestValidateSameDayAllowed(t *testing.T) {
	in := validInput()
	in.Date = time.Now().Format("2006-01-02")
	if res := Validate(in); !res.Valid {
		t.Fatalf("same-day reservation rejected: %+v", res.Errors)
	}
}

func TestValidatePhoneIgnoresSpaces(t *testing.T) {
	in := validInput()
	in.Phone = "05 55 12 34 56"
	if res := Validate(in); !res.Valid {
		t.Fatalf("spaced phone rejected: %+v", res.Errors)
	}
}
