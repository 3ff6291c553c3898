package domain

import (
	"strings"
	"unicode"
)

// Cedula is a normalized national identity number: a nationality letter
// ("V" for citizens, "E" for residents) plus the numeric part with
// separators stripped.
type Cedula struct {
	Nationality string
	Number      string
}

// String renders the canonical form stored on accounts, e.g. "V12345678".
func (c Cedula) String() string {
	return c.Nationality + c.Number
}

// ParseCedula normalizes raw user input into a Cedula. Input may carry
// dots, dashes, whitespace and mixed case ("v-12.345.678"). A leading V or
// E selects the nationality; anything else defaults to V. An input with no
// digits is rejected.
func ParseCedula(raw string) (Cedula, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cedula{}, ErrMissingCedula
	}

	nationality := "V"
	switch {
	case strings.HasPrefix(strings.ToUpper(s), "V"):
		nationality = "V"
	case strings.HasPrefix(strings.ToUpper(s), "E"):
		nationality = "E"
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return Cedula{}, ErrInvalidCedula
	}

	return Cedula{Nationality: nationality, Number: b.String()}, nil
}
