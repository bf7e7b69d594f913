package notification

import (
	"strings"
	"unicode"
)

// PhoneNormalizer strips formatting and adds a country code to bare local
// numbers. It is locale specific (one country code, one local length) and is
// not an E.164 validator.
type PhoneNormalizer struct {
	CountryCode string
	LocalLength int
}

func (p PhoneNormalizer) Normalize(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}
		return -1
	}, raw)

	if p.CountryCode == "" || p.LocalLength <= 0 {
		return digits
	}
	if len(digits) == p.LocalLength && !strings.HasPrefix(digits, p.CountryCode) {
		return p.CountryCode + digits
	}
	return digits
}
