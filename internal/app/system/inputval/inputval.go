// Package inputval provides the field-format predicates and parsers used by
// the mutation pipeline's per-entity validators.
//
// Everything here is a pure function of its input: no store access, no
// normalization side effects. Monetary values parse through
// shopspring/decimal so amounts are never represented as binary floats.
package inputval

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	emailRe          = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe          = regexp.MustCompile(`^\+?\d{7,15}$`)
	lettersSpacesRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	digitsRe         = regexp.MustCompile(`^\d+$`)
	currencyRe       = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// IsValidEmail checks the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// IsValidPhone checks an optional leading + followed by 7-15 digits.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// IsLettersAndSpaces reports whether s is non-empty and contains only
// letters and whitespace. Used for Country and City.
func IsLettersAndSpaces(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && lettersSpacesRe.MatchString(s)
}

// IsAllDigits reports whether s consists solely of digits.
// A street named "12345" is rejected by the User validator with this.
func IsAllDigits(s string) bool {
	return digitsRe.MatchString(strings.TrimSpace(s))
}

// IsValidCurrency checks a 3-letter currency code.
func IsValidCurrency(code string) bool {
	return currencyRe.MatchString(code)
}

// IsValidCardNumber strips dashes and checks for 12-19 digits.
func IsValidCardNumber(number string) bool {
	digits := strings.ReplaceAll(strings.TrimSpace(number), "-", "")
	return digitsRe.MatchString(digits) && len(digits) >= 12 && len(digits) <= 19
}

// IsValidCVV checks a 3- or 4-digit CVV.
func IsValidCVV(cvv string) bool {
	return digitsRe.MatchString(cvv) && len(cvv) >= 3 && len(cvv) <= 4
}

// ParseMoney parses an exact decimal amount. Parse failure is an error for
// the validator to report, never a panic.
func ParseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// ParseDate parses a YYYY-MM-DD date, discarding an optional time suffix
// (anything from the first 'T' on). It returns the parsed day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return time.Parse("2006-01-02", s)
}

// timestampLayouts are accepted ISO-8601 shapes, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp (a trailing "Z" or UTC offset
// is accepted; sub-second precision is retained by the parse but discarded
// by normalization downstream).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
