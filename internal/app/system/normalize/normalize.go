// Package normalize canonicalizes field values before they are built into
// documents: trimmed names, lowercased emails and statuses, markup-stripped
// free text, bank-rounded money, and fixed date/timestamp layouts.
package normalize

import (
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// DateLayout is the canonical persisted date form.
const DateLayout = "2006-01-02"

// TimestampLayout is the canonical persisted timestamp form. Sub-second
// precision is always discarded.
const TimestampLayout = "2006-01-02T15:04:05"

// strict strips all markup from free-text fields. Field values end up
// inside store queries and rendered reports, so tags never get stored.
var strict = bluemonday.StrictPolicy()

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or place name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status lowercases and trims a status or enum value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Currency uppercases and trims a 3-letter currency code.
func Currency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Text trims free text and strips any markup from it.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// CardNumber removes dashes and whitespace from a card number.
func CardNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}

// Money renders an exact decimal with exactly two decimal places, rounding
// half to even. Normalizing an already-normalized amount is a no-op.
func Money(d decimal.Decimal) string {
	return d.RoundBank(2).StringFixed(2)
}

// Date renders a time in the canonical date layout.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Timestamp renders a time in the canonical timestamp layout.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
