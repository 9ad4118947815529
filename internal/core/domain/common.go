package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for collect, receipt and summary dates.
const DateLayout = "2006-01-02"

// ErrNotANumber is returned by ParsePositiveAmount for non-numeric input.
var ErrNotANumber = errors.New("amount is not a number")

// ErrNotPositive is returned by ParsePositiveAmount for zero or negative input.
var ErrNotPositive = errors.New("amount must be greater than zero")

// ErrAmountTooLarge is returned by ParsePositiveAmount when the input has too
// many integer or fractional digits.
var ErrAmountTooLarge = errors.New("amount has too many digits")

// Cashier amounts are plain decimal text. Thousands separators must group
// exactly three digits.
const (
	maxAmountIntegerDigits  = 12
	maxAmountFractionDigits = 4
)

var amountPattern = regexp.MustCompile(`^([+-]?)(\d+|\d{1,3}(?:,\d{3})+)(?:\.(\d+))?$`)

// ParsePositiveAmount parses cashier input into a decimal amount.
// Surrounding whitespace is ignored. Exponents are rejected.
func ParsePositiveAmount(raw string) (decimal.Decimal, error) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return decimal.Zero, ErrNotANumber
	}
	sign, integer, fraction := m[1], strings.ReplaceAll(m[2], ",", ""), m[3]
	if len(integer) > maxAmountIntegerDigits || len(fraction) > maxAmountFractionDigits {
		return decimal.Zero, ErrAmountTooLarge
	}
	text := sign + integer
	if fraction != "" {
		text += "." + fraction
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNotPositive
	}
	return amount, nil
}

// FormatDate renders t in DateLayout. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a DateLayout string, tolerating a trailing time part
// such as "2025-03-01T00:00:00".
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, 'T'); i > 0 {
		raw = raw[:i]
	}
	return time.Parse(DateLayout, raw)
}
