package aggregate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NoValue is emitted for rates whose denominator is zero when the metric
// has no meaningful zero.
const NoValue = "-"

var hundred = decimal.NewFromInt(100)

// Rate returns affected/total as a percentage with one decimal ("40.0").
// When total is zero the metric specific zero value is returned instead.
func Rate(affected, total int, zero string) string {
	if total == 0 {
		return zero
	}
	return decimal.NewFromInt(int64(affected)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}

// Percent appends the percent sign to a Rate result.
func Percent(rate string) string {
	if rate == "" || rate == NoValue {
		return NoValue
	}
	return rate + "%"
}

// Average is total/count rounded to one decimal, or 0 when count is 0.
func Average(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(total)).
		Div(decimal.NewFromInt(int64(count))).
		Round(1).
		InexactFloat64()
}

// FormatDuration renders seconds as "1h 1m 1s". Leading zero units are
// dropped; zero renders "0s".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if h > 0 || m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// FormatFloat prints a one-decimal average without trailing noise.
func FormatFloat(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
