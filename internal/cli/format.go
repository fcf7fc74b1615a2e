// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"outgo/internal/model"
)

// FormatAmount renders cents as grouped decimal text, e.g. 123456 -> "1,234.56".
func FormatAmount(c model.Cents) string {
	whole := int64(c) / 100
	frac := int64(c) % 100
	return fmt.Sprintf("%s.%02d", FormatNumber(whole), frac)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatMonth renders a (year, month) bucket as "2024-03".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// FormatMonthName renders a (year, month) bucket as "Mar 2024".
func FormatMonthName(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
