// Package pipeline derives filtered views and aggregate summaries from the
// record set. Everything here is pure: records in, values out.
package pipeline

import (
	"time"

	"outgo/internal/model"
)

// Filter selects records matching the given year and/or month. Either
// predicate may be nil; nil/nil is the identity. Relative order is
// preserved.
func Filter(records []model.Record, year *int, month *time.Month) []model.Record {
	if year == nil && month == nil {
		return records
	}
	var result []model.Record
	for _, r := range records {
		if year != nil && r.Date.Year() != *year {
			continue
		}
		if month != nil && r.Date.Month() != *month {
			continue
		}
		result = append(result, r)
	}
	return result
}

// GrandTotal sums all record amounts.
func GrandTotal(records []model.Record) model.Cents {
	var total model.Cents
	for _, r := range records {
		total += r.Amount
	}
	return total
}
