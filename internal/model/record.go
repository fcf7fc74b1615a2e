// Package model defines the expense record and the derived aggregate types.
package model

import (
	"errors"
	"strings"
	"time"
)

// DateFormat is the wire format for dates in the backing file and all UIs.
const DateFormat = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("unknown category")
)

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryRent          Category = "Rent"
	CategoryTuition       Category = "Tuition"
	CategoryUtilities     Category = "Utilities"
	CategoryGroceries     Category = "Groceries"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryInsurance     Category = "Insurance"
	CategoryInternet      Category = "Internet"
	CategorySubscriptions Category = "Subscriptions"
	CategoryGifts         Category = "Gifts"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryRent,
	CategoryTuition,
	CategoryUtilities,
	CategoryGroceries,
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHealth,
	CategoryInsurance,
	CategoryInternet,
	CategorySubscriptions,
	CategoryGifts,
	CategoryTravel,
	CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Record is a single expense entry. Records have no surrogate key; they are
// addressed by their position in the store.
type Record struct {
	Date     time.Time
	Category Category
	Amount   Cents
	Note     string
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// NewRecord validates raw form/file input and builds a Record.
func NewRecord(date, category, amount, note string) (Record, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Record{}, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return Record{}, err
	}
	amt, err := ParseCents(amount)
	if err != nil {
		return Record{}, err
	}
	return Record{Date: d, Category: cat, Amount: amt, Note: strings.TrimSpace(note)}, nil
}

// DailyTotal is the summed amount for one calendar date.
type DailyTotal struct {
	Date  time.Time
	Total Cents
}

// MonthlyTotal is the summed amount for one (year, month) bucket.
type MonthlyTotal struct {
	Year  int
	Month time.Month
	Total Cents
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category Category
	Total    Cents
}

// TrendLine is the least-squares fit total ≈ Intercept + Slope·x over the
// daily-total sequence, where x is the zero-based index of each date in
// chronological order. Days with no spending are absent from the sequence,
// so the x axis counts observed days rather than elapsed time.
type TrendLine struct {
	Slope     float64
	Intercept float64
	OK        bool // false when fewer than two points were fitted
}

// At returns the fitted value at index x.
func (t TrendLine) At(x int) float64 {
	return t.Intercept + t.Slope*float64(x)
}
