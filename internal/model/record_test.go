package model

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food", CategoryFood, true},
		{"food", CategoryFood, true},
		{"  GROCERIES  ", CategoryGroceries, true},
		{"Other", CategoryOther, true},
		{"Shopping", "", false}, // not in the fixed set
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("ParseCategory(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		} else if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("ParseCategory(%q) err = %v, want ErrInvalidCategory", tc.in, err)
		}
	}
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("2024-01-05", "Food", "25.00", " lunch ")
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if r.Date.Format(DateFormat) != "2024-01-05" {
		t.Errorf("Date = %s", r.Date.Format(DateFormat))
	}
	if r.Category != CategoryFood {
		t.Errorf("Category = %q", r.Category)
	}
	if r.Amount != 2500 {
		t.Errorf("Amount = %d, want 2500", r.Amount)
	}
	if r.Note != "lunch" {
		t.Errorf("Note = %q, want trimmed", r.Note)
	}
}

func TestNewRecordRejectsInvalid(t *testing.T) {
	cases := []struct {
		name                         string
		date, category, amount, note string
		wantErr                      error
	}{
		{"bad date", "2024-13-40", "Food", "1.00", "", ErrInvalidDate},
		{"empty date", "", "Food", "1.00", "", ErrInvalidDate},
		{"bad category", "2024-01-05", "Nope", "1.00", "", ErrInvalidCategory},
		{"negative amount", "2024-01-05", "Food", "-5", "", ErrInvalidAmount},
		{"junk amount", "2024-01-05", "Food", "abc", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRecord(tc.date, tc.category, tc.amount, tc.note)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestTrendLineAt(t *testing.T) {
	tl := TrendLine{Slope: 10, Intercept: 10, OK: true}
	if got := tl.At(3); got != 40 {
		t.Fatalf("At(3) = %v, want 40", got)
	}
}
