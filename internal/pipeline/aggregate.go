package pipeline

import (
	"sort"
	"time"

	"outgo/internal/model"
)

// AggregateDaily groups records by calendar date and sums amounts,
// returning the totals in chronological order. Dates with no spending are
// absent, not zero-filled; the trend fit indexes the observed days.
func AggregateDaily(records []model.Record) []model.DailyTotal {
	dayMap := make(map[string]model.Cents)
	for _, r := range records {
		dayMap[r.Date.Format(model.DateFormat)] += r.Amount
	}

	days := make([]model.DailyTotal, 0, len(dayMap))
	for key, total := range dayMap {
		d, _ := time.Parse(model.DateFormat, key)
		days = append(days, model.DailyTotal{Date: d, Total: total})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// FitTrend fits total ≈ intercept + slope·x by ordinary least squares over
// x = 0..n-1, the position of each day in the sorted daily sequence. With a
// single point the line is flat through it; with no points OK is false and
// the zero line is returned.
func FitTrend(days []model.DailyTotal) model.TrendLine {
	n := len(days)
	switch n {
	case 0:
		return model.TrendLine{}
	case 1:
		return model.TrendLine{Intercept: days[0].Total.Float()}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, d := range days {
		x := float64(i)
		y := d.Total.Float()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return model.TrendLine{Intercept: sumY / fn}
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	return model.TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / fn,
		OK:        true,
	}
}

// AggregateMonthly groups records by (year, month) and sums amounts,
// returning the totals in chronological order.
func AggregateMonthly(records []model.Record) []model.MonthlyTotal {
	type ym struct {
		year  int
		month time.Month
	}
	monthMap := make(map[ym]model.Cents)
	for _, r := range records {
		monthMap[ym{r.Date.Year(), r.Date.Month()}] += r.Amount
	}

	months := make([]model.MonthlyTotal, 0, len(monthMap))
	for key, total := range monthMap {
		months = append(months, model.MonthlyTotal{Year: key.year, Month: key.month, Total: total})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months
}

// AggregateCategories sums amounts per category, sorted by total descending
// (ties broken by name for stable chart order). Only categories with at
// least one record appear.
func AggregateCategories(records []model.Record) []model.CategoryTotal {
	catMap := make(map[model.Category]model.Cents)
	for _, r := range records {
		catMap[r.Category] += r.Amount
	}

	cats := make([]model.CategoryTotal, 0, len(catMap))
	for c, total := range catMap {
		cats = append(cats, model.CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Total != cats[j].Total {
			return cats[i].Total > cats[j].Total
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// TopCategories keeps the n largest category totals and rolls the remainder
// into a synthetic "Other" bucket, mirroring how the distribution chart
// groups small slices.
func TopCategories(cats []model.CategoryTotal, n int) []model.CategoryTotal {
	if len(cats) <= n {
		return cats
	}
	top := make([]model.CategoryTotal, n, n+1)
	copy(top, cats[:n])
	var rest model.Cents
	for _, c := range cats[n:] {
		rest += c.Total
	}
	return append(top, model.CategoryTotal{Category: model.CategoryOther, Total: rest})
}
