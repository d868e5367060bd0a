// Package report filters sales by period and aggregates revenue by category.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

type Period string

const (
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
)

var ErrInvalidPeriod = errors.New("period must be day, week or month")

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Day, Week, Month:
		return p, nil
	case "":
		return Day, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// StartOf returns local midnight of the first day of the period containing
// ref, in ref's location. Weeks start on Monday.
func StartOf(p Period, ref time.Time) time.Time {
	y, m, d := ref.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())

	switch p {
	case Week:
		offset := 1 - int(midnight.Weekday())
		if midnight.Weekday() == time.Sunday {
			offset = -6
		}

		return midnight.AddDate(0, 0, offset)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	default:
		return midnight
	}
}

// FilterSales keeps sales dated at or after the start of the period. There is
// no upper bound.
func FilterSales(sales []pos.Sale, p Period, ref time.Time) []pos.Sale {
	start := StartOf(p, ref)

	out := make([]pos.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.Date.Before(start) {
			out = append(out, s)
		}
	}

	return out
}

// NoCategory names the top category when nothing was sold.
const NoCategory = "N/A"

type CategoryRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type Summary struct {
	Count        int               `json:"count"`
	TotalRevenue decimal.Decimal   `json:"totalRevenue"`
	Categories   []CategoryRevenue `json:"categories"`
	TopCategory  CategoryRevenue   `json:"topCategory"`
}

// Aggregate sums sale totals and buckets line revenue under each product's
// current category. Lines whose product no longer exists count towards the
// sale total but not towards any category. Categories keep the order in which
// they were first seen, which also breaks ties for the top category.
func Aggregate(sales []pos.Sale, r *pos.Resolver) Summary {
	sum := Summary{
		Count:        len(sales),
		TotalRevenue: decimal.Zero,
		Categories:   []CategoryRevenue{},
		TopCategory:  CategoryRevenue{Name: NoCategory, Revenue: decimal.Zero},
	}

	index := map[string]int{}

	for _, s := range sales {
		sum.TotalRevenue = sum.TotalRevenue.Add(s.Total)

		for _, it := range s.Items {
			cat, ok := r.Category(it.ProductID)
			if !ok {
				continue
			}

			i, seen := index[cat]
			if !seen {
				i = len(sum.Categories)
				index[cat] = i
				sum.Categories = append(sum.Categories, CategoryRevenue{Name: cat, Revenue: decimal.Zero})
			}

			sum.Categories[i].Revenue = sum.Categories[i].Revenue.Add(it.LineTotal())
		}
	}

	for i, c := range sum.Categories {
		if i == 0 || c.Revenue.GreaterThan(sum.TopCategory.Revenue) {
			sum.TopCategory = c
		}
	}

	return sum
}
