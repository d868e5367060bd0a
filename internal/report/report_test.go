package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/report"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func saleAt(id string, at time.Time) pos.Sale {
	return pos.Sale{ID: id, Date: at, Total: d("1")}
}

func ids(sales []pos.Sale) []string {
	out := make([]string, 0, len(sales))
	for _, s := range sales {
		out = append(out, s.ID)
	}

	return out
}

func TestParsePeriod(t *testing.T) {
	for _, in := range []string{"day", "week", "month"} {
		p, err := report.ParsePeriod(in)
		require.NoError(t, err)
		assert.Equal(t, report.Period(in), p)
	}

	p, err := report.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, report.Day, p)

	_, err = report.ParsePeriod("year")
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}

func TestStartOf(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)

	tests := []struct {
		name   string
		period report.Period
		ref    time.Time
		want   time.Time
	}{
		{
			name:   "Day",
			period: report.Day,
			ref:    time.Date(2025, 3, 12, 15, 4, 5, 0, loc),
			want:   time.Date(2025, 3, 12, 0, 0, 0, 0, loc),
		},
		{
			name:   "WeekFromWednesday",
			period: report.Week,
			ref:    time.Date(2025, 3, 12, 15, 0, 0, 0, loc),
			want:   time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:   "WeekFromMonday",
			period: report.Week,
			ref:    time.Date(2025, 3, 10, 0, 0, 1, 0, loc),
			want:   time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:   "WeekFromSunday",
			period: report.Week,
			ref:    time.Date(2025, 3, 16, 23, 59, 0, 0, loc),
			want:   time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:   "WeekAcrossMonth",
			period: report.Week,
			ref:    time.Date(2025, 3, 2, 9, 0, 0, 0, loc),
			want:   time.Date(2025, 2, 24, 0, 0, 0, 0, loc),
		},
		{
			name:   "Month",
			period: report.Month,
			ref:    time.Date(2025, 3, 31, 22, 0, 0, 0, loc),
			want:   time.Date(2025, 3, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(report.StartOf(tt.period, tt.ref)), "got %s", report.StartOf(tt.period, tt.ref))
		})
	}
}

func TestFilterSales(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local)

	sales := []pos.Sale{
		saleAt("25h-ago", now.Add(-25*time.Hour)),
		saleAt("1h-ago", now.Add(-time.Hour)),
		saleAt("midnight", time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)),
		saleAt("monday", time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)),
		saleAt("last-month", time.Date(2025, 2, 28, 8, 0, 0, 0, time.Local)),
		saleAt("future", now.Add(48*time.Hour)),
	}

	assert.Equal(t, []string{"1h-ago", "midnight", "future"}, ids(report.FilterSales(sales, report.Day, now)))
	assert.Equal(t, []string{"25h-ago", "1h-ago", "midnight", "monday", "future"}, ids(report.FilterSales(sales, report.Week, now)))
	assert.Len(t, report.FilterSales(sales, report.Month, now), 5)
	assert.Empty(t, report.FilterSales(nil, report.Day, now))
}

func resolverFor(products ...pos.Product) *pos.Resolver {
	return pos.NewResolver(&pos.State{Products: products})
}

func TestAggregate(t *testing.T) {
	milk := pos.Product{ID: "p1", Name: "Milk", Category: "Dairy"}
	bread := pos.Product{ID: "p2", Name: "Bread", Category: "Bakery"}
	loose := pos.Product{ID: "p3", Name: "Loose"}

	tests := []struct {
		name      string
		sales     []pos.Sale
		products  []pos.Product
		wantCount int
		wantTotal string
		wantTop   report.CategoryRevenue
		wantCats  []string
	}{
		{
			name: "TopCategory",
			sales: []pos.Sale{
				{Items: []pos.SaleItem{{ProductID: "p1", Quantity: d("1"), Price: d("10")}}, Total: d("10")},
				{Items: []pos.SaleItem{{ProductID: "p2", Quantity: d("1"), Price: d("5")}}, Total: d("5")},
			},
			products:  []pos.Product{milk, bread},
			wantCount: 2,
			wantTotal: "15",
			wantTop:   report.CategoryRevenue{Name: "Dairy", Revenue: d("10")},
			wantCats:  []string{"Dairy", "Bakery"},
		},
		{
			name: "TieGoesToFirstSeen",
			sales: []pos.Sale{
				{Items: []pos.SaleItem{{ProductID: "p2", Quantity: d("2"), Price: d("2.5")}}, Total: d("5")},
				{Items: []pos.SaleItem{{ProductID: "p1", Quantity: d("1"), Price: d("5")}}, Total: d("5")},
			},
			products:  []pos.Product{milk, bread},
			wantCount: 2,
			wantTotal: "10",
			wantTop:   report.CategoryRevenue{Name: "Bakery", Revenue: d("5")},
			wantCats:  []string{"Bakery", "Dairy"},
		},
		{
			name: "DeletedProductOnlyCountsInTotal",
			sales: []pos.Sale{
				{Items: []pos.SaleItem{
					{ProductID: "gone", Quantity: d("1"), Price: d("100")},
					{ProductID: "p1", Quantity: d("1.5"), Price: d("2")},
				}, Total: d("103")},
			},
			products:  []pos.Product{milk},
			wantCount: 1,
			wantTotal: "103",
			wantTop:   report.CategoryRevenue{Name: "Dairy", Revenue: d("3")},
			wantCats:  []string{"Dairy"},
		},
		{
			name: "EmptyCategoryFallsBack",
			sales: []pos.Sale{
				{Items: []pos.SaleItem{{ProductID: "p3", Quantity: d("1"), Price: d("4")}}, Total: d("4")},
			},
			products:  []pos.Product{loose},
			wantCount: 1,
			wantTotal: "4",
			wantTop:   report.CategoryRevenue{Name: pos.Uncategorized, Revenue: d("4")},
			wantCats:  []string{pos.Uncategorized},
		},
		{
			name:      "NoSales",
			products:  []pos.Product{milk},
			wantCount: 0,
			wantTotal: "0",
			wantTop:   report.CategoryRevenue{Name: report.NoCategory, Revenue: decimal.Zero},
			wantCats:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.Aggregate(tt.sales, resolverFor(tt.products...))

			assert.Equal(t, tt.wantCount, got.Count)
			assert.True(t, d(tt.wantTotal).Equal(got.TotalRevenue), "total %s", got.TotalRevenue)
			assert.Equal(t, tt.wantTop.Name, got.TopCategory.Name)
			assert.True(t, tt.wantTop.Revenue.Equal(got.TopCategory.Revenue), "top revenue %s", got.TopCategory.Revenue)

			names := make([]string, 0, len(got.Categories))
			for _, c := range got.Categories {
				names = append(names, c.Name)
			}

			assert.Equal(t, tt.wantCats, names)
		})
	}
}

func TestAggregate_UsesCurrentCategory(t *testing.T) {
	sales := []pos.Sale{
		{Items: []pos.SaleItem{{ProductID: "p1", Quantity: d("1"), Price: d("3")}}, Total: d("3")},
	}

	before := report.Aggregate(sales, resolverFor(pos.Product{ID: "p1", Category: "Dairy"}))
	after := report.Aggregate(sales, resolverFor(pos.Product{ID: "p1", Category: "Breakfast"}))

	assert.Equal(t, "Dairy", before.TopCategory.Name)
	assert.Equal(t, "Breakfast", after.TopCategory.Name)
}

type fakeSource struct {
	state *pos.State
	now   time.Time
}

func (f fakeSource) Snapshot() *pos.State { return f.state.Clone() }
func (f fakeSource) Now() time.Time       { return f.now }

func TestService(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local)
	state := pos.SampleState(now)

	for i := range 5 {
		state.Sales = append(state.Sales, pos.Sale{
			ID:         fmt.Sprintf("extra%d", i),
			Date:       now.Add(time.Duration(i+1) * time.Minute),
			CustomerID: "gone",
			Items:      []pos.SaleItem{{ProductID: "p5", Quantity: d("1"), Price: d("1")}},
			Total:      d("1"),
		})
	}

	state.Products[3].Stock = d("9")

	svc := report.NewService(fakeSource{state: state, now: now})

	t.Run("History", func(t *testing.T) {
		h := svc.History()
		require.Len(t, h, 7)
		assert.Equal(t, "extra4", h[0].ID)
		assert.Equal(t, pos.DeletedCustomer, h[0].CustomerName)
		assert.Equal(t, "sale1", h[6].ID)
		assert.Equal(t, "Juan Pérez", h[6].CustomerName)
	})

	t.Run("Dashboard", func(t *testing.T) {
		dash := svc.Dashboard()
		assert.Equal(t, 5, dash.ProductCount)
		assert.Equal(t, 3, dash.CustomerCount)
		assert.Equal(t, 1, dash.LowStockCount)
		assert.True(t, d("23.885").Equal(dash.TotalRevenue), "revenue %s", dash.TotalRevenue)
		require.Len(t, dash.RecentSales, 5)
		assert.Equal(t, "extra4", dash.RecentSales[0].ID)
		assert.Equal(t, "extra0", dash.RecentSales[4].ID)
	})

	t.Run("DashboardCustomThreshold", func(t *testing.T) {
		custom := report.NewService(fakeSource{state: state, now: now},
			report.WithLowStock(func(p pos.Product) bool { return p.Stock.LessThan(d("100")) }))
		assert.Equal(t, 2, custom.Dashboard().LowStockCount)
	})

	t.Run("Report", func(t *testing.T) {
		r := svc.Report(report.Day)
		assert.Equal(t, report.Day, r.Period)
		assert.Equal(t, 6, r.Count)
		assert.Equal(t, "Carnicería", r.TopCategory.Name)
		assert.True(t, d("11").Equal(r.TopCategory.Revenue))

		w := svc.ReportAt(report.Week, now)
		assert.Equal(t, 7, w.Count)
	})

	t.Run("FilteredHistory", func(t *testing.T) {
		h := svc.FilteredHistory(report.Day)
		require.Len(t, h, 6)
		assert.Equal(t, "sale2", h[5].ID)
	})
}
