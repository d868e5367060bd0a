package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// Source is satisfied by the store.
type Source interface {
	Snapshot() *pos.State
	Now() time.Time
}

type Service struct {
	src         Source
	isLow       func(pos.Product) bool
	recentSales int
}

type Option func(*Service)

// WithLowStock sets the rule used to count low-stock products.
func WithLowStock(fn func(pos.Product) bool) Option {
	return func(s *Service) {
		s.isLow = fn
	}
}

func NewService(src Source, opts ...Option) *Service {
	ten := decimal.NewFromInt(10)

	s := &Service{
		src:         src,
		isLow:       func(p pos.Product) bool { return p.Stock.LessThan(ten) },
		recentSales: 5,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Report struct {
	Period Period    `json:"period"`
	From   time.Time `json:"from"`
	Summary
}

// Report aggregates the sales of the period containing the store's current time.
func (s *Service) Report(p Period) Report {
	return s.ReportAt(p, s.src.Now())
}

func (s *Service) ReportAt(p Period, ref time.Time) Report {
	state := s.src.Snapshot()
	sales := FilterSales(state.Sales, p, ref)

	return Report{
		Period:  p,
		From:    StartOf(p, ref),
		Summary: Aggregate(sales, pos.NewResolver(state)),
	}
}

// SaleRow is a sale with its customer resolved for display.
type SaleRow struct {
	pos.Sale
	CustomerName string `json:"customerName"`
}

// History lists every sale, newest first.
func (s *Service) History() []SaleRow {
	state := s.src.Snapshot()
	return rows(state, state.Sales)
}

// FilteredHistory lists the sales of a period, newest first.
func (s *Service) FilteredHistory(p Period) []SaleRow {
	state := s.src.Snapshot()
	return rows(state, FilterSales(state.Sales, p, s.src.Now()))
}

func rows(state *pos.State, sales []pos.Sale) []SaleRow {
	r := pos.NewResolver(state)

	out := make([]SaleRow, 0, len(sales))
	for _, sale := range slices.Backward(sales) {
		out = append(out, SaleRow{Sale: sale, CustomerName: r.CustomerName(sale.CustomerID)})
	}

	return out
}

type Dashboard struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	ProductCount  int             `json:"productCount"`
	CustomerCount int             `json:"customerCount"`
	LowStockCount int             `json:"lowStockCount"`
	RecentSales   []SaleRow       `json:"recentSales"`
}

func (s *Service) Dashboard() Dashboard {
	state := s.src.Snapshot()

	d := Dashboard{
		TotalRevenue:  decimal.Zero,
		ProductCount:  len(state.Products),
		CustomerCount: len(state.Customers),
	}

	for _, sale := range state.Sales {
		d.TotalRevenue = d.TotalRevenue.Add(sale.Total)
	}

	for _, p := range state.Products {
		if s.isLow(p) {
			d.LowStockCount++
		}
	}

	recent := state.Sales
	if len(recent) > s.recentSales {
		recent = recent[len(recent)-s.recentSales:]
	}

	d.RecentSales = rows(state, recent)

	return d
}
