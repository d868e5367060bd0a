// Package stock applies manual stock adjustments and reports low stock.
package stock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

var ErrInvalidAdjustment = errors.New("adjustment must be a whole number")

// DefaultLowStockThreshold marks products with fewer units as low on stock.
const DefaultLowStockThreshold = 10

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stock
type Repository interface {
	Products() []pos.Product
	AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (pos.Product, bool, error)
}

type Service struct {
	repo      Repository
	threshold decimal.Decimal
	observers []func(p pos.Product, delta decimal.Decimal)
}

type Option func(*Service)

func WithThreshold(n int) Option {
	return func(s *Service) {
		s.threshold = decimal.NewFromInt(int64(n))
	}
}

func WithObserver(fn func(p pos.Product, delta decimal.Decimal)) Option {
	return func(s *Service) {
		s.observers = append(s.observers, fn)
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		threshold: decimal.NewFromInt(DefaultLowStockThreshold),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ParseAdjustment reads a signed whole number of units, e.g. "12" or "-3".
func ParseAdjustment(input string) (decimal.Decimal, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAdjustment, input)
	}

	return decimal.NewFromInt(int64(n)), nil
}

// Adjust validates input before touching the store; the product is only
// looked up once the adjustment parses.
func (s *Service) Adjust(ctx context.Context, productID, input string) (pos.Product, error) {
	delta, err := ParseAdjustment(input)
	if err != nil {
		return pos.Product{}, err
	}

	return s.AdjustBy(ctx, productID, delta)
}

// AdjustBy adds a signed delta. Stock may go negative.
func (s *Service) AdjustBy(ctx context.Context, productID string, delta decimal.Decimal) (pos.Product, error) {
	p, ok, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return pos.Product{}, fmt.Errorf("adjusting stock: %w", err)
	}

	if !ok {
		return pos.Product{}, fmt.Errorf("product %s: %w", productID, pos.ErrNotFound)
	}

	slog.Info("stock adjusted", "product", p.ID, "delta", delta.String(), "stock", p.Stock.String())

	for _, fn := range s.observers {
		fn(p, delta)
	}

	return p, nil
}

func (s *Service) IsLow(p pos.Product) bool {
	return p.Stock.LessThan(s.threshold)
}

// LowStock lists products below the threshold in catalogue order.
func (s *Service) LowStock() []pos.Product {
	var out []pos.Product

	for _, p := range s.repo.Products() {
		if s.IsLow(p) {
			out = append(out, p)
		}
	}

	return out
}
