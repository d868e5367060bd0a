// Package sale turns a cart into a recorded Sale and applies its stock
// consequences.
package sale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidItem       = errors.New("invalid sale item")
	ErrInsufficientStock = errors.New("insufficient stock")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	Exclusive(ctx context.Context, fn func(store.Tx) error) error
}

type Service struct {
	repo            Repository
	defaultCustomer string
	observers       []func(pos.Sale)
}

type Option func(*Service)

// WithDefaultCustomer sets the customer used when a request names none.
func WithDefaultCustomer(id string) Option {
	return func(s *Service) {
		s.defaultCustomer = id
	}
}

// WithObserver registers a callback run after each sale is fully recorded.
func WithObserver(fn func(pos.Sale)) Option {
	return func(s *Service) {
		s.observers = append(s.observers, fn)
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Request struct {
	CustomerID string
	Items      []pos.SaleItem
	// EnforceStock rejects the sale, before anything is recorded, when a
	// product is unknown or its live stock cannot cover the requested
	// quantity. The check runs in the same exclusive section as the sale.
	EnforceStock bool
}

func (r Request) validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyCart
	}

	for i, it := range r.Items {
		switch {
		case strings.TrimSpace(it.ProductID) == "":
			return fmt.Errorf("%w: line %d has no product", ErrInvalidItem, i+1)
		case !it.Quantity.IsPositive():
			return fmt.Errorf("%w: line %d quantity must be positive", ErrInvalidItem, i+1)
		case it.Price.IsNegative():
			return fmt.Errorf("%w: line %d price cannot be negative", ErrInvalidItem, i+1)
		}
	}

	return nil
}

// Checkout records the sale and decrements stock, in this order: id, date,
// invoice number, append and persist, one stock adjustment per line in line
// order, persist again. The total is computed from the lines.
//
// There is no rollback. If a stock adjustment fails the sale stays recorded
// with all its lines and the adjustments already applied stay applied; the
// partially recorded sale is returned along with the error.
func (s *Service) Checkout(ctx context.Context, req Request) (pos.Sale, error) {
	if err := req.validate(); err != nil {
		return pos.Sale{}, err
	}

	customerID := req.CustomerID
	if customerID == "" {
		customerID = s.defaultCustomer
	}

	items := append([]pos.SaleItem(nil), req.Items...)

	var sale pos.Sale

	err := s.repo.Exclusive(ctx, func(tx store.Tx) error {
		if req.EnforceStock {
			if err := checkStock(tx, items); err != nil {
				return err
			}
		}

		sale = pos.Sale{
			ID:         tx.NewID("sale"),
			Date:       tx.Now(),
			CustomerID: customerID,
			Items:      items,
			Total:      pos.ItemsTotal(items),
		}
		sale.InvoiceNumber = pos.FormatInvoiceNumber(tx.IncrementInvoiceCounter())

		tx.AppendSale(sale)

		if err := tx.Flush(ctx); err != nil {
			return fmt.Errorf("persisting sale %s: %w", sale.InvoiceNumber, err)
		}

		for _, it := range items {
			if _, _, err := tx.AdjustStock(ctx, it.ProductID, it.Quantity.Neg()); err != nil {
				return fmt.Errorf("adjusting stock of %s: %w", it.ProductID, err)
			}
		}

		if err := tx.Flush(ctx); err != nil {
			return fmt.Errorf("persisting stock for sale %s: %w", sale.InvoiceNumber, err)
		}

		return nil
	})
	if err != nil {
		if sale.ID != "" {
			slog.Error("sale recorded partially", "id", sale.ID, "invoice", sale.InvoiceNumber, "error", err)
		}

		return sale, err
	}

	slog.Info("sale recorded", "id", sale.ID, "invoice", sale.InvoiceNumber, "total", sale.Total.String())

	for _, fn := range s.observers {
		fn(sale)
	}

	return sale, nil
}

// checkStock sums the quantity asked of each product across lines before
// comparing it with the product's stock.
func checkStock(tx store.Tx, items []pos.SaleItem) error {
	wanted := map[string]decimal.Decimal{}

	var order []string

	for _, it := range items {
		if _, seen := wanted[it.ProductID]; !seen {
			order = append(order, it.ProductID)
			wanted[it.ProductID] = decimal.Zero
		}

		wanted[it.ProductID] = wanted[it.ProductID].Add(it.Quantity)
	}

	for _, id := range order {
		p, ok := tx.Product(id)
		if !ok {
			return fmt.Errorf("%w: unknown product %s", ErrInvalidItem, id)
		}

		if wanted[id].GreaterThan(p.Stock) {
			return fmt.Errorf("%w: only %s of %s available", ErrInsufficientStock, p.Stock, p.Name)
		}
	}

	return nil
}
