package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// Tx is the view of the store handed to a function running under Exclusive.
// Mutations are applied in memory immediately; Flush writes the whole State.
//
//go:generate mockgen -source=tx.go -destination=tx_mock.go -package=store
type Tx interface {
	NewID(prefix string) string
	Now() time.Time
	// Product reads the live record, consistent with every other step of fn.
	Product(id string) (pos.Product, bool)
	// IncrementInvoiceCounter bumps the counter and returns the new value.
	IncrementInvoiceCounter() int
	AppendSale(sale pos.Sale)
	// AdjustStock adds delta to the product's stock through the generic
	// update path, persisting when the product exists. No lower bound is
	// enforced.
	AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (pos.Product, bool, error)
	Flush(ctx context.Context) error
}

type tx struct {
	s *Store
}

// Exclusive runs fn while holding the store lock, so no other operation can
// observe or interleave with the steps fn performs. There is no rollback:
// whatever fn applied before returning an error stays applied.
func (s *Store) Exclusive(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&tx{s: s})
}

func (t *tx) NewID(prefix string) string {
	return t.s.newID(prefix)
}

func (t *tx) Now() time.Time {
	return t.s.now()
}

func (t *tx) Product(id string) (pos.Product, bool) {
	return get(t.s.state, products, id)
}

func (t *tx) IncrementInvoiceCounter() int {
	t.s.state.InvoiceCounter++
	return t.s.state.InvoiceCounter
}

func (t *tx) AppendSale(sale pos.Sale) {
	sale.Items = append([]pos.SaleItem(nil), sale.Items...)
	t.s.state.Sales = append(t.s.state.Sales, sale)
}

func (t *tx) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (pos.Product, bool, error) {
	return updateAndFlush(ctx, t.s, unchecked(products), productID, func(p *pos.Product) {
		p.Stock = p.Stock.Add(delta)
	})
}

func (t *tx) Flush(ctx context.Context) error {
	return t.s.flush(ctx)
}

// AdjustStock applies a signed stock delta as one exclusive operation.
func (s *Store) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (pos.Product, bool, error) {
	var (
		p  pos.Product
		ok bool
	)

	err := s.Exclusive(ctx, func(t Tx) error {
		var err error
		p, ok, err = t.AdjustStock(ctx, productID, delta)

		return err
	})

	return p, ok, err
}
