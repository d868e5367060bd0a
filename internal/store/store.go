// Package store holds the single in-memory State and writes it through to
// persistence after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

var ErrProtectedCustomer = errors.New("the general customer cannot be deleted")

//go:generate mockgen -source=store.go -destination=persister_mock.go -package=store
type Persister interface {
	Load(ctx context.Context) (*pos.State, error)
	Save(ctx context.Context, s *pos.State) error
}

// Store serialises every operation behind one mutex. Reads return copies;
// nothing outside the package holds a reference into the live State.
type Store struct {
	mu        sync.Mutex
	state     *pos.State
	persister Persister

	newID             pos.IDGenerator
	now               func() time.Time
	generalCustomerID string
}

type Option func(*Store)

func WithIDGenerator(gen pos.IDGenerator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithGeneralCustomer sets the id of the walk-in customer that cannot be deleted.
func WithGeneralCustomer(id string) Option {
	return func(s *Store) {
		s.generalCustomerID = id
	}
}

// New loads the state and immediately writes it back, so a first run leaves
// the sample dataset in the slot and a legacy document is stored migrated.
func New(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister:         p,
		newID:             pos.NewID,
		now:               time.Now,
		generalCustomerID: "c3",
	}

	for _, opt := range opts {
		opt(s)
	}

	state, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	s.state = state

	if err := s.flush(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) flush(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	slog.Debug("state flushed", "sales", len(s.state.Sales), "invoice_counter", s.state.InvoiceCounter)

	return nil
}

// Now returns the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Snapshot returns a deep copy of the whole State.
func (s *Store) Snapshot() *pos.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Resolver returns a weak-reference resolver over a snapshot of the State.
func (s *Store) Resolver() *pos.Resolver {
	return pos.NewResolver(s.Snapshot())
}

// Products

func (s *Store) Products() []pos.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return list(s.state, products)
}

func (s *Store) Product(id string) (pos.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return get(s.state, products, id)
}

func (s *Store) AddProduct(ctx context.Context, p pos.Product) (pos.Product, error) {
	if err := p.Validate(); err != nil {
		return pos.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p = add(s.state, products, p, s.newID)

	return p, s.flush(ctx)
}

// UpdateProduct merges patch onto the product with the same id. A missing
// product is not an error: ok is false and nothing is written.
func (s *Store) UpdateProduct(ctx context.Context, patch pos.ProductPatch) (pos.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateAndFlush(ctx, s, products, patch.ID, patch.Apply)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeAndFlush(ctx, s, products, id)
}

// Customers

func (s *Store) Customers() []pos.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return list(s.state, customers)
}

func (s *Store) Customer(id string) (pos.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return get(s.state, customers, id)
}

func (s *Store) AddCustomer(ctx context.Context, c pos.Customer) (pos.Customer, error) {
	if err := c.Validate(); err != nil {
		return pos.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c = add(s.state, customers, c, s.newID)

	return c, s.flush(ctx)
}

func (s *Store) UpdateCustomer(ctx context.Context, patch pos.CustomerPatch) (pos.Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateAndFlush(ctx, s, customers, patch.ID, patch.Apply)
}

// DeleteCustomer refuses to remove the general customer. Sales keep their
// customerId, which then resolves as a deleted customer.
func (s *Store) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := get(s.state, customers, id); ok && s.isGeneral(c) {
		return false, ErrProtectedCustomer
	}

	return removeAndFlush(ctx, s, customers, id)
}

// IsGeneralCustomer reports whether c is the protected walk-in customer.
func (s *Store) IsGeneralCustomer(c pos.Customer) bool {
	return s.isGeneral(c)
}

func (s *Store) isGeneral(c pos.Customer) bool {
	return c.ID == s.generalCustomerID || strings.EqualFold(strings.TrimSpace(c.Name), pos.GeneralCustomerName)
}

// GeneralCustomerID is the id used for walk-in sales.
func (s *Store) GeneralCustomerID() string {
	return s.generalCustomerID
}

// Suppliers

func (s *Store) Suppliers() []pos.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	return list(s.state, suppliers)
}

func (s *Store) Supplier(id string) (pos.Supplier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return get(s.state, suppliers, id)
}

func (s *Store) AddSupplier(ctx context.Context, sp pos.Supplier) (pos.Supplier, error) {
	if err := sp.Validate(); err != nil {
		return pos.Supplier{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sp = add(s.state, suppliers, sp, s.newID)

	return sp, s.flush(ctx)
}

func (s *Store) UpdateSupplier(ctx context.Context, patch pos.SupplierPatch) (pos.Supplier, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateAndFlush(ctx, s, suppliers, patch.ID, patch.Apply)
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeAndFlush(ctx, s, suppliers, id)
}

// Sales are read-only here; they are created through Exclusive by the sale engine.

func (s *Store) Sales() []pos.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := list(s.state, sales)
	for i := range out {
		out[i].Items = append([]pos.SaleItem(nil), out[i].Items...)
	}

	return out
}

func (s *Store) Sale(id string) (pos.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := get(s.state, sales, id)
	if ok {
		sale.Items = append([]pos.SaleItem(nil), sale.Items...)
	}

	return sale, ok
}

func (s *Store) InvoiceCounter() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.InvoiceCounter
}
