package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
	"github.com/MrJamesThe3rd/tpv/internal/persistence/slots/memory"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...store.Option) (*store.Store, *persistence.Adapter) {
	t.Helper()

	adapter := persistence.NewAdapter(memory.New(), "ivanmarket_data",
		persistence.WithClock(func() time.Time { return now }))

	s, err := store.New(context.Background(), adapter, opts...)
	require.NoError(t, err)

	return s, adapter
}

func TestNew(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *store.MockPersister)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "LoadsThenSaves",
			setupMock: func(m *store.MockPersister) {
				gomock.InOrder(
					m.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil),
					m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "LoadError",
			setupMock: func(m *store.MockPersister) {
				m.EXPECT().Load(gomock.Any()).Return(nil, errors.New("corrupt"))
			},
			wantErr: true,
		},
		{
			name: "SaveError",
			setupMock: func(m *store.MockPersister) {
				m.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil)
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p := store.NewMockPersister(ctrl)
			tt.setupMock(p)

			s, err := store.New(context.Background(), p)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Len(t, s.Products(), 5)
		})
	}
}

func TestStore_FirstRunStoresSample(t *testing.T) {
	_, adapter := newStore(t)

	var buf fakeWriter
	require.NoError(t, adapter.Export(context.Background(), &buf))
	assert.Contains(t, string(buf), `"invoiceNumber": "FACT 002"`)
}

type fakeWriter []byte

func (w *fakeWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}

func TestStore_AddGeneratesUniqueIDs(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	seen := map[string]struct{}{}
	for _, p := range s.Products() {
		seen[p.ID] = struct{}{}
	}

	for i := range 200 {
		p, err := s.AddProduct(ctx, pos.Product{Name: fmt.Sprintf("Producto %d", i), Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)

		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
	}

	assert.Len(t, s.Products(), 205)
}

func TestStore_AddKeepsExplicitID(t *testing.T) {
	s, _ := newStore(t)

	c, err := s.AddCustomer(context.Background(), pos.Customer{ID: "c9", Name: "Pedro"})
	require.NoError(t, err)
	assert.Equal(t, "c9", c.ID)

	got, ok := s.Customer("c9")
	require.True(t, ok)
	assert.Equal(t, "Pedro", got.Name)
}

func TestStore_AddWithInjectedGenerator(t *testing.T) {
	n := 0
	s, _ := newStore(t, store.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))

	sp, err := s.AddSupplier(context.Background(), pos.Supplier{Name: "Distribuidora Sur"})
	require.NoError(t, err)
	assert.Equal(t, "supp-1", sp.ID)
}

func TestStore_AddInvalidIsRejectedWithoutSaving(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := store.NewMockPersister(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil)
	p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s, err := store.New(context.Background(), p)
	require.NoError(t, err)

	_, err = s.AddProduct(context.Background(), pos.Product{Name: ""})
	assert.ErrorIs(t, err, pos.ErrInvalid)
	assert.Len(t, s.Products(), 5)
}

func TestStore_UpdatePreservesAbsentFields(t *testing.T) {
	s, _ := newStore(t)

	price := decimal.RequireFromString("1.35")
	p, ok, err := s.UpdateProduct(context.Background(), pos.ProductPatch{ID: "p1", Price: &price})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Leche Entera", p.Name)
	assert.Equal(t, "Lácteos", p.Category)
	assert.True(t, decimal.NewFromInt(150).Equal(p.Stock))
	assert.True(t, price.Equal(p.Price))
	assert.Equal(t, "s1", p.SupplierID)
}

func TestStore_UpdateInvalidIsRejectedWithoutSaving(t *testing.T) {
	empty := ""
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name   string
		update func(s *store.Store) (bool, error)
		check  func(t *testing.T, s *store.Store)
	}{
		{
			name: "product with empty name and negative price",
			update: func(s *store.Store) (bool, error) {
				_, ok, err := s.UpdateProduct(context.Background(), pos.ProductPatch{ID: "p1", Name: &empty, Price: &negative})
				return ok, err
			},
			check: func(t *testing.T, s *store.Store) {
				p, _ := s.Product("p1")
				assert.Equal(t, "Leche Entera", p.Name)
				assert.Equal(t, "1.2", p.Price.String())
			},
		},
		{
			name: "product with negative price only",
			update: func(s *store.Store) (bool, error) {
				_, ok, err := s.UpdateProduct(context.Background(), pos.ProductPatch{ID: "p2", Price: &negative})
				return ok, err
			},
			check: func(t *testing.T, s *store.Store) {
				p, _ := s.Product("p2")
				assert.Equal(t, "2.5", p.Price.String())
			},
		},
		{
			name: "customer with empty name",
			update: func(s *store.Store) (bool, error) {
				_, ok, err := s.UpdateCustomer(context.Background(), pos.CustomerPatch{ID: "c1", Name: &empty})
				return ok, err
			},
			check: func(t *testing.T, s *store.Store) {
				c, _ := s.Customer("c1")
				assert.Equal(t, "Juan Pérez", c.Name)
			},
		},
		{
			name: "supplier with blank name",
			update: func(s *store.Store) (bool, error) {
				blank := "   "
				_, ok, err := s.UpdateSupplier(context.Background(), pos.SupplierPatch{ID: "s1", Name: &blank})
				return ok, err
			},
			check: func(t *testing.T, s *store.Store) {
				sp, _ := s.Supplier("s1")
				assert.Equal(t, "Proveedor Lácteo S.L.", sp.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p := store.NewMockPersister(ctrl)
			p.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil)
			// only the initial write-back
			p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

			s, err := store.New(context.Background(), p)
			require.NoError(t, err)

			ok, err := tt.update(s)
			assert.True(t, ok)
			assert.ErrorIs(t, err, pos.ErrInvalid)
			tt.check(t, s)
		})
	}
}

func TestStore_UpdateMissingIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := store.NewMockPersister(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil)
	p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s, err := store.New(context.Background(), p)
	require.NoError(t, err)

	name := "x"
	_, ok, err := s.UpdateCustomer(context.Background(), pos.CustomerPatch{ID: "nope", Name: &name})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DeleteSupplier(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DeleteCustomer(t *testing.T) {
	tests := []struct {
		name    string
		opts    []store.Option
		setup   func(t *testing.T, s *store.Store)
		id      string
		wantErr error
	}{
		{
			name:    "GeneralByID",
			id:      "c3",
			wantErr: store.ErrProtectedCustomer,
		},
		{
			name: "GeneralByName",
			opts: []store.Option{store.WithGeneralCustomer("walkin")},
			id:   "c3",
			// c3 is still named "Cliente General".
			wantErr: store.ErrProtectedCustomer,
		},
		{
			name: "ConfiguredID",
			opts: []store.Option{store.WithGeneralCustomer("c2")},
			id:   "c2",
			wantErr: store.ErrProtectedCustomer,
		},
		{
			name: "RegularCustomer",
			id:   "c1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t, tt.opts...)

			ok, err := s.DeleteCustomer(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)

				_, still := s.Customer(tt.id)
				assert.True(t, still)

				return
			}

			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestStore_DeletedCustomerLeavesDanglingSales(t *testing.T) {
	s, _ := newStore(t)

	ok, err := s.DeleteCustomer(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, ok)

	sale, found := s.Sale("sale1")
	require.True(t, found)
	assert.Equal(t, "c1", sale.CustomerID)
	assert.Equal(t, pos.DeletedCustomer, s.Resolver().CustomerName(sale.CustomerID))
}

func TestStore_Settings(t *testing.T) {
	s, adapter := newStore(t)
	ctx := context.Background()

	name, logo := "Mi Tienda", ""
	res, err := s.UpdateSettings(ctx, pos.SettingsPatch{CompanyName: &name, LogoURL: &logo})
	require.NoError(t, err)
	assert.True(t, res.ReloadRequired)
	assert.Equal(t, "Mi Tienda", res.Settings.CompanyName)
	assert.Equal(t, "", res.Settings.LogoURL)
	assert.Equal(t, pos.DefaultSettings().Address, res.Settings.Address)

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mi Tienda", loaded.Settings.CompanyName)
	assert.Equal(t, "", loaded.Settings.LogoURL)

	phone, email := "+240 000", "x@y.z"
	_, err = s.UpdateSettings(ctx, pos.SettingsPatch{Phone: &phone, Email: &email})
	require.NoError(t, err)

	res, err = s.ResetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, res.ReloadRequired)
	assert.Equal(t, pos.DefaultSettings(), res.Settings)
	assert.Equal(t, pos.DefaultSettings(), s.Settings())
}

func TestStore_AdjustStockAllowsNegative(t *testing.T) {
	s, _ := newStore(t)

	p, ok, err := s.AdjustStock(context.Background(), "p4", decimal.NewFromInt(-60))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(-10).Equal(p.Stock))

	_, ok, err = s.AdjustStock(context.Background(), "missing", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ExclusiveHasNoRollback(t *testing.T) {
	s, _ := newStore(t)
	boom := errors.New("interrupted")

	err := s.Exclusive(context.Background(), func(tx store.Tx) error {
		n := tx.IncrementInvoiceCounter()
		tx.AppendSale(pos.Sale{ID: tx.NewID("sale"), InvoiceNumber: pos.FormatInvoiceNumber(n), Date: tx.Now()})

		if _, _, err := tx.AdjustStock(context.Background(), "p1", decimal.NewFromInt(-1)); err != nil {
			return err
		}

		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, s.InvoiceCounter())
	assert.Len(t, s.Sales(), 3)

	p, _ := s.Product("p1")
	assert.True(t, decimal.NewFromInt(149).Equal(p.Stock))
}

func TestStore_SaveFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("quota exceeded")

	p := store.NewMockPersister(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(pos.SampleState(now), nil)
	gomock.InOrder(
		p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		p.EXPECT().Save(gomock.Any(), gomock.Any()).Return(boom),
	)

	s, err := store.New(context.Background(), p)
	require.NoError(t, err)

	_, err = s.AddSupplier(context.Background(), pos.Supplier{Name: "Nuevo"})
	assert.ErrorIs(t, err, boom)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	s, _ := newStore(t)

	list := s.Products()
	list[0].Name = "changed"

	sales := s.Sales()
	sales[0].Items[0].ProductID = "changed"

	snap := s.Snapshot()
	snap.Customers[0].Name = "changed"

	p, _ := s.Product("p1")
	assert.Equal(t, "Leche Entera", p.Name)

	sale, _ := s.Sale("sale1")
	assert.Equal(t, "p1", sale.Items[0].ProductID)

	c, _ := s.Customer("c1")
	assert.Equal(t, "Juan Pérez", c.Name)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s, _ := newStore(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.AddCustomer(context.Background(), pos.Customer{Name: fmt.Sprintf("Cliente %d", i)})
			assert.NoError(t, err)

			_, _, err = s.AdjustStock(context.Background(), "p5", decimal.NewFromInt(-1))
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Len(t, s.Customers(), 53)

	p, _ := s.Product("p5")
	assert.True(t, decimal.NewFromInt(150).Equal(p.Stock))
}
