package pos_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

func TestFormatInvoiceNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "FACT 001"},
		{42, "FACT 042"},
		{999, "FACT 999"},
		{1000, "FACT 1000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pos.FormatInvoiceNumber(tt.n))
	}
}

func TestItemsTotal_Fractional(t *testing.T) {
	items := []pos.SaleItem{
		{ProductID: "p1", Quantity: decimal.RequireFromString("2"), Price: decimal.RequireFromString("1.20")},
		{ProductID: "p3", Quantity: decimal.RequireFromString("1.5"), Price: decimal.RequireFromString("1.99")},
	}

	assert.True(t, decimal.RequireFromString("5.385").Equal(pos.ItemsTotal(items)))
	assert.True(t, pos.ItemsTotal(nil).IsZero())
}

func TestProductPatch_PreservesAbsentFields(t *testing.T) {
	p := pos.Product{
		ID:         "p1",
		Name:       "Leche Entera",
		Category:   "Lácteos",
		Price:      decimal.RequireFromString("1.20"),
		Stock:      decimal.NewFromInt(150),
		SupplierID: "s1",
	}

	name := "Leche Semidesnatada"
	pos.ProductPatch{ID: "p1", Name: &name}.Apply(&p)

	assert.Equal(t, "Leche Semidesnatada", p.Name)
	assert.Equal(t, "Lácteos", p.Category)
	assert.True(t, decimal.RequireFromString("1.20").Equal(p.Price))
	assert.True(t, decimal.NewFromInt(150).Equal(p.Stock))
	assert.Equal(t, "s1", p.SupplierID)
}

func TestSettingsPatch_EmptyStringOverrides(t *testing.T) {
	s := pos.DefaultSettings()
	empty := ""

	pos.SettingsPatch{LogoURL: &empty}.Apply(&s)

	assert.Equal(t, "", s.LogoURL)
	assert.Equal(t, "IVANMARKET", s.CompanyName)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, pos.Product{Name: "Pan", Price: decimal.Zero}.Validate())
	assert.ErrorIs(t, pos.Product{Name: " "}.Validate(), pos.ErrInvalid)
	assert.ErrorIs(t, pos.Product{Name: "Pan", Price: decimal.NewFromInt(-1)}.Validate(), pos.ErrInvalid)
	assert.ErrorIs(t, pos.Customer{}.Validate(), pos.ErrInvalid)
	assert.NoError(t, pos.Customer{Name: "Ana"}.Validate())
	assert.ErrorIs(t, pos.Supplier{}.Validate(), pos.ErrInvalid)
}

func TestState_CloneIsIndependent(t *testing.T) {
	orig := pos.SampleState(time.Now())
	c := orig.Clone()

	c.Products[0].Name = "changed"
	c.Sales[0].Items[0].ProductID = "changed"
	c.InvoiceCounter = 99

	assert.Equal(t, "Leche Entera", orig.Products[0].Name)
	assert.Equal(t, "p1", orig.Sales[0].Items[0].ProductID)
	assert.Equal(t, 2, orig.InvoiceCounter)
}

func TestSampleState(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := pos.SampleState(now)

	assert.Len(t, s.Products, 5)
	assert.Len(t, s.Customers, 3)
	assert.Len(t, s.Suppliers, 3)
	require.Len(t, s.Sales, 2)
	assert.Equal(t, 2, s.InvoiceCounter)
	assert.Equal(t, pos.GeneralCustomerName, s.Customers[2].Name)
	assert.Equal(t, "FACT 002", s.Sales[1].InvoiceNumber)
	assert.Equal(t, now.Add(-24*time.Hour), s.Sales[0].Date)

	for _, sale := range s.Sales {
		assert.True(t, pos.ItemsTotal(sale.Items).Equal(sale.Total), sale.ID)
	}
}

func TestState_JSONNumbers(t *testing.T) {
	p := pos.Product{ID: "p1", Name: "Pan", Price: decimal.RequireFromString("2.5"), Stock: decimal.NewFromInt(3)}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Pan","category":"","price":2.5,"stock":3,"supplierId":""}`, string(b))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 5000)

	for range 5000 {
		id := pos.NewID("sale")
		assert.Contains(t, id, "sale")

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestResolver_DanglingReferences(t *testing.T) {
	s := pos.SampleState(time.Now())
	s.Products = append(s.Products, pos.Product{ID: "p9", Name: "Sin cat"})
	r := pos.NewResolver(s)

	assert.Equal(t, "Juan Pérez", r.CustomerName("c1"))
	assert.Equal(t, pos.DeletedCustomer, r.CustomerName("gone"))
	assert.Equal(t, "Pan de Molde", r.ProductName("p2"))
	assert.Equal(t, pos.DeletedProduct, r.ProductName("gone"))
	assert.Equal(t, "Campo Fresco Coop.", r.SupplierName("s3"))
	assert.Equal(t, pos.NoSupplier, r.SupplierName(""))

	cat, ok := r.Category("p1")
	assert.True(t, ok)
	assert.Equal(t, "Lácteos", cat)

	cat, ok = r.Category("p9")
	assert.True(t, ok)
	assert.Equal(t, pos.Uncategorized, cat)

	_, ok = r.Category("gone")
	assert.False(t, ok)

	_, ok = r.Customer("gone")
	assert.False(t, ok)
}
