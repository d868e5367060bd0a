package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralCustomerName identifies the walk-in customer in datasets that predate
// a configured general customer id.
const GeneralCustomerName = "Cliente General"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleState is the dataset used when the slot is empty.
func SampleState(now time.Time) *State {
	sale1 := []SaleItem{
		{ProductID: "p1", Quantity: dec("2"), Price: dec("1.20")},
		{ProductID: "p3", Quantity: dec("1.5"), Price: dec("1.99")},
	}
	sale2 := []SaleItem{
		{ProductID: "p2", Quantity: dec("1"), Price: dec("2.50")},
		{ProductID: "p4", Quantity: dec("2"), Price: dec("5.50")},
	}

	return &State{
		Products: []Product{
			{ID: "p1", Name: "Leche Entera", Category: "Lácteos", Price: dec("1.20"), Stock: dec("150"), SupplierID: "s1"},
			{ID: "p2", Name: "Pan de Molde", Category: "Panadería", Price: dec("2.50"), Stock: dec("80"), SupplierID: "s2"},
			{ID: "p3", Name: "Manzanas (kg)", Category: "Frutas y Verduras", Price: dec("1.99"), Stock: dec("120"), SupplierID: "s3"},
			{ID: "p4", Name: "Pollo (kg)", Category: "Carnicería", Price: dec("5.50"), Stock: dec("50"), SupplierID: "s1"},
			{ID: "p5", Name: "Arroz (kg)", Category: "Alimentación", Price: dec("0.90"), Stock: dec("200"), SupplierID: "s2"},
		},
		Customers: []Customer{
			{ID: "c1", Name: "Juan Pérez", Email: "juan.perez@email.com", Phone: "611223344"},
			{ID: "c2", Name: "Ana García", Email: "ana.garcia@email.com", Phone: "655667788"},
			{ID: "c3", Name: GeneralCustomerName},
		},
		Suppliers: []Supplier{
			{ID: "s1", Name: "Proveedor Lácteo S.L.", Contact: "Carlos Ruiz", Phone: "911234567"},
			{ID: "s2", Name: "Distribuciones Nacionales", Contact: "Laura Marín", Phone: "933216548"},
			{ID: "s3", Name: "Campo Fresco Coop.", Contact: "Miguel Ángel", Phone: "954789123"},
		},
		Sales: []Sale{
			{
				ID:            "sale1",
				InvoiceNumber: FormatInvoiceNumber(1),
				Date:          now.Add(-24 * time.Hour),
				CustomerID:    "c1",
				Items:         sale1,
				Total:         ItemsTotal(sale1),
			},
			{
				ID:            "sale2",
				InvoiceNumber: FormatInvoiceNumber(2),
				Date:          now,
				CustomerID:    "c2",
				Items:         sale2,
				Total:         ItemsTotal(sale2),
			},
		},
		InvoiceCounter: 2,
		Settings:       DefaultSettings(),
	}
}
