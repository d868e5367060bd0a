// Package pos holds the point-of-sale entities and the State document that
// the store keeps in memory and the persistence adapter writes to a slot.
package pos

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted document stores amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid entity")
)

const invoicePrefix = "FACT"

// FormatInvoiceNumber renders the human-facing invoice label for a counter value.
func FormatInvoiceNumber(n int) string {
	return fmt.Sprintf("%s %03d", invoicePrefix, n)
}

// Product is a sellable item. SupplierID is a weak reference.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Stock      decimal.Decimal `json:"stock"`
	SupplierID string          `json:"supplierId"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalid)
	}

	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalid)
	}

	return nil
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalid)
	}

	return nil
}

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
}

func (s Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", ErrInvalid)
	}

	return nil
}

// SaleItem is one cart line. Price is the unit price captured when the line
// was added, not a reference to the product's current price.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (i SaleItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// Sale is immutable once recorded. Total is denormalised at creation time.
type Sale struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerId"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
}

// ItemsTotal sums price x quantity over items.
func ItemsTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}

	return total
}

type Settings struct {
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LogoURL     string `json:"logoUrl"`
}

func DefaultSettings() Settings {
	return Settings{
		CompanyName: "IVANMARKET",
		Address:     "Avda. HASSAN II, MALABO",
		Phone:       "+240 123 456 789",
		Email:       "contacto@ivanmarket.com",
		LogoURL:     "logo.png",
	}
}

// State is the whole application document.
type State struct {
	Products       []Product  `json:"products"`
	Customers      []Customer `json:"customers"`
	Suppliers      []Supplier `json:"suppliers"`
	Sales          []Sale     `json:"sales"`
	InvoiceCounter int        `json:"invoiceCounter"`
	Settings       Settings   `json:"settings"`
}

// Clone returns a deep copy that shares no slices with s.
func (s *State) Clone() *State {
	c := &State{
		Products:       append([]Product(nil), s.Products...),
		Customers:      append([]Customer(nil), s.Customers...),
		Suppliers:      append([]Supplier(nil), s.Suppliers...),
		Sales:          make([]Sale, len(s.Sales)),
		InvoiceCounter: s.InvoiceCounter,
		Settings:       s.Settings,
	}

	for i, sale := range s.Sales {
		sale.Items = append([]SaleItem(nil), sale.Items...)
		c.Sales[i] = sale
	}

	return c
}
