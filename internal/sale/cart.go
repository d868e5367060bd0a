package sale

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// Line is one cart entry. Price is captured when the line is created.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(l.Quantity)
}

// Cart enforces the oversell policy before a sale reaches Checkout: no line
// may exceed the stock of its product at the time it was changed.
type Cart struct {
	CustomerID string
	lines      []Line
}

func NewCart(customerID string) *Cart {
	return &Cart{CustomerID: customerID}
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ProductID == productID })
}

// Add puts one more unit of p in the cart.
func (c *Cart) Add(p pos.Product) error {
	return c.AddQuantity(p, decimal.NewFromInt(1))
}

// AddQuantity adds q units of p, refusing when p is out of stock or the
// line would exceed the available stock.
func (c *Cart) AddQuantity(p pos.Product, q decimal.Decimal) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	}

	if !p.Stock.IsPositive() {
		return fmt.Errorf("%w: %s is out of stock", ErrInsufficientStock, p.Name)
	}

	i := c.index(p.ID)
	current := decimal.Zero

	if i >= 0 {
		current = c.lines[i].Quantity
	}

	if current.Add(q).GreaterThan(p.Stock) {
		return fmt.Errorf("%w: only %s of %s available", ErrInsufficientStock, p.Stock, p.Name)
	}

	if i >= 0 {
		c.lines[i].Quantity = current.Add(q)
		return nil
	}

	c.lines = append(c.lines, Line{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: q})

	return nil
}

// SetQuantity sets the line for p to q. A quantity above stock is clamped to
// the stock and clamped is true; zero or less removes the line. Products not
// in the cart are ignored.
func (c *Cart) SetQuantity(p pos.Product, q decimal.Decimal) (clamped bool) {
	i := c.index(p.ID)
	if i < 0 {
		return false
	}

	switch {
	case !q.IsPositive():
		c.lines = slices.Delete(c.lines, i, i+1)
	case q.GreaterThan(p.Stock):
		c.lines[i].Quantity = p.Stock
		return true
	default:
		c.lines[i].Quantity = q
	}

	return false
}

func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}

	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Request converts the cart into a checkout request. The request re-checks
// stock at checkout, since the cart only saw the stock of its own snapshot.
func (c *Cart) Request() Request {
	items := make([]pos.SaleItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, pos.SaleItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price})
	}

	return Request{CustomerID: c.CustomerID, Items: items, EnforceStock: true}
}
