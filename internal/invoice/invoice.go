// Package invoice builds printable invoices for recorded sales.
package invoice

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

type Party struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Line struct {
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type Document struct {
	Company  pos.Settings    `json:"company"`
	Number   string          `json:"number"`
	Date     time.Time       `json:"date"`
	BillTo   Party           `json:"billTo"`
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxRate  decimal.Decimal `json:"taxRate"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Build resolves the sale's references against the current state. Deleted
// customers and products are shown with a placeholder name. Amounts come
// from the sale, never from current product prices.
func Build(sale pos.Sale, settings pos.Settings, r *pos.Resolver) Document {
	doc := Document{
		Company:  settings,
		Number:   sale.InvoiceNumber,
		Date:     sale.Date,
		BillTo:   Party{Name: pos.DeletedCustomer},
		Lines:    make([]Line, 0, len(sale.Items)),
		Subtotal: sale.Total,
		TaxRate:  decimal.Zero,
		Tax:      decimal.Zero,
		Total:    sale.Total,
	}

	if c, ok := r.Customer(sale.CustomerID); ok {
		doc.BillTo = Party{Name: c.Name, Email: c.Email, Phone: c.Phone}
	}

	for _, it := range sale.Items {
		doc.Lines = append(doc.Lines, Line{
			Product:   r.ProductName(it.ProductID),
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Total:     it.LineTotal(),
		})
	}

	return doc
}

var separators = strings.NewReplacer("/", "_", `\`, "_")

// FileName is the export name of an invoice, e.g. factura-FACT_001.txt. Path
// separators become underscores so the name never leaves the export directory.
func FileName(invoiceNumber string) string {
	return "factura-" + separators.Replace(strings.Replace(invoiceNumber, " ", "_", 1)) + ".txt"
}

// Render writes the invoice as plain text.
func Render(w io.Writer, doc Document) error {
	var sb strings.Builder

	c := doc.Company
	fmt.Fprintf(&sb, "%s\n%s\n%s\n%s\n\n", c.CompanyName, c.Address, c.Phone, c.Email)
	fmt.Fprintf(&sb, "FACTURA\nNº Factura: %s\nFecha: %s\n\n", doc.Number, doc.Date.Local().Format("02/01/2006"))

	sb.WriteString("Facturar a:\n" + doc.BillTo.Name + "\n")

	for _, v := range []string{doc.BillTo.Email, doc.BillTo.Phone} {
		if v != "" {
			sb.WriteString(v + "\n")
		}
	}

	rows := make([][]string, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		rows = append(rows, []string{l.Product, l.Quantity.String(), money.Format(l.UnitPrice), money.Format(l.Total)})
	}

	right := lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	left := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Producto", "Cantidad", "Precio Unitario", "Total").
		Rows(rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return left
			}

			return right
		})

	sb.WriteString("\n" + t.Render() + "\n\n")

	fmt.Fprintf(&sb, "Subtotal: %s\n", money.Format(doc.Subtotal))
	fmt.Fprintf(&sb, "IVA (%s%%): %s\n", doc.TaxRate.String(), money.Format(doc.Tax))
	fmt.Fprintf(&sb, "TOTAL: %s\n\n", money.Format(doc.Total))
	fmt.Fprintf(&sb, "Gracias por su compra en %s.\n", c.CompanyName)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing invoice: %w", err)
	}

	return nil
}
