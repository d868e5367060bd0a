package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// Source is satisfied by the store.
type Source interface {
	Snapshot() *pos.State
}

// Item links an exported sale to the file written for it.
type Item struct {
	Sale         pos.Sale
	CustomerName string
	FilePath     string
}

// Filter bounds the sale date. Nil bounds are open.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func (f Filter) match(t time.Time) bool {
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && !t.Before(*f.EndDate) {
		return false
	}

	return true
}

type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// Document builds the invoice of one sale.
func (s *Service) Document(saleID string) (Document, error) {
	state := s.src.Snapshot()
	r := pos.NewResolver(state)

	for _, sale := range state.Sales {
		if sale.ID == saleID {
			return Build(sale, state.Settings, r), nil
		}
	}

	return Document{}, fmt.Errorf("sale %s: %w", saleID, pos.ErrNotFound)
}

// Export renders every sale matching filter into outputDir, one file per sale.
func (s *Service) Export(ctx context.Context, filter Filter, outputDir string) ([]Item, error) {
	state := s.src.Snapshot()
	r := pos.NewResolver(state)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(state.Sales))

	for _, sale := range state.Sales {
		if !filter.match(sale.Date) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return items, err
		}

		path, err := writeInvoice(Build(sale, state.Settings, r), outputDir)
		if err != nil {
			return nil, fmt.Errorf("writing invoice for sale %s: %w", sale.ID, err)
		}

		items = append(items, Item{Sale: sale, CustomerName: r.CustomerName(sale.CustomerID), FilePath: path})
	}

	return items, nil
}

func writeInvoice(doc Document, dir string) (string, error) {
	path := filepath.Join(dir, FileName(doc.Number))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := Render(f, doc); err != nil {
		_ = f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

// Summary lists exported items one per line.
func Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			item.Sale.Date.Local().Format("2006-01-02"),
			item.Sale.InvoiceNumber,
			item.CustomerName,
			money.Format(item.Sale.Total),
			filepath.Base(item.FilePath),
		)
	}

	return sb.String()
}
