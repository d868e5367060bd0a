// Package importer loads product catalogues into the store. Import is two
// steps: Preview parses and flags conflicts, Confirm adds the chosen products.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/tpv/internal/importer/catalog"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=importer
type Repository interface {
	Products() []pos.Product
	Suppliers() []pos.Supplier
	AddProduct(ctx context.Context, p pos.Product) (pos.Product, error)
}

// Conflict is a file row whose name matches a product already in the catalogue.
type Conflict struct {
	Line     int         `json:"line"`
	Incoming pos.Product `json:"incoming"`
	Existing pos.Product `json:"existing"`
}

type Preview struct {
	New       []pos.Product `json:"new"`
	Conflicts []Conflict    `json:"conflicts"`
}

type Service struct {
	repo      Repository
	importers map[Format]Importer
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		importers: map[Format]Importer{
			FormatCSV: catalog.NewParser(';'),
			FormatTSV: catalog.NewParser('\t'),
		},
	}
}

// Preview parses r and splits its rows into new products and conflicts.
// Names are compared case-insensitively, against the catalogue and against
// earlier rows of the same file.
func (s *Service) Preview(format Format, r io.Reader) (Preview, error) {
	importer, ok := s.importers[format]
	if !ok {
		return Preview{}, fmt.Errorf("unknown format: %s", format)
	}

	rows, err := importer.Parse(r)
	if err != nil {
		return Preview{}, fmt.Errorf("parsing %s: %w", format, err)
	}

	existing := make(map[string]pos.Product)
	for _, p := range s.repo.Products() {
		existing[nameKey(p.Name)] = p
	}

	supplierIDs := make(map[string]string)
	for _, sp := range s.repo.Suppliers() {
		supplierIDs[nameKey(sp.Name)] = sp.ID
	}

	preview := Preview{New: []pos.Product{}, Conflicts: []Conflict{}}

	for _, row := range rows {
		p := pos.Product{
			Name:       row.Name,
			Category:   row.Category,
			Price:      row.Price,
			Stock:      row.Stock,
			SupplierID: supplierIDs[nameKey(row.Supplier)],
		}

		key := nameKey(row.Name)
		if prev, ok := existing[key]; ok {
			preview.Conflicts = append(preview.Conflicts, Conflict{Line: row.Line, Incoming: p, Existing: prev})
			continue
		}

		existing[key] = p
		preview.New = append(preview.New, p)
	}

	return preview, nil
}

// Confirm adds products to the store and returns how many were added. It
// stops at the first failure; products added before it stay added.
func (s *Service) Confirm(ctx context.Context, products []pos.Product) (int, error) {
	for i, p := range products {
		p.ID = ""

		if _, err := s.repo.AddProduct(ctx, p); err != nil {
			return i, fmt.Errorf("adding product %q: %w", p.Name, err)
		}
	}

	slog.Info("products imported", "count", len(products))

	return len(products), nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
