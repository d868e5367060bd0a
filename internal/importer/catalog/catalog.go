// Package catalog reads product catalogue spreadsheets exported as
// delimited text.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/tpv/internal/encoding"
)

var ErrNoHeader = errors.New("no header row with product name and price columns")

// Row is one product line of the file. Supplier is the supplier name as
// written in the file.
type Row struct {
	Line     int
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    decimal.Decimal
	Supplier string
}

type Parser struct {
	comma rune
}

func NewParser(comma rune) *Parser {
	return &Parser{comma: comma}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = p.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}

	cols, headerIdx, ok := detectHeader(records)
	if !ok {
		return nil, ErrNoHeader
	}

	return parseRows(cols, records[headerIdx+1:])
}

// record keeps the file line a row started on; blank lines are not records.
type record struct {
	line  int
	cells []string
}

type colIndex map[field]int

func detectHeader(records []record) (colIndex, int, bool) {
	for rowIdx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			title := strings.ToLower(strings.TrimSpace(cell))

			for f, names := range headers {
				if _, seen := cols[f]; seen {
					continue
				}

				for _, name := range names {
					if title == name {
						cols[f] = i
					}
				}
			}
		}

		if hasRequired(cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasRequired(cols colIndex) bool {
	for _, f := range required {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a name. A row with a name but an unreadable
// price or stock is an error, reported with its file line number.
func parseRows(cols colIndex, records []record) ([]Row, error) {
	var rows []Row

	for _, rec := range records {
		line := rec.line
		cells := rec.cells

		name := cellValue(cells, cols, fieldName)
		if name == "" {
			continue
		}

		price, err := parseEuropeanDecimal(cellValue(cells, cols, fieldPrice))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}

		stock := decimal.Zero

		if s := cellValue(cells, cols, fieldStock); s != "" {
			stock, err = parseEuropeanDecimal(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid stock: %w", line, err)
			}
		}

		rows = append(rows, Row{
			Line:     line,
			Name:     name,
			Category: cellValue(cells, cols, fieldCategory),
			Price:    price,
			Stock:    stock,
			Supplier: cellValue(cells, cols, fieldSupplier),
		})
	}

	return rows, nil
}

func cellValue(cells []string, cols colIndex, f field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[idx])
}
