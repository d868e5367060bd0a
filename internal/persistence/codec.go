package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// document is the stored layout. Pointer fields tell a missing key apart from
// a zero value so older documents can be upgraded on load.
type document struct {
	Products       []pos.Product      `json:"products"`
	Customers      []pos.Customer     `json:"customers"`
	Suppliers      []pos.Supplier     `json:"suppliers"`
	Sales          []pos.Sale         `json:"sales"`
	InvoiceCounter *int               `json:"invoiceCounter"`
	Settings       *pos.SettingsPatch `json:"settings"`
}

// Decode parses a stored document.
//
// Documents written before invoice numbering have no invoiceCounter: the
// counter is set to the number of sales and every sale without a number gets
// one from its 1-based position. Settings keys missing from the document take
// the default value.
func Decode(data []byte) (*pos.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	s := &pos.State{
		Products:  doc.Products,
		Customers: doc.Customers,
		Suppliers: doc.Suppliers,
		Sales:     doc.Sales,
		Settings:  pos.DefaultSettings(),
	}

	if doc.InvoiceCounter != nil {
		s.InvoiceCounter = *doc.InvoiceCounter
	} else {
		s.InvoiceCounter = len(s.Sales)

		for i := range s.Sales {
			if s.Sales[i].InvoiceNumber == "" {
				s.Sales[i].InvoiceNumber = pos.FormatInvoiceNumber(i + 1)
			}
		}
	}

	if doc.Settings != nil {
		doc.Settings.Apply(&s.Settings)
	}

	normalize(s)

	return s, nil
}

func Encode(s *pos.State) ([]byte, error) {
	out := *s
	normalize(&out)

	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	return data, nil
}

// normalize replaces nil collections so they serialise as empty arrays.
func normalize(s *pos.State) {
	if s.Products == nil {
		s.Products = []pos.Product{}
	}

	if s.Customers == nil {
		s.Customers = []pos.Customer{}
	}

	if s.Suppliers == nil {
		s.Suppliers = []pos.Supplier{}
	}

	if s.Sales == nil {
		s.Sales = []pos.Sale{}
	}

	for i := range s.Sales {
		if s.Sales[i].Items == nil {
			s.Sales[i].Items = []pos.SaleItem{}
		}
	}
}
