package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tpv/internal/importer/catalog"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

//go:generate mockgen -source=importer.go -destination=importer_mock.go -package=importer
type Importer interface {
	Parse(r io.Reader) ([]catalog.Row, error)
}
