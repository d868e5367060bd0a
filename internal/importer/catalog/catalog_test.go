package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/tpv/internal/importer/catalog"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_Semicolon(t *testing.T) {
	csv := `Catálogo IVANMARKET;;;
Exportado;15-02-2026;;

Nombre;Categoría;Precio;Stock;Proveedor
Leche Desnatada;Lácteos;1,15;60;Proveedor Lácteo S.L.
Aceite de Oliva (l);Alimentación;1.234,50;12,5;
;;;;
Sal;;0,40;;Distribuciones Nacionales
`

	rows, err := catalog.NewParser(';').Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Leche Desnatada", rows[0].Name)
	assert.Equal(t, "Lácteos", rows[0].Category)
	assert.True(t, rows[0].Price.Equal(dec("1.15")))
	assert.True(t, rows[0].Stock.Equal(dec("60")))
	assert.Equal(t, "Proveedor Lácteo S.L.", rows[0].Supplier)
	assert.Equal(t, 5, rows[0].Line)

	assert.True(t, rows[1].Price.Equal(dec("1234.50")))
	assert.True(t, rows[1].Stock.Equal(dec("12.5")))
	assert.Empty(t, rows[1].Supplier)

	assert.Empty(t, rows[2].Category)
	assert.True(t, rows[2].Stock.IsZero())
	assert.Equal(t, 8, rows[2].Line)
}

func TestParser_HeaderAliases(t *testing.T) {
	csv := "PRODUCTO\tPVP\tExistencias\nPan de Molde\t2.50\t80\n"

	rows, err := catalog.NewParser('\t').Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Pan de Molde", rows[0].Name)
	assert.True(t, rows[0].Price.Equal(dec("2.50")))
	assert.True(t, rows[0].Stock.Equal(dec("80")))
}

func TestParser_Windows1252(t *testing.T) {
	utf8 := "Nombre;Categoría;Precio\nAzúcar;Alimentación;0,95\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8))
	require.NoError(t, err)

	rows, err := catalog.NewParser(';').Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Azúcar", rows[0].Name)
	assert.Equal(t, "Alimentación", rows[0].Category)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "no header",
			input:   "Leche;1,20\nPan;2,50\n",
			wantErr: "no header row",
		},
		{
			name:    "missing price column",
			input:   "Nombre;Stock\nLeche;10\n",
			wantErr: "no header row",
		},
		{
			name:    "bad price",
			input:   "Nombre;Precio\nLeche;gratis\n",
			wantErr: "line 2: invalid price",
		},
		{
			name:    "bad stock",
			input:   "Nombre;Precio;Stock\nLeche;1,20;muchos\n",
			wantErr: "line 2: invalid stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewParser(';').Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
