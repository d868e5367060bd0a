package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/tpv/internal/encoding"
)

const productsCSV = "Nombre;Categoría;Precio;Stock\nLeche Entera;Lácteos;1,20;150\nAzúcar;Alimentación;0,95;40\n"

func mustEncode(t *testing.T, s string, enc interface {
	Bytes([]byte) ([]byte, error)
}) []byte {
	t.Helper()

	b, err := enc.Bytes([]byte(s))
	require.NoError(t, err)

	return b
}

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name    string
		input   func(t *testing.T) []byte
		charset string // empty where the heuristic may pick a sibling code page
	}{
		{
			name:    "utf-8 passthrough",
			input:   func(*testing.T) []byte { return []byte(productsCSV) },
			charset: encoding.UTF8,
		},
		{
			name: "utf-8 bom stripped",
			input: func(*testing.T) []byte {
				return append([]byte{0xEF, 0xBB, 0xBF}, productsCSV...)
			},
			charset: encoding.UTF8BOM,
		},
		{
			name: "windows-1252",
			input: func(t *testing.T) []byte {
				return mustEncode(t, productsCSV, charmap.Windows1252.NewEncoder())
			},
		},
		{
			name: "utf-16 little endian with bom",
			input: func(t *testing.T) []byte {
				return mustEncode(t, productsCSV, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
			},
			charset: encoding.UTF16LE,
		},
		{
			name: "utf-16 big endian with bom",
			input: func(t *testing.T) []byte {
				return mustEncode(t, productsCSV, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
			},
			charset: encoding.UTF16BE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input(t)
			if tt.charset != "" {
				assert.Equal(t, tt.charset, encoding.Detect(in))
			}

			r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, productsCSV, string(got))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := strings.Repeat("Pan de Molde;Panadería;2,50;80\n", 500)

	r, err := encoding.NewUTF8Reader(strings.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(strings.NewReader(""))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
