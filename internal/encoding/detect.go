// Package encoding normalises uploaded text files to UTF-8. Spreadsheet
// exports on shop PCs are often Windows-1252 or UTF-16 with a BOM.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

// Charset names reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF8BOM     = "UTF-8-BOM"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

var decoders = map[string]encoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO88599:    charmap.ISO8859_9,
}

// Detect names the charset of a prefix of the input. BOMs win, then valid
// UTF-8, then chardet's best guess. Anything else is treated as Windows-1252.
func Detect(buf []byte) string {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(buf, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(buf, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(buf):
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-9":
		return ISO88599
	default:
		return Windows1252
	}
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8 with any
// byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	charset := Detect(buf)

	switch charset {
	case UTF8:
		return br, nil
	case UTF8BOM:
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), nil
}
