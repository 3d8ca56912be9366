package eibi

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the character set of a schedule file.
type Encoding string

const (
	// EncodingAuto keeps valid UTF-8 and decodes anything else as Windows-1252.
	EncodingAuto        Encoding = "auto"
	EncodingUTF8        Encoding = "utf-8"
	EncodingLatin1      Encoding = "latin1"
	EncodingWindows1252 Encoding = "windows-1252"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Decode converts data to UTF-8.
func Decode(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingAuto, "":
		if utf8.Valid(data) {
			return bytes.TrimPrefix(data, utf8BOM), nil
		}
		return charmap.Windows1252.NewDecoder().Bytes(data)
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("input is not valid UTF-8")
		}
		return bytes.TrimPrefix(data, utf8BOM), nil
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder().Bytes(data)
	}
	return nil, fmt.Errorf("unknown encoding %q", enc)
}

// NormalizeNewlines rewrites CRLF and bare CR line endings to LF.
func NormalizeNewlines(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
}

// ToCarriageReturns rewrites CRLF line endings to a bare CR, the form in
// which downloaded schedules are stored locally.
func ToCarriageReturns(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\r"))
}
