package formatter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/kiwisked/eibi2kiwi/converter"
	"github.com/kiwisked/eibi2kiwi/utils"
	"github.com/kiwisked/eibi2kiwi/weekday"
	"go.uber.org/zap"
)

// Metadata keys of the JSON label format.
const (
	MarkerKey = "T3"
	BeginKey  = "b0"
	EndKey    = "e0"
	DaysKey   = "d0"
)

// Metadata is the trailing object of a JSON label. Nil fields are omitted;
// the marker key is always present.
type Metadata struct {
	Begin *int
	End   *int
	Days  *int
}

// MarshalJSON writes the keys in the fixed order T3, b0, e0, d0.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"` + MarkerKey + `":1`)
	for _, kv := range []struct {
		key string
		val *int
	}{{BeginKey, m.Begin}, {EndKey, m.End}, {DaysKey, m.Days}} {
		if kv.val == nil {
			continue
		}
		fmt.Fprintf(&b, `,"%s":%d`, kv.key, *kv.val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// JSONEntry is one label: [kHz, band, station, notes, metadata].
type JSONEntry struct {
	KHz     float64
	Band    string
	Station string // percent-encoded
	Notes   string // percent-encoded
	Meta    Metadata
}

// MarshalJSON writes the entry as a 5-element array.
func (e JSONEntry) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	b.WriteString(utils.FormatFloat(e.KHz))
	for _, s := range []string{e.Band, e.Station, e.Notes} {
		b.WriteByte(',')
		enc, err := marshalString(s)
		if err != nil {
			return nil, err
		}
		b.Write(enc)
	}
	b.WriteByte(',')
	meta, err := e.Meta.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b.Write(meta)
	b.WriteByte(']')
	return b.Bytes(), nil
}

// EntryFromRow builds a JSON label from a label CSV line.
func EntryFromRow(row KiwiRow) (JSONEntry, error) {
	f := row.Fields
	if len(f) < KiwiColumns {
		return JSONEntry{}, &converter.RecordError{
			Line:  row.Line,
			Field: "columns",
			Value: strconv.Itoa(len(f)),
			Err:   errors.New("too few columns"),
		}
	}
	khz, err := strconv.ParseFloat(strings.TrimSpace(f[KiwiColKHz]), 64)
	if err != nil {
		return JSONEntry{}, &converter.RecordError{Line: row.Line, Field: "kHz", Value: f[KiwiColKHz], Err: err}
	}
	entry := JSONEntry{
		KHz:     utils.RoundTo(khz, 2),
		Band:    unquote(f[KiwiColMode]),
		Station: PercentEncode(unquote(f[KiwiColIdent])),
		Notes:   PercentEncode(unquote(f[KiwiColNotes])),
	}

	begin, err := offset(row, KiwiColBegin, "begin")
	if err != nil {
		return JSONEntry{}, err
	}
	end, err := offset(row, KiwiColEnd, "end")
	if err != nil {
		return JSONEntry{}, err
	}
	zero := 0
	switch {
	case begin != nil && end == nil:
		end = &zero
	case begin == nil && end != nil:
		begin = &zero
	}
	entry.Meta.Begin, entry.Meta.End = begin, end

	if days := strings.TrimSpace(f[KiwiColDays]); days != "" {
		v, err := weekday.LettersToInt(days)
		if err != nil {
			return JSONEntry{}, &converter.RecordError{Line: row.Line, Field: "days", Value: days, Err: err}
		}
		entry.Meta.Days = &v
	}
	return entry, nil
}

// BuildEntries converts every row, skipping and reporting the ones that fail.
func BuildEntries(rows []KiwiRow, logger *zap.Logger) ([]JSONEntry, []*converter.RecordError) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries := make([]JSONEntry, 0, len(rows))
	var skipped []*converter.RecordError
	for _, row := range rows {
		e, err := EntryFromRow(row)
		if err != nil {
			var recErr *converter.RecordError
			if !errors.As(err, &recErr) {
				recErr = &converter.RecordError{Line: row.Line, Field: "row", Err: err}
			}
			logger.Warn("skipping label row", zap.Error(recErr))
			skipped = append(skipped, recErr)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped
}

// WriteJSON writes {"<label>":[ ... ]} with one entry per line. Output is
// pure ASCII: other characters are written as \u escapes.
func WriteJSON(w io.Writer, label string, entries []JSONEntry) error {
	bw := bufio.NewWriter(w)
	key, err := marshalString(label)
	if err != nil {
		return err
	}
	bw.WriteString("{")
	bw.Write(asciiEscape(key))
	bw.WriteString(":[\n")
	for i, e := range entries {
		line, err := e.MarshalJSON()
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		bw.Write(asciiEscape(line))
		if i < len(entries)-1 {
			bw.WriteString(",\n")
		}
	}
	bw.WriteString("\n]}\n")
	return bw.Flush()
}

func offset(row KiwiRow, col int, field string) (*int, error) {
	raw := row.Fields[col]
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(raw, "'", "")))
	if err != nil {
		return nil, &converter.RecordError{Line: row.Line, Field: field, Value: raw, Err: err}
	}
	return &v, nil
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

// asciiEscape replaces every non-ASCII rune of encoded JSON with a \u
// escape, using surrogate pairs outside the basic plane.
func asciiEscape(data []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			b.WriteByte(byte(r))
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.Bytes()
}
