package formatter

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/kiwisked/eibi2kiwi/converter"
	"github.com/kiwisked/eibi2kiwi/utils"
)

// KiwiColumns is the number of fields in a label CSV line.
const KiwiColumns = 12

// Column positions in a label CSV line.
const (
	KiwiColKHz   = 0
	KiwiColMode  = 1
	KiwiColIdent = 2
	KiwiColNotes = 3
	KiwiColClass = 5
	KiwiColDays  = 9
	KiwiColBegin = 10
	KiwiColEnd   = 11
)

// KiwiRow is a label CSV line read back for the JSON stage.
type KiwiRow struct {
	Line   int
	Fields []string
}

// KiwiFields renders a record as the 12 label CSV fields. Text fields are
// quoted, numbers and times are bare and the day letters are quoted only
// when a restriction exists.
func KiwiFields(rec converter.KiwiRecord) []string {
	days := rec.Days.Field()
	if days != "" {
		days = quote(days)
	}
	return []string{
		utils.FormatFloat(rec.KHz),
		quote(rec.Mode),
		quote(rec.Ident),
		quote(rec.Notes),
		"",
		quote(rec.Class),
		"",
		"",
		"",
		days,
		rec.Begin,
		rec.End,
	}
}

// WriteKiwiCSV writes one ";"-joined line per record, without a header.
func WriteKiwiCSV(w io.Writer, recs []converter.KiwiRecord) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		if _, err := bw.WriteString(strings.Join(KiwiFields(rec), ";")); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadKiwiCSV reads a label CSV. Quoting is removed; blank lines are skipped.
func ReadKiwiCSV(r io.Reader) ([]KiwiRow, error) {
	csvr := csv.NewReader(r)
	csvr.Comma = ';'
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true
	var rows []KiwiRow
	for {
		fields, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := csvr.FieldPos(0)
		rows = append(rows, KiwiRow{Line: line, Fields: fields})
	}
	return rows, nil
}

func quote(s string) string {
	return `"` + s + `"`
}
