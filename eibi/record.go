package eibi

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column positions in an EiBi schedule row.
const (
	ColKHz = iota
	ColTime
	ColDays
	ColITU
	ColStation
	ColLanguage
	ColTarget
	ColRemarks
	ColPersistence
	ColStart
	ColStop
)

// MinColumns is the number of columns a row needs to be converted.
const MinColumns = ColRemarks + 1

// Record is one schedule row, kept as text. Values are converted by the
// consumer so that a bad field can be reported against its line.
type Record struct {
	Line        int // 1-based line in the source file
	Columns     int // number of fields found on the line
	KHz         string
	Time        string
	Days        string
	ITU         string
	Station     string
	Language    string
	Target      string
	Remarks     string
	Persistence string
	Start       string
	Stop        string
}

// IsOneDay reports whether the row carries equal, non-empty start and stop
// dates, i.e. a single-day special broadcast.
func (r Record) IsOneDay() bool {
	return r.Start != "" && r.Start == r.Stop
}

// LoadFile reads and decodes a schedule file.
func LoadFile(path string, enc Encoding) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	recs, err := Load(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Load decodes raw schedule bytes and parses the rows.
func Load(data []byte, enc Encoding) ([]Record, error) {
	text, err := Decode(data, enc)
	if err != nil {
		return nil, err
	}
	return ReadRecords(bytes.NewReader(NormalizeNewlines(text)))
}

// ReadRecords parses UTF-8, newline separated schedule text. The first
// line is the header and is skipped.
func ReadRecords(r io.Reader) ([]Record, error) {
	csvr := newReader(r)
	if _, err := csvr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	var out []Record
	for {
		row, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := csvr.FieldPos(0)
		out = append(out, recordFromRow(line, row))
	}
	return out, nil
}

func recordFromRow(line int, row []string) Record {
	col := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Record{
		Line:        line,
		Columns:     len(row),
		KHz:         strings.TrimSpace(col(ColKHz)),
		Time:        strings.TrimSpace(col(ColTime)),
		Days:        col(ColDays),
		ITU:         col(ColITU),
		Station:     col(ColStation),
		Language:    col(ColLanguage),
		Target:      col(ColTarget),
		Remarks:     col(ColRemarks),
		Persistence: col(ColPersistence),
		Start:       strings.TrimSpace(col(ColStart)),
		Stop:        strings.TrimSpace(col(ColStop)),
	}
}

func newReader(r io.Reader) *csv.Reader {
	csvr := csv.NewReader(r)
	csvr.Comma = ';'
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true
	return csvr
}
