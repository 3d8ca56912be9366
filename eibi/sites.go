package eibi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Sites maps country code -> site code -> location name.
type Sites map[string]map[string]string

// SiteError reports a sites row that does not have exactly three fields.
type SiteError struct {
	Line   int
	Fields []string
}

func (e *SiteError) Error() string {
	return fmt.Sprintf("sites line %d: want 3 fields, got %d: %q", e.Line, len(e.Fields), strings.Join(e.Fields, ";"))
}

// Lookup returns the location name for a site in a country.
func (s Sites) Lookup(itu, site string) (string, bool) {
	name, ok := s[itu][site]
	return name, ok
}

// Len returns the number of sites in the table.
func (s Sites) Len() int {
	n := 0
	for _, m := range s {
		n += len(m)
	}
	return n
}

// DefaultSitesFile is the sites table published next to the schedules.
const DefaultSitesFile = "eibisites.csv"

// LoadSitesFile reads a sites table from disk.
func LoadSitesFile(path string, enc Encoding, logger *zap.Logger) (Sites, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ReadSites(bytes.NewReader(NormalizeNewlines(text)), logger)
}

// ReadSites parses "country;site;name" rows. Malformed rows are logged and
// skipped; only read errors are returned.
func ReadSites(r io.Reader, logger *zap.Logger) (Sites, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	csvr := newReader(r)
	sites := Sites{}
	for {
		row, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := csvr.FieldPos(0)
		if len(row) != 3 {
			logger.Warn("skipping malformed sites row", zap.Error(&SiteError{Line: line, Fields: row}))
			continue
		}
		itu, site, name := row[0], row[1], strings.TrimSpace(row[2])
		if sites[itu] == nil {
			sites[itu] = map[string]string{}
		}
		sites[itu][site] = name
	}
	return sites, nil
}
