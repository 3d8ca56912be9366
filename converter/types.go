package converter

import (
	"github.com/kiwisked/eibi2kiwi/eibi"
	"github.com/kiwisked/eibi2kiwi/weekday"
	"go.uber.org/zap"
)

// Classification tags understood by the KiwiSDR label format.
const (
	ClassSpoken = "T3"
	ClassOther  = "T4"
)

// DefaultMode is the mode column written for every label.
const DefaultMode = "QAM"

// UnknownDaysPolicy decides what happens to a row whose day field is not
// one of the known syntaxes.
type UnknownDaysPolicy string

const (
	// UnknownDaysKeep converts the row without a day restriction.
	UnknownDaysKeep UnknownDaysPolicy = "keep"
	// UnknownDaysSkip drops the row.
	UnknownDaysSkip UnknownDaysPolicy = "skip"
)

// Options contains everything the converter needs. It has no dependency
// on config files.
type Options struct {
	// Mode is written to the mode column. Defaults to DefaultMode.
	Mode string

	// Sites resolves transmitter site codes to location names.
	// Optional - without it relay sites are written as "via <site>".
	Sites eibi.Sites

	// SkipOneDay drops rows whose start and stop dates are equal.
	SkipOneDay bool

	// UnknownDays defaults to UnknownDaysKeep.
	UnknownDays UnknownDaysPolicy

	Logger *zap.Logger
}

// KiwiRecord is one label of the intermediate KiwiSDR CSV.
type KiwiRecord struct {
	Line  int // source line the record came from
	KHz   float64
	Mode  string
	Ident string
	Notes string
	Class string
	Days  weekday.Mask
	Begin string // HHMM
	End   string // HHMM
}

// Result is the outcome of converting a whole schedule.
type Result struct {
	Records []KiwiRecord
	Skipped []*RecordError
	OneDay  int // rows dropped as one-day entries
}
