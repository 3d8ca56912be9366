package converter

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/kiwisked/eibi2kiwi/eibi"
	"github.com/kiwisked/eibi2kiwi/weekday"
	"go.uber.org/zap"
)

// Converter turns EiBi rows into KiwiSDR label records.
type Converter struct {
	opts   Options
	logger *zap.Logger
}

// NewConverter creates a new converter instance
func NewConverter(opts Options) *Converter {
	if opts.Mode == "" {
		opts.Mode = DefaultMode
	}
	if opts.UnknownDays == "" {
		opts.UnknownDays = UnknownDaysKeep
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{opts: opts, logger: logger}
}

// Convert converts every row, skipping and reporting the ones that fail,
// and returns the records sorted by frequency.
func (c *Converter) Convert(recs []eibi.Record) Result {
	res := Result{Records: make([]KiwiRecord, 0, len(recs))}
	for _, rec := range recs {
		kr, err := c.ConvertRecord(rec)
		if err == nil {
			res.Records = append(res.Records, kr)
			continue
		}
		if errors.Is(err, ErrOneDay) {
			res.OneDay++
			continue
		}
		var recErr *RecordError
		if !errors.As(err, &recErr) {
			recErr = &RecordError{Line: rec.Line, Field: "row", Err: err}
		}
		c.logger.Warn("skipping schedule row", zap.Error(recErr))
		res.Skipped = append(res.Skipped, recErr)
	}
	SortByFrequency(res.Records)
	return res
}

// ConvertRecord converts a single row. Each call starts from a clean state;
// nothing carries over from earlier rows.
func (c *Converter) ConvertRecord(rec eibi.Record) (KiwiRecord, error) {
	if rec.Columns < eibi.MinColumns {
		return KiwiRecord{}, &RecordError{
			Line:  rec.Line,
			Field: "columns",
			Value: strconv.Itoa(rec.Columns),
			Err:   errors.New("too few columns"),
		}
	}
	if c.opts.SkipOneDay && rec.IsOneDay() {
		return KiwiRecord{}, ErrOneDay
	}

	khz, err := strconv.ParseFloat(rec.KHz, 64)
	if err != nil {
		return KiwiRecord{}, &RecordError{Line: rec.Line, Field: "kHz", Value: rec.KHz, Err: err}
	}
	begin, end, err := SplitTimeRange(rec.Time)
	if err != nil {
		return KiwiRecord{}, &RecordError{Line: rec.Line, Field: "time", Value: rec.Time, Err: err}
	}
	days, err := c.days(rec)
	if err != nil {
		return KiwiRecord{}, err
	}

	lang := strings.TrimSpace(rec.Language)
	itu, site := ResolveRelay(rec.ITU, rec.Remarks)
	return KiwiRecord{
		Line:  rec.Line,
		KHz:   khz,
		Mode:  c.opts.Mode,
		Ident: rec.Station,
		Notes: c.notes(itu, site, strings.TrimSpace(rec.Target), lang),
		Class: Classify(lang),
		Days:  days,
		Begin: begin,
		End:   end,
	}, nil
}

func (c *Converter) days(rec eibi.Record) (weekday.Mask, error) {
	mask, err := weekday.ParseMask(rec.Days)
	if err == nil {
		return mask, nil
	}
	recErr := &RecordError{Line: rec.Line, Field: "days", Value: rec.Days, Err: err}
	if !errors.Is(err, weekday.ErrUnrecognized) || c.opts.UnknownDays == UnknownDaysSkip {
		return 0, recErr
	}
	c.logger.Warn("dropping unrecognized day restriction", zap.Error(recErr))
	return 0, nil
}

func (c *Converter) notes(itu, site, target, lang string) string {
	head := itu
	if name, ok := c.opts.Sites.Lookup(itu, site); ok && site != "" {
		head += " " + strings.TrimSpace(name)
	} else if site != "" {
		head += " via " + site
	}
	parts := []string{head + "."}
	if target != "" {
		parts = append(parts, "Target: "+target+".")
	}
	if lang != "" {
		parts = append(parts, "Lang: "+lang)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// SortByFrequency orders records by numeric frequency, keeping the input
// order of records on the same frequency.
func SortByFrequency(recs []KiwiRecord) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].KHz < recs[j].KHz })
}
