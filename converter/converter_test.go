package converter

import (
	"testing"

	"github.com/kiwisked/eibi2kiwi/eibi"
	"github.com/kiwisked/eibi2kiwi/weekday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func row(line int, khz, hours, days, lang, target, remarks string) eibi.Record {
	return eibi.Record{
		Line:     line,
		Columns:  11,
		KHz:      khz,
		Time:     hours,
		Days:     days,
		ITU:      "BUL",
		Station:  "Radio Example",
		Language: lang,
		Target:   target,
		Remarks:  remarks,
	}
}

func TestConvertRecordEndToEnd(t *testing.T) {
	conv := NewConverter(Options{})
	kr, err := conv.ConvertRecord(row(2, "9400", "0600-1800", "1345", "E", "", ""))
	require.NoError(t, err)

	assert.Equal(t, 9400.0, kr.KHz)
	assert.Equal(t, "QAM", kr.Mode)
	assert.Equal(t, "Radio Example", kr.Ident)
	assert.Equal(t, "M_WTF__", kr.Days.Field())
	assert.Equal(t, "0600", kr.Begin)
	assert.Equal(t, "1800", kr.End)
	assert.Equal(t, ClassSpoken, kr.Class)
	assert.Equal(t, "BUL. Lang: E", kr.Notes)
}

func TestConvertRecordNotes(t *testing.T) {
	sites := eibi.Sites{"USA": {"gr": "Greenville NC "}}
	tests := []struct {
		name     string
		sites    eibi.Sites
		target   string
		lang     string
		remarks  string
		expected string
	}{
		{name: "country only", expected: "BUL."},
		{name: "target and language", target: "Eu", lang: "E", expected: "BUL. Target: Eu. Lang: E"},
		{name: "target only", target: "Eu", expected: "BUL. Target: Eu."},
		{name: "relay site", remarks: "pl", lang: "E", expected: "BUL via pl. Lang: E"},
		{name: "relay with country", remarks: "/USA-gr", expected: "USA via gr."},
		{name: "resolved location", sites: sites, remarks: "/USA-gr", lang: "E", expected: "USA Greenville NC. Lang: E"},
		{name: "unknown location falls back", sites: sites, remarks: "/USA-ok", expected: "USA via ok."},
		{name: "padded fields", target: " Eu ", lang: " E ", expected: "BUL. Target: Eu. Lang: E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConverter(Options{Sites: tt.sites})
			kr, err := conv.ConvertRecord(row(2, "6000", "0100-0200", "", tt.lang, tt.target, tt.remarks))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kr.Notes)
		})
	}
}

func TestConvertRecordClampsMidnight(t *testing.T) {
	kr, err := NewConverter(Options{}).ConvertRecord(row(2, "6000", "0000-2400", "", "E", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "0001", kr.Begin)
	assert.Equal(t, "2359", kr.End)
	assert.True(t, kr.Days.IsEmpty())
}

func TestConvertRecordErrors(t *testing.T) {
	tests := []struct {
		name  string
		rec   eibi.Record
		field string
	}{
		{name: "bad frequency", rec: row(5, "94OO", "0600-1800", "", "E", "", ""), field: "kHz"},
		{name: "bad time range", rec: row(5, "9400", "0600", "", "E", "", ""), field: "time"},
		{name: "short time", rec: row(5, "9400", "600-1800", "", "E", "", ""), field: "time"},
		{name: "bad range endpoint", rec: row(5, "9400", "0600-1800", "Mo-Xx", "E", "", ""), field: "days"},
		{name: "bad list token", rec: row(5, "9400", "0600-1800", "Mo,Xy", "E", "", ""), field: "days"},
		{name: "bad day number", rec: row(5, "9400", "0600-1800", "18", "E", "", ""), field: "days"},
		{name: "too few columns", rec: eibi.Record{Line: 5, Columns: 3, KHz: "9400"}, field: "columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConverter(Options{}).ConvertRecord(tt.rec)
			var recErr *RecordError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, 5, recErr.Line)
			assert.Equal(t, tt.field, recErr.Field)
		})
	}
}

func TestConvertRecordUnknownDays(t *testing.T) {
	rec := row(7, "9400", "0600-1800", "irr", "E", "", "")

	kr, err := NewConverter(Options{UnknownDays: UnknownDaysKeep}).ConvertRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "", kr.Days.Field())

	_, err = NewConverter(Options{UnknownDays: UnknownDaysSkip}).ConvertRecord(rec)
	assert.ErrorIs(t, err, weekday.ErrUnrecognized)
}

func TestConvertDoesNotCarryDaysOver(t *testing.T) {
	res := NewConverter(Options{}).Convert([]eibi.Record{
		row(2, "6000", "0600-1800", "Mo-Fr", "E", "", ""),
		row(3, "6010", "0600-1800", "irr", "E", "", ""),
	})
	require.Len(t, res.Records, 2)
	assert.Equal(t, "MTWTF__", res.Records[0].Days.Field())
	assert.Equal(t, "", res.Records[1].Days.Field())
}

func TestConvertSkipsInvalidDaysUnderKeepPolicy(t *testing.T) {
	res := NewConverter(Options{UnknownDays: UnknownDaysKeep}).Convert([]eibi.Record{
		row(2, "6000", "0600-1800", "Mo,Xy", "E", "", ""),
		row(3, "6010", "0600-1800", "18", "E", "", ""),
		row(4, "6020", "0600-1800", "Mo-Xy", "E", "", ""),
		row(5, "6030", "0600-1800", "irr", "E", "", ""),
	})

	require.Len(t, res.Records, 1)
	assert.Equal(t, 5, res.Records[0].Line)
	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 2, res.Skipped[0].Line)
	assert.ErrorIs(t, res.Skipped[0], weekday.ErrInvalidDay)
	assert.ErrorIs(t, res.Skipped[1], weekday.ErrInvalidDay)
	assert.ErrorIs(t, res.Skipped[2], weekday.ErrInvalidRange)
}

func TestConvertSortsAndSkips(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	oneDay := row(6, "7000", "0600-0700", "", "E", "", "")
	oneDay.Start, oneDay.Stop = "1225", "1225"

	conv := NewConverter(Options{SkipOneDay: true, Logger: zap.New(core)})
	res := conv.Convert([]eibi.Record{
		row(2, "15070", "0600-1800", "", "E", "", ""),
		row(3, "9400", "0600-1800", "", "E", "", ""),
		row(4, "9400.5", "0600-1800", "", "-CW", "", ""),
		row(5, "bogus", "0600-1800", "", "E", "", ""),
		oneDay,
		row(7, "9400", "1900-2000", "Sa", "E", "", ""),
	})

	require.Len(t, res.Records, 4)
	var freqs []float64
	for _, r := range res.Records {
		freqs = append(freqs, r.KHz)
	}
	assert.Equal(t, []float64{9400, 9400, 9400.5, 15070}, freqs)
	assert.Equal(t, 3, res.Records[0].Line, "equal frequencies keep source order")
	assert.Equal(t, 7, res.Records[1].Line)
	assert.Equal(t, ClassOther, res.Records[2].Class)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 5, res.Skipped[0].Line)
	assert.Equal(t, 1, res.OneDay)
	assert.Equal(t, 1, logs.FilterMessage("skipping schedule row").Len())
}

func TestOneDayKeptWhenNotSkipping(t *testing.T) {
	rec := row(2, "7000", "0600-0700", "", "E", "", "")
	rec.Start, rec.Stop = "1225", "1225"
	_, err := NewConverter(Options{}).ConvertRecord(rec)
	assert.NoError(t, err)
}
