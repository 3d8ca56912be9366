// Package converter turns EiBi schedule rows into KiwiSDR label records.
//
// This package provides the CSV-stage conversion: it combines the EiBi
// rows (eibi.Record), the optional transmitter site table (eibi.Sites) and
// the weekday encoder (weekday) into KiwiRecord values ready for the
// formatter package.
//
// # Usage
//
//	recs, _ := eibi.LoadFile("sked-a25.csv", eibi.EncodingAuto)
//	sites, _ := eibi.LoadSitesFile("eibisites.csv", eibi.EncodingAuto, logger)
//
//	conv := converter.NewConverter(converter.Options{
//	    Sites:      sites,
//	    SkipOneDay: true,
//	    Logger:     logger,
//	})
//	res := conv.Convert(recs)
//	_ = formatter.WriteKiwiCSV(out, res.Records)
//
// # Per-row rules
//
//   - Frequency is parsed as decimal kHz.
//   - "HHMM-HHMM" is split in two; "0000" begins at "0001" and "2400"
//     ends at "2359".
//   - The day field is encoded by weekday.ParseMask. Unknown day syntax
//     either drops the restriction (UnknownDaysKeep) or the row
//     (UnknownDaysSkip); a range with an unknown endpoint always drops the row.
//   - The classification tag is "T4" for empty or "-" prefixed languages,
//     "T3" otherwise.
//   - Notes read "<itu>[ <location>| via <site>]. [Target: <t>.] [Lang: <l>]".
//
// Rows that fail are reported as *RecordError and skipped; the rest of
// the schedule is still converted. The result is sorted by frequency,
// keeping source order for equal frequencies.
package converter
