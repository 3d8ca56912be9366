/*
Package eibi loads EiBi shortwave schedules (http://www.eibispace.de).

The package is data-source agnostic at its core: Load and ReadRecords accept
raw bytes or an io.Reader and return the schedule rows. Client is a helper
that downloads the seasonal file with a bounded retry loop.

# Basic Usage

Load a local file:

	recs, err := eibi.LoadFile("sked-a25.csv", eibi.EncodingAuto)
	if err != nil {
	    log.Fatal(err)
	}
	for _, r := range recs {
	    fmt.Println(r.KHz, r.Time, r.Days, r.Station)
	}

Fetch the current season:

	season := eibi.SeasonFor(time.Now())
	client := eibi.NewClient(eibi.ClientOptions{Logger: logger})
	err := client.Download(ctx, season.Filename(), season.Filename(), eibi.EncodingAuto)

# File Format

Schedule files are semicolon separated with one header line:

	kHz:75;Time(UTC):93;Days:59;ITU:49;Station:201;Lng:49;Target:62;Remarks:135;P:35;Start:60;Stop:60;
	9400;0600-1800;1345;BUL;Radio Example;E;Eu;/BUL-pl;1;;

The published files are Latin-1 encoded. Load decodes them to UTF-8 and
accepts CRLF, LF and bare CR line endings.

# Seasons

Season A runs from the last Sunday of March to the last Sunday of October,
season B from there to the last Sunday of March of the next year. The file
for a season is named after the year it started: sked-a25.csv, sked-b25.csv.

# Sites

The sites table (eibisites.csv) maps a country code and a transmitter site
code to a location name. Rows with the wrong number of fields are reported
and skipped.
*/
package eibi
