package eibi

import (
	"fmt"
	"strings"
	"time"
)

// Season identifies a half-year EiBi schedule period.
type Season struct {
	Period byte // 'A' or 'B'
	Year   int  // year the period started
}

// LastSunday returns the last Sunday of the given month.
func LastSunday(year int, month time.Month) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return last.AddDate(0, 0, -int(last.Weekday()))
}

// SeasonFor returns the season in effect on the calendar date of t.
func SeasonFor(t time.Time) Season {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	aStart := LastSunday(day.Year(), time.March)
	aEnd := LastSunday(day.Year(), time.October)
	switch {
	case day.Before(aStart):
		return Season{Period: 'B', Year: day.Year() - 1}
	case !day.After(aEnd):
		return Season{Period: 'A', Year: day.Year()}
	}
	return Season{Period: 'B', Year: day.Year()}
}

// Start returns the first day of the season.
func (s Season) Start() time.Time {
	if s.Period == 'A' {
		return LastSunday(s.Year, time.March)
	}
	return LastSunday(s.Year, time.October).AddDate(0, 0, 1)
}

// End returns the last day of the season.
func (s Season) End() time.Time {
	if s.Period == 'A' {
		return LastSunday(s.Year, time.October)
	}
	return LastSunday(s.Year+1, time.March).AddDate(0, 0, -1)
}

// Label returns the short season name, e.g. "A25".
func (s Season) Label() string {
	return fmt.Sprintf("%c%02d", s.Period, s.Year%100)
}

// Filename returns the schedule file name, e.g. "sked-a25.csv".
func (s Season) Filename() string {
	return "sked-" + strings.ToLower(s.Label()) + ".csv"
}

func (s Season) String() string {
	return fmt.Sprintf("%s (%s..%s)", s.Label(), s.Start().Format(time.DateOnly), s.End().Format(time.DateOnly))
}
