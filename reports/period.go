package reports

import (
	"fmt"
	"strings"
	"time"
)

type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
)

func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case Day, Week, Month:
		return u, nil
	default:
		return "", fmt.Errorf("invalid period unit: %q", s)
	}
}

// Range is a closed interval at millisecond resolution: End is the last
// millisecond of the period, and anything inside that millisecond still
// belongs to it.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End.Add(time.Millisecond))
}

const endOfDayNanos = 999 * int(time.Millisecond)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, endOfDayNanos, t.Location())
}

// PeriodRange returns the day, week (Monday based) or month that is offset
// units away from the one containing now, in now's location.
func PeriodRange(unit Unit, offset int, now time.Time) Range {
	year, month, day := now.Date()
	loc := now.Location()

	switch unit {
	case Day:
		start := time.Date(year, month, day+offset, 0, 0, 0, 0, loc)
		return Range{Start: start, End: endOfDay(start)}
	case Week:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(year, month, day-(weekday-1)+offset*7, 0, 0, 0, 0, loc)
		end := time.Date(start.Year(), start.Month(), start.Day()+6, 0, 0, 0, 0, loc)
		return Range{Start: start, End: endOfDay(end)}
	case Month:
		start := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, loc)
		// day 0 of the following month is the last day of this one
		last := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, loc)
		return Range{Start: start, End: endOfDay(last)}
	default:
		panic(fmt.Sprintf("reports: unknown period unit %q", unit))
	}
}

var (
	monthNames = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	weekdayNames = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
)

func shortMonth(m time.Month) string {
	return monthNames[m-1][:3] + "."
}

// RangeLabel renders the navigation label shown above a report.
func RangeLabel(unit Unit, r Range) string {
	switch unit {
	case Day:
		return fmt.Sprintf("%s, %d de %s", weekdayNames[r.Start.Weekday()], r.Start.Day(), monthNames[r.Start.Month()-1])
	case Week:
		return fmt.Sprintf("%d - %d %s", r.Start.Day(), r.End.Day(), shortMonth(r.End.Month()))
	default:
		return fmt.Sprintf("%s de %d", monthNames[r.Start.Month()-1], r.Start.Year())
	}
}
