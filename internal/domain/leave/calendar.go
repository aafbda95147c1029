package leave

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidDateRange = errors.New("end date before start date")

// DateOnly strips the time-of-day component, keeping the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaySpan returns the inclusive calendar-day count between start and
// end. start must not be after end; callers validate ranges first.
func DaySpan(start, end time.Time) (int, error) {
	s := DateOnly(start)
	e := DateOnly(end)
	if e.Before(s) {
		return 0, ErrInvalidDateRange
	}
	// Round absorbs DST-shortened or -lengthened days.
	return int(math.Round(e.Sub(s).Hours()/24)) + 1, nil
}

// DaysUntil returns the whole-day distance from `from` to `to`,
// negative when `to` is in the past.
func DaysUntil(from, to time.Time) int {
	return int(math.Round(DateOnly(to).Sub(DateOnly(from)).Hours() / 24))
}

// InCalendarYear reports whether the date falls in the given year.
func InCalendarYear(t time.Time, year int) bool {
	return t.Year() == year
}

// SameDate reports whether two timestamps fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// Overlaps is the inclusive-range intersection test: touching
// endpoints count as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOnly(aStart).After(DateOnly(bEnd)) && !DateOnly(aEnd).Before(DateOnly(bStart))
}
