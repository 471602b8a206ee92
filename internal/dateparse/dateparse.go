// Package dateparse computes the day window a schedule is fetched for.
package dateparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// SecondsPerDay is the shift applied per day of offset.
const SecondsPerDay = 24 * 60 * 60

// ErrDateParse is returned for day offsets or dates that cannot be parsed.
var ErrDateParse = errors.New("could not parse date")

// Selector picks the day relative to today. At most one field is expected to
// be set; when several are, the first in field order wins.
type Selector struct {
	Tomorrow  bool
	Yesterday bool
	Future    string // whole days ahead
	Past      string // whole days back
	Date      string // natural language or ISO 8601 date
}

// Offset returns the signed number of days the selector moves away from the
// day of now.
func (s Selector) Offset(now time.Time) (int64, error) {
	switch {
	case s.Tomorrow:
		return 1, nil
	case s.Yesterday:
		return -1, nil
	case s.Future != "":
		n, err := strconv.ParseInt(strings.TrimSpace(s.Future), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: days in the future %q", ErrDateParse, s.Future)
		}
		return n, nil
	case s.Past != "":
		n, err := strconv.ParseInt(strings.TrimSpace(s.Past), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: days in the past %q", ErrDateParse, s.Past)
		}
		return -n, nil
	case s.Date != "":
		t, err := Parse(s.Date, now)
		if err != nil {
			return 0, err
		}
		return DaysBetween(now, t), nil
	default:
		return 0, nil
	}
}

// Window returns the first and last second of today shifted by offset days.
// The shift is a fixed SecondsPerDay per day, not a calendar step. Offsets
// outside what Range accepts wrap around.
func Window(now time.Time, offset int64) (start, end time.Time) {
	shift := offset * SecondsPerDay
	loc := now.Location()
	start = time.Unix(StartOfDay(now).Unix()+shift, 0).In(loc)
	end = time.Unix(EndOfDay(now).Unix()+shift, 0).In(loc)
	return start, end
}

// Range is Window with the offset taken from sel. Offsets whose window would
// not fit in int64 Unix seconds are rejected.
func Range(now time.Time, sel Selector) (start, end time.Time, err error) {
	offset, err := sel.Offset(now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !fitsWindow(now, offset) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days is out of range", ErrDateParse, offset)
	}
	start, end = Window(now, offset)
	return start, end, nil
}

func fitsWindow(now time.Time, offset int64) bool {
	if offset > math.MaxInt64/SecondsPerDay || offset < math.MinInt64/SecondsPerDay {
		return false
	}
	shift := offset * SecondsPerDay
	base := StartOfDay(now).Unix()
	if shift > 0 {
		return base <= math.MaxInt64-SecondsPerDay-shift
	}
	return base >= math.MinInt64-shift
}

// Parse parses a date string which can be:
// - Natural language: "today", "tomorrow", "next monday", "in 3 days", etc.
// - ISO 8601 date: "2025-01-15"
// - ISO 8601 datetime: "2025-01-15T09:00:00"
//
// The reference time is used for relative expressions (e.g., "tomorrow" is relative to ref).
// If ref is zero, time.Now() is used.
func Parse(s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date string", ErrDateParse)
	}

	if ref.IsZero() {
		ref = time.Now()
	}

	// Try ISO 8601 datetime first
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(ref.Location()), nil
	}

	// Try ISO 8601 datetime without timezone
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, ref.Location()); err == nil {
		return t, nil
	}

	// Try ISO 8601 date only (midnight local time)
	if t, err := time.ParseInLocation("2006-01-02", s, ref.Location()); err == nil {
		return t, nil
	}

	t, err := naturaldate.Parse(s, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrDateParse, s, err)
	}

	// naturaldate returns ref unchanged for input it does not understand.
	if t.Equal(ref) && !strings.EqualFold(s, "now") && !strings.EqualFold(s, "today") {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, s)
	}

	return t, nil
}

// DaysBetween returns the number of calendar days from the day of a to the
// day of b, in a's location.
func DaysBetween(a, b time.Time) int64 {
	b = b.In(a.Location())
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return (to.Unix() - from.Unix()) / SecondsPerDay
}

// StartOfDay returns the start of day (midnight) for the given time.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last whole second of the day (23:59:59) for the given time.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
