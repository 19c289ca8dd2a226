package query

import (
	"fmt"
	"time"

	"github.com/solarwork/crewledger/internal/model"
)

// Named date-range shorthands, resolved against the local calendar.
const (
	RangeAll       = "all"
	RangeToday     = "today"
	RangeThisWeek  = "this_week" // Monday through Sunday
	RangeThisMonth = "this_month"
)

// ResolveRange translates a named shorthand into concrete inclusive
// DateFrom/DateTo bounds relative to now. RangeAll (or "") leaves the
// filter unbounded.
func ResolveRange(name string, now time.Time) (from, to int64, err error) {
	startOfDay := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	endOfDay := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	}

	switch name {
	case RangeAll, "":
		return 0, 0, nil
	case RangeToday:
		return model.Millis(startOfDay(now)), model.Millis(endOfDay(now)), nil
	case RangeThisWeek:
		// time.Weekday has Sunday == 0; the week starts on Monday.
		offset := int(now.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		monday := startOfDay(now.AddDate(0, 0, -offset))
		sunday := endOfDay(monday.AddDate(0, 0, 6))
		return model.Millis(monday), model.Millis(sunday), nil
	case RangeThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := endOfDay(first.AddDate(0, 1, -1))
		return model.Millis(first), model.Millis(last), nil
	default:
		return 0, 0, fmt.Errorf("unknown date range %q", name)
	}
}
