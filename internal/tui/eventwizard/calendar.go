package eventwizard

import (
	"fmt"
	"time"

	"github.com/gatherly/organizer/internal/event"
)

// monthWeeks lays a month out as rows of seven cells, Monday first.
// Padding cells outside the month are empty.
func monthWeeks(year int, month time.Month) [][7]event.Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	// Weekday of the first, shifted so Monday is column 0.
	col := (int(first.Weekday()) + 6) % 7

	var weeks [][7]event.Date
	var week [7]event.Date
	for day := 1; day <= days; day++ {
		week[col] = event.Date(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]event.Date{}
			col = 0
		}
	}
	if col != 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// shiftMonth moves a year/month pair by delta months.
func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// cursorStart picks the initial cursor for a month: today when the
// month is the current one, otherwise the first of the month.
func cursorStart(year int, month time.Month, now time.Time) event.Date {
	if now.Year() == year && now.Month() == month {
		return event.Date(now.Format("2006-01-02"))
	}
	return event.Date(fmt.Sprintf("%04d-%02d-01", year, int(month)))
}

// moveCursor shifts the cursor by days, clamped to the month shown.
// The second return reports a month change the caller should follow.
func moveCursor(cursor event.Date, days int, year int, month time.Month) (event.Date, int) {
	t := cursor.Time().AddDate(0, 0, days)
	switch {
	case t.Year() < year || (t.Year() == year && t.Month() < month):
		return cursor, -1
	case t.Year() > year || (t.Year() == year && t.Month() > month):
		return cursor, +1
	default:
		return event.Date(t.Format("2006-01-02")), 0
	}
}
