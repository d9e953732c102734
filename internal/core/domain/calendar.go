package domain

import "time"

// CivilDate strips the clock from t and returns midnight UTC of the calendar
// day t falls on in its own location. Ledger dates and campaign flight dates
// are stored this way.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first civil day of the month containing t.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last civil day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	return CivilDate(a).Equal(CivilDate(b))
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// Weekday returns the day of week of t with Monday as 0 and Sunday as 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DailyResetDue reports whether a daily cycle opened at start has ended by
// now. start is read in the location of now; a zero start is always due.
func DailyResetDue(start, now time.Time) bool {
	return start.IsZero() || !SameDay(start.In(now.Location()), now)
}

// MonthlyResetDue is DailyResetDue for monthly cycles.
func MonthlyResetDue(start, now time.Time) bool {
	return start.IsZero() || !SameMonth(start.In(now.Location()), now)
}
