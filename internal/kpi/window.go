package kpi

import "time"

const day = 24 * time.Hour

// anchor tracks the newest observed date. There is no wall-clock "now":
// uploads are historical snapshots, so every window is relative to the data.
type anchor struct {
	at time.Time
	ok bool
}

func (a *anchor) observe(t time.Time) {
	if !a.ok || t.After(a.at) {
		a.at = t
		a.ok = true
	}
}

// ageDays is the distance from t back to the anchor, in fractional days.
func (a anchor) ageDays(t time.Time) float64 {
	return float64(a.at.Sub(t)) / float64(day)
}

// inCurrent reports whether t falls in [anchor-days, anchor].
func (a anchor) inCurrent(t time.Time, days int) bool {
	age := a.ageDays(t)
	return a.ok && age >= 0 && age <= float64(days)
}

// inPrior reports whether t falls in the window immediately before the current one.
func (a anchor) inPrior(t time.Time, days int) bool {
	age := a.ageDays(t)
	return a.ok && age > float64(days) && age <= float64(2*days)
}

// dated is one measure observed at a point in time, kept for pass 2.
type dated struct {
	at    time.Time
	value float64
}

// windowSums splits dated values into current and prior window totals.
func windowSums(a anchor, points []dated, days int) (current, prior float64) {
	for _, p := range points {
		switch {
		case a.inCurrent(p.at, days):
			current += p.value
		case a.inPrior(p.at, days):
			prior += p.value
		}
	}
	return current, prior
}

// monthKey buckets a date into its calendar month.
func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// isoWeekStart returns the Monday that opens t's ISO week.
func isoWeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
