package attendance

import (
	"time"
)

// DateOf truncates t to its civil date, expressed as midnight UTC. Every date
// the engine stores or compares uses this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Period is an inclusive range of civil dates.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) DayCount() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Days lists every date in the period in ascending order.
func (p Period) Days() []time.Time {
	days := make([]time.Time, 0, p.DayCount())
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Clip intersects the period with [start, end]. ok is false when the result is
// empty.
func (p Period) Clip(start, end time.Time) (Period, bool) {
	clipped := p
	if s := DateOf(start); s.After(clipped.Start) {
		clipped.Start = s
	}
	if e := DateOf(end); e.Before(clipped.End) {
		clipped.End = e
	}
	return clipped, !clipped.End.Before(clipped.Start)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// cycleDay returns the start day of the cycle within the given month, with
// cycleStartDay already clamped to 1..31.
func cycleDay(year int, month time.Month, cycleStartDay int) time.Time {
	day := min(cycleStartDay, daysIn(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// PeriodFor returns the payroll period enclosing ref for a cycle starting on
// cycleStartDay of each month. Start days past the end of a short month fall
// on that month's last day.
func PeriodFor(ref time.Time, cycleStartDay int) Period {
	c := max(1, min(cycleStartDay, 31))
	ref = DateOf(ref)
	y, m, _ := ref.Date()

	start := cycleDay(y, m, c)
	if ref.Before(start) {
		prev := time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
		start = cycleDay(prev.Year(), prev.Month(), c)
	}

	next := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	nextStart := cycleDay(next.Year(), next.Month(), c)

	return Period{Start: start, End: nextStart.AddDate(0, 0, -1)}
}

// PeriodForMonth returns the payroll period named by a calendar month, which
// is the one containing that month's first day.
func PeriodForMonth(year int, month time.Month, cycleStartDay int) Period {
	return PeriodFor(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), cycleStartDay)
}
