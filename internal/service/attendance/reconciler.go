package attendance

import (
	"sort"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
)

// singlePunchCutoffHour splits a lone punch into a sign-in (before) or a
// sign-out (at or after).
const singlePunchCutoffHour = 13

// Reconcile reduces one employee's punches for one day to a time in and a
// time out. With two or more punches the earliest and latest are used and
// anything between is ignored.
func Reconcile(punches []attendance.RawPunch) (timeIn, timeOut *time.Time) {
	if len(punches) == 0 {
		return nil, nil
	}

	times := make([]time.Time, len(punches))
	for i, p := range punches {
		times[i] = p.PunchedAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	if len(times) == 1 {
		t := times[0]
		if beforeCutoff(t) {
			return &t, nil
		}
		return nil, &t
	}

	first, last := times[0], times[len(times)-1]
	return &first, &last
}

func beforeCutoff(t time.Time) bool {
	y, m, d := t.Date()
	return t.Before(time.Date(y, m, d, singlePunchCutoffHour, 0, 0, 0, t.Location()))
}

// impliedSource is the side a punch stands for. Device punches without a
// source fall on the side of the single-punch cutoff.
func impliedSource(p attendance.RawPunch) attendance.PunchSource {
	if p.Source != attendance.PunchSourceUnspecified && p.Source != "" {
		return p.Source
	}
	if beforeCutoff(p.PunchedAt) {
		return attendance.PunchSourceSignIn
	}
	return attendance.PunchSourceSignOut
}
