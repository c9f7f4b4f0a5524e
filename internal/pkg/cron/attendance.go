package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
)

const DailyDigestJobName = "attendance_daily_digest"

// Digest is the per-status tally of one organization day.
type Digest struct {
	Date         time.Time
	Employees    int
	Counts       map[attendance.DayStatus]int
	LateArrivals int
	PenaltyMins  int
}

// AttendanceJobs computes a digest of the previous organization day once
// per date. Nothing is persisted; the digest is logged.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	settingSvc    setting.SettingService
	now           func() time.Time

	mu           sync.Mutex
	lastDigested time.Time
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, settingSvc setting.SettingService) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		settingSvc:    settingSvc,
		now:           time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) error {
	return scheduler.AddJob(DailyDigestJobName, interval, j.DailyDigest)
}

// DailyDigest digests yesterday in the organization time zone. A date that
// was already digested is skipped, so the job can tick more often than daily.
func (j *AttendanceJobs) DailyDigest(ctx context.Context) error {
	settings, err := j.settingSvc.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	yesterday := attendance.DateOf(j.now().In(settings.Loc())).AddDate(0, 0, -1)

	j.mu.Lock()
	done := !j.lastDigested.IsZero() && !yesterday.After(j.lastDigested)
	j.mu.Unlock()
	if done {
		return nil
	}

	digest, err := j.digest(ctx, yesterday)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.lastDigested = yesterday
	j.mu.Unlock()

	attrs := []any{
		"date", digest.Date.Format(validator.DateLayout),
		"employees", digest.Employees,
		"late_arrivals", digest.LateArrivals,
		"late_penalty_minutes", digest.PenaltyMins,
	}
	for status, count := range digest.Counts {
		attrs = append(attrs, string(status), count)
	}
	slog.Info("Cron: attendance digest", attrs...)
	return nil
}

func (j *AttendanceJobs) digest(ctx context.Context, date time.Time) (Digest, error) {
	day := date.Format(validator.DateLayout)
	records, err := j.attendanceSvc.ListDailyRecords(ctx, attendance.ListDailyRecordsRequest{
		StartDate: day,
		EndDate:   day,
	})
	if err != nil {
		return Digest{}, fmt.Errorf("failed to compute daily records for %s: %w", day, err)
	}

	digest := Digest{
		Date:   date,
		Counts: make(map[attendance.DayStatus]int),
	}
	for _, r := range records {
		digest.Employees++
		digest.Counts[r.Status]++
		if r.LateMinutes > 0 {
			digest.LateArrivals++
		}
		digest.PenaltyMins += r.LatePenaltyMinutes
	}
	return digest, nil
}
