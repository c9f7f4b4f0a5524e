package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/repository/memory"
	settingsvc "github.com/samerkamel/aura-sub004/internal/service/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	requests []attendance.ListDailyRecordsRequest
	records  []attendance.DailyRecordResponse
	err      error
}

func (s *stubAttendanceService) ListDailyRecords(_ context.Context, req attendance.ListDailyRecordsRequest) ([]attendance.DailyRecordResponse, error) {
	s.requests = append(s.requests, req)
	return s.records, s.err
}

func newTestJobs(t *testing.T, stub *stubAttendanceService, now time.Time) *AttendanceJobs {
	t.Helper()
	store := memory.NewStore()
	settings := settingsvc.NewSettingService(
		memory.NewSettingRepository(store),
		memory.NewTransactor(store),
		setting.Settings{Location: time.FixedZone("EET", 2*60*60)},
	)
	jobs := NewAttendanceJobs(stub, settings)
	jobs.now = func() time.Time { return now }
	return jobs
}

func TestDailyDigest_UsesOrganizationYesterday(t *testing.T) {
	stub := &stubAttendanceService{}
	// 23:30 UTC is already the 19th in UTC+2.
	jobs := newTestJobs(t, stub, time.Date(2024, 3, 18, 23, 30, 0, 0, time.UTC))

	require.NoError(t, jobs.DailyDigest(context.Background()))

	require.Len(t, stub.requests, 1)
	assert.Equal(t, "2024-03-18", stub.requests[0].StartDate)
	assert.Equal(t, "2024-03-18", stub.requests[0].EndDate)
	assert.Empty(t, stub.requests[0].EmployeeIDs)
}

func TestDailyDigest_SkipsDigestedDate(t *testing.T) {
	ctx := context.Background()
	stub := &stubAttendanceService{}
	now := time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)
	jobs := newTestJobs(t, stub, now)

	require.NoError(t, jobs.DailyDigest(ctx))
	require.NoError(t, jobs.DailyDigest(ctx))
	assert.Len(t, stub.requests, 1)

	jobs.now = func() time.Time { return now.AddDate(0, 0, 1) }
	require.NoError(t, jobs.DailyDigest(ctx))
	require.Len(t, stub.requests, 2)
	assert.Equal(t, "2024-03-19", stub.requests[1].StartDate)
}

func TestDailyDigest_RetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	stub := &stubAttendanceService{err: errors.New("database unavailable")}
	jobs := newTestJobs(t, stub, time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC))

	err := jobs.DailyDigest(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-03-18")

	stub.err = nil
	require.NoError(t, jobs.DailyDigest(ctx))
	assert.Len(t, stub.requests, 2)
}

func TestDigest_CountsStatuses(t *testing.T) {
	stub := &stubAttendanceService{records: []attendance.DailyRecordResponse{
		{EmployeeID: "a", Status: attendance.DayStatusPresent, LateMinutes: 45, LatePenaltyMinutes: 15},
		{EmployeeID: "b", Status: attendance.DayStatusPresent},
		{EmployeeID: "c", Status: attendance.DayStatusMissing},
		{EmployeeID: "d", Status: attendance.DayStatusLeave},
		{EmployeeID: "e", Status: attendance.DayStatusPresent, LateMinutes: 5},
	}}
	jobs := newTestJobs(t, stub, time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC))

	digest, err := jobs.digest(context.Background(), time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 5, digest.Employees)
	assert.Equal(t, 3, digest.Counts[attendance.DayStatusPresent])
	assert.Equal(t, 1, digest.Counts[attendance.DayStatusMissing])
	assert.Equal(t, 1, digest.Counts[attendance.DayStatusLeave])
	assert.Equal(t, 2, digest.LateArrivals)
	assert.Equal(t, 15, digest.PenaltyMins)
}
