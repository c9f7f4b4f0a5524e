package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.PunchRepository
	attendance.PermissionUsageRepository
	attendance.HolidayRepository
	attendance.WfhRepository
	employee.EmployeeRepository
	leave.ApprovedLeaveReader
	worklog.WorklogSource
	ruleService    rule.RuleService
	settingService setting.SettingService
	now            func() time.Time
}

// timePtrToString formats a clock time for responses.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.TimeOnly)
	return &format
}

func mapDailyRecordToResponse(r attendance.DailyRecord) attendance.DailyRecordResponse {
	return attendance.DailyRecordResponse{
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		Date:               attendance.DateKey(r.Date),
		TimeIn:             timePtrToString(r.TimeIn),
		TimeOut:            timePtrToString(r.TimeOut),
		TotalMinutes:       r.TotalMinutes,
		PermissionMinutes:  r.PermissionMinutes,
		LateMinutes:        r.LateMinutes,
		LatePenaltyMinutes: r.LatePenaltyMinutes,
		IsWeekend:          r.IsWeekend,
		IsHoliday:          r.IsHoliday,
		IsOnLeave:          r.IsOnLeave,
		IsWfh:              r.IsWfh,
		IsMissing:          r.IsMissing,
		Status:             r.Status(),
		BillableHours:      r.BillableHours,
	}
}

// ListDailyRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListDailyRecords(ctx context.Context, req attendance.ListDailyRecordsRequest) ([]attendance.DailyRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.selectEmployees(ctx, req.EmployeeIDs, req.Period)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, employees, req.Period)
	if err != nil {
		return nil, err
	}

	// Employees are ordered by name, so records come out by date then name.
	records := snap.DailyRecords(employees, req.Period)
	responses := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapDailyRecordToResponse(r))
	}
	return responses, nil
}

// EmployeeSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EmployeeSummary(ctx context.Context, req attendance.EmployeeSummaryRequest) (attendance.EmployeeSummary, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmployeeSummary{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.EmployeeSummary{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.EmployeeSummary{}, fmt.Errorf("failed to load settings: %w", err)
	}

	period := req.Period
	if !req.MonthOf.IsZero() {
		period = attendance.PeriodForMonth(req.MonthOf.Year(), req.MonthOf.Month(), settings.PayrollCycleStartDay)
	}

	snap, err := s.loadSnapshotWith(ctx, settings, []employee.Employee{emp}, period)
	if err != nil {
		return attendance.EmployeeSummary{}, err
	}

	return snap.EmployeeSummary(emp, period), nil
}

// OrganizationSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) OrganizationSummary(ctx context.Context, req attendance.OrganizationSummaryRequest) (attendance.OrganizationSummary, error) {
	if err := req.Validate(); err != nil {
		return attendance.OrganizationSummary{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.OrganizationSummary{}, fmt.Errorf("failed to load settings: %w", err)
	}

	window := YearWindow(req.Year, settings.PayrollCycleStartDay)
	employees, err := s.selectEmployees(ctx, req.EmployeeIDs, window)
	if err != nil {
		return attendance.OrganizationSummary{}, err
	}

	snap, err := s.loadSnapshotWith(ctx, settings, employees, window)
	if err != nil {
		return attendance.OrganizationSummary{}, err
	}

	today := s.now().In(settings.Loc())
	summary := snap.OrganizationSummary(req.Year, employees, today)

	slog.Info("organization summary computed",
		"year", req.Year,
		"employees", len(employees),
	)
	return summary, nil
}

// RecordPunches implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunches(ctx context.Context, req attendance.RecordPunchesRequest) (attendance.RecordPunchesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordPunchesResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.RecordPunchesResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var createdBy *string
	if req.CreatedBy != "" {
		createdBy = &req.CreatedBy
	}

	punches := make([]attendance.RawPunch, 0, len(req.Punches))
	for _, p := range req.Punches {
		punchedAt, _ := parseLocalDateTime(p.PunchedAt, settings.Loc())
		source := attendance.PunchSource(p.Source)
		if source == "" {
			source = attendance.PunchSourceUnspecified
		}
		punches = append(punches, attendance.RawPunch{
			EmployeeID: p.EmployeeID,
			PunchedAt:  punchedAt,
			Source:     source,
			CreatedBy:  createdBy,
		})
	}

	inserted, err := s.PunchRepository.BulkInsert(ctx, punches)
	if err != nil {
		return attendance.RecordPunchesResponse{}, fmt.Errorf("failed to record punches: %w", err)
	}

	slog.Info("punches recorded", "received", len(punches), "inserted", inserted)

	return attendance.RecordPunchesResponse{
		Received: len(punches),
		Inserted: inserted,
		Skipped:  int64(len(punches)) - inserted,
	}, nil
}

// AddManualPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AddManualPunch(ctx context.Context, req attendance.ManualPunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}
	loc := settings.Loc()

	punchedAt, _ := parseLocalDateTime(req.PunchedAt, loc)
	now := s.now().In(loc)
	if punchedAt.After(now) {
		return attendance.PunchResponse{}, attendance.ErrFutureDateNotAllowed
	}
	if attendance.DateOf(punchedAt).Before(attendance.DateOf(now)) && !settings.AllowPastDateRequests {
		return attendance.PunchResponse{}, attendance.ErrPastDateNotAllowed
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.PunchResponse{}, err
	}

	source := attendance.PunchSource(req.Source)
	dayStart := time.Date(punchedAt.Year(), punchedAt.Month(), punchedAt.Day(), 0, 0, 0, 0, loc)
	existing, err := s.PunchRepository.ListBetween(ctx, []string{req.EmployeeID}, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to load punches for date: %w", err)
	}
	for _, p := range existing {
		p.PunchedAt = p.PunchedAt.In(loc)
		if impliedSource(p) == source {
			return attendance.PunchResponse{}, &attendance.DuplicatePunchError{
				Source:     source,
				ExistingAt: p.PunchedAt.In(loc),
			}
		}
	}

	punch := attendance.RawPunch{
		EmployeeID: req.EmployeeID,
		PunchedAt:  punchedAt,
		Source:     source,
	}
	if req.CreatedBy != "" {
		punch.CreatedBy = &req.CreatedBy
	}

	created, err := s.PunchRepository.Create(ctx, punch)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicatePunch) {
			return attendance.PunchResponse{}, err
		}
		return attendance.PunchResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return attendance.PunchResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		PunchedAt:  created.PunchedAt.In(loc).Format(validator.DateTimeLayout),
		Source:     string(created.Source),
		CreatedAt:  created.CreatedAt,
	}, nil
}

// selectEmployees resolves explicit ids or, when none are given, everyone
// employed during window. The result is ordered by name.
func (s *AttendanceServiceImpl) selectEmployees(ctx context.Context, ids []string, window attendance.Period) ([]employee.Employee, error) {
	var (
		employees []employee.Employee
		err       error
	)
	if len(ids) > 0 {
		employees, err = s.EmployeeRepository.ListByIDs(ctx, ids)
	} else {
		employees, err = s.EmployeeRepository.ListEmployedBetween(ctx, window.Start, window.End)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	sort.SliceStable(employees, func(i, j int) bool {
		a, b := strings.ToLower(employees[i].FullName), strings.ToLower(employees[j].FullName)
		if a != b {
			return a < b
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}

func (s *AttendanceServiceImpl) loadSnapshot(ctx context.Context, employees []employee.Employee, window attendance.Period) (*Snapshot, error) {
	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s.loadSnapshotWith(ctx, settings, employees, window)
}

// loadSnapshotWith reads every input for window once. Any failure aborts the
// whole report.
func (s *AttendanceServiceImpl) loadSnapshotWith(ctx context.Context, settings setting.Settings, employees []employee.Employee, window attendance.Period) (*Snapshot, error) {
	rules, err := s.ruleService.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance rules: %w", err)
	}

	if len(employees) == 0 {
		return NewSnapshot(settings, rules, SnapshotData{}), nil
	}

	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}

	loc := settings.Loc()
	from := time.Date(window.Start.Year(), window.Start.Month(), window.Start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(window.End.Year(), window.End.Month(), window.End.Day()+1, 0, 0, 0, 0, loc)

	var data SnapshotData
	if data.Holidays, err = s.HolidayRepository.ListBetween(ctx, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("failed to load public holidays: %w", err)
	}
	if data.Leaves, err = s.ApprovedLeaveReader.ApprovedLeaveRecords(ctx, ids, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("failed to load approved leave: %w", err)
	}
	if data.Wfh, err = s.WfhRepository.ListBetween(ctx, ids, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("failed to load WFH records: %w", err)
	}
	if data.Punches, err = s.PunchRepository.ListBetween(ctx, ids, from, to); err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}
	if data.Permissions, err = s.PermissionUsageRepository.ListBetween(ctx, ids, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("failed to load permission usage: %w", err)
	}
	if data.Worklogs, err = s.WorklogSource.ListBetween(ctx, ids, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("failed to load worklogs: %w", err)
	}

	return NewSnapshot(settings, rules, data), nil
}

// parseLocalDateTime reads a validated timestamp. Zone-less values are taken
// as organization local time.
func parseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(validator.DateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func NewAttendanceService(
	punchRepository attendance.PunchRepository,
	permissionUsageRepository attendance.PermissionUsageRepository,
	holidayRepository attendance.HolidayRepository,
	wfhRepository attendance.WfhRepository,
	employeeRepository employee.EmployeeRepository,
	leaveReader leave.ApprovedLeaveReader,
	worklogSource worklog.WorklogSource,
	ruleService rule.RuleService,
	settingService setting.SettingService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		PunchRepository:           punchRepository,
		PermissionUsageRepository: permissionUsageRepository,
		HolidayRepository:         holidayRepository,
		WfhRepository:             wfhRepository,
		EmployeeRepository:        employeeRepository,
		ApprovedLeaveReader:       leaveReader,
		WorklogSource:             worklogSource,
		ruleService:               ruleService,
		settingService:            settingService,
		now:                       time.Now,
	}
}
