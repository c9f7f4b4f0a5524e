package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
)

type CalendarServiceImpl struct {
	attendance.HolidayRepository
	attendance.WfhRepository
	employee.EmployeeRepository
	ruleService    rule.RuleService
	settingService setting.SettingService
	transactor     database.Transactor
	now            func() time.Time
}

func mapHolidayToResponse(h attendance.PublicHoliday) attendance.HolidayResponse {
	return attendance.HolidayResponse{
		ID:   h.ID,
		Date: attendance.DateKey(h.Date),
		Name: h.Name,
	}
}

func mapWfhToResponse(w attendance.WfhRecord) attendance.WfhRecordResponse {
	return attendance.WfhRecordResponse{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		Date:       attendance.DateKey(w.Date),
		Notes:      w.Notes,
		CreatedBy:  w.CreatedBy,
		CreatedAt:  w.CreatedAt,
	}
}

// CreateHoliday implements attendance.CalendarService.
func (s *CalendarServiceImpl) CreateHoliday(ctx context.Context, req attendance.CreateHolidayRequest) (attendance.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	created, err := s.HolidayRepository.Create(ctx, attendance.PublicHoliday{
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrHolidayAlreadyExists) {
			return attendance.HolidayResponse{}, err
		}
		return attendance.HolidayResponse{}, fmt.Errorf("failed to create public holiday: %w", err)
	}

	slog.Info("public holiday created", "date", req.Date, "name", req.Name)
	return mapHolidayToResponse(created), nil
}

// ListHolidays implements attendance.CalendarService.
func (s *CalendarServiceImpl) ListHolidays(ctx context.Context, year int) ([]attendance.HolidayResponse, error) {
	if !validator.InRange(year, 2000, 2100) {
		var errs validator.ValidationErrors
		errs.Add("year", "year must be between 2000 and 2100")
		return nil, errs
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	holidays, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}

	responses := make([]attendance.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// DeleteHoliday implements attendance.CalendarService.
func (s *CalendarServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrHolidayNotFound
	}
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrHolidayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}
	return nil
}

// CreateWfhRecord implements attendance.CalendarService.
func (s *CalendarServiceImpl) CreateWfhRecord(ctx context.Context, req attendance.CreateWfhRecordRequest) (attendance.WfhRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WfhRecordResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.WfhRecordResponse{}, err
	}
	today := attendance.DateOf(s.now().In(settings.Loc()))
	if date.Before(today) && !settings.AllowPastDateRequests {
		return attendance.WfhRecordResponse{}, attendance.ErrPastDateNotAllowed
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.WfhRecordResponse{}, err
	}

	policy, err := s.ruleService.WfhPolicy(ctx)
	if err != nil {
		return attendance.WfhRecordResponse{}, err
	}
	period := attendance.PeriodFor(date, settings.PayrollCycleStartDay)

	record := attendance.WfhRecord{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Notes:      req.Notes,
	}
	if req.CreatedBy != "" {
		record.CreatedBy = &req.CreatedBy
	}

	var created attendance.WfhRecord
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if policy != nil {
			if err := s.WfhRepository.LockPeriod(ctx, req.EmployeeID, period.Start); err != nil {
				return err
			}
			used, err := s.WfhRepository.CountBetween(ctx, req.EmployeeID, period.Start, period.End)
			if err != nil {
				return fmt.Errorf("failed to count WFH days: %w", err)
			}
			if used >= policy.MaxDaysPerMonth {
				return attendance.ErrWfhQuotaExceeded
			}
		}

		created, err = s.WfhRepository.Create(ctx, record)
		if err != nil {
			if errors.Is(err, attendance.ErrWfhAlreadyExists) {
				return err
			}
			return fmt.Errorf("failed to create WFH record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.WfhRecordResponse{}, err
	}

	slog.Info("WFH record created", "employee_id", req.EmployeeID, "date", req.Date)
	return mapWfhToResponse(created), nil
}

// ListWfhRecords implements attendance.CalendarService.
func (s *CalendarServiceImpl) ListWfhRecords(ctx context.Context, req attendance.ListWfhRecordsRequest) ([]attendance.WfhRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var ids []string
	if req.EmployeeID != "" {
		ids = []string{req.EmployeeID}
	}
	records, err := s.WfhRepository.ListBetween(ctx, ids, req.Period.Start, req.Period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list WFH records: %w", err)
	}

	responses := make([]attendance.WfhRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapWfhToResponse(r))
	}
	return responses, nil
}

// DeleteWfhRecord implements attendance.CalendarService.
func (s *CalendarServiceImpl) DeleteWfhRecord(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrWfhRecordNotFound
	}
	if err := s.WfhRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrWfhRecordNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete WFH record: %w", err)
	}
	return nil
}

func NewCalendarService(
	holidayRepository attendance.HolidayRepository,
	wfhRepository attendance.WfhRepository,
	employeeRepository employee.EmployeeRepository,
	ruleService rule.RuleService,
	settingService setting.SettingService,
	transactor database.Transactor,
) attendance.CalendarService {
	return &CalendarServiceImpl{
		HolidayRepository:  holidayRepository,
		WfhRepository:      wfhRepository,
		EmployeeRepository: employeeRepository,
		ruleService:        ruleService,
		settingService:     settingService,
		transactor:         transactor,
		now:                time.Now,
	}
}
