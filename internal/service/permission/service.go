package permission

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

type PermissionServiceImpl struct {
	attendance.PermissionUsageRepository
	attendance.PermissionOverrideRepository
	employee.EmployeeRepository
	ruleService    rule.RuleService
	settingService setting.SettingService
	transactor     database.Transactor
}

func validateEmployeeDate(employeeID, date string) (time.Time, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(employeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	d, ok := validator.IsValidDate(date)
	if !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	return d, errs.Err()
}

// extraGranted returns the override total for the period, zero when none.
func (s *PermissionServiceImpl) extraGranted(ctx context.Context, employeeID string, periodStart time.Time) (int, error) {
	override, err := s.PermissionOverrideRepository.Get(ctx, employeeID, periodStart)
	if err != nil {
		if errors.Is(err, attendance.ErrPermissionOverrideNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get permission override: %w", err)
	}
	return override.ExtraPermissionsGranted, nil
}

// GrantPermission implements attendance.PermissionService.
func (s *PermissionServiceImpl) GrantPermission(ctx context.Context, req attendance.GrantPermissionRequest) (attendance.PermissionUsageResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PermissionUsageResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.PermissionUsageResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.PermissionUsageResponse{}, err
	}
	cfg, err := s.ruleService.PermissionConfig(ctx)
	if err != nil {
		return attendance.PermissionUsageResponse{}, err
	}
	period := attendance.PeriodFor(date, settings.PayrollCycleStartDay)

	usage := attendance.PermissionUsage{
		EmployeeID:  req.EmployeeID,
		Date:        date,
		MinutesUsed: cfg.MinutesPerPermission,
		Reason:      req.Reason,
	}
	if req.GrantedBy != "" {
		usage.GrantedBy = &req.GrantedBy
	}

	var created attendance.PermissionUsage
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.PermissionUsageRepository.LockPeriod(ctx, req.EmployeeID, period.Start); err != nil {
			return err
		}
		used, err := s.PermissionUsageRepository.CountBetween(ctx, req.EmployeeID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to count permission usage: %w", err)
		}
		extra, err := s.extraGranted(ctx, req.EmployeeID, period.Start)
		if err != nil {
			return err
		}
		if allowed, bounded := cfg.Allowance(extra); bounded && used >= allowed {
			return attendance.ErrPermissionQuotaExceeded
		}

		created, err = s.PermissionUsageRepository.Create(ctx, usage)
		if err != nil {
			if errors.Is(err, attendance.ErrPermissionAlreadyUsed) {
				return err
			}
			return fmt.Errorf("failed to create permission usage: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PermissionUsageResponse{}, err
	}

	slog.Info("permission granted",
		"employee_id", created.EmployeeID,
		"date", attendance.DateKey(created.Date),
		"minutes", created.MinutesUsed,
	)

	return attendance.PermissionUsageResponse{
		ID:          created.ID,
		EmployeeID:  created.EmployeeID,
		Date:        attendance.DateKey(created.Date),
		MinutesUsed: created.MinutesUsed,
		GrantedBy:   created.GrantedBy,
		Reason:      created.Reason,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// RevokePermission implements attendance.PermissionService.
func (s *PermissionServiceImpl) RevokePermission(ctx context.Context, employeeID string, date string) error {
	d, err := validateEmployeeDate(employeeID, date)
	if err != nil {
		return err
	}

	if err := s.PermissionUsageRepository.Delete(ctx, employeeID, d); err != nil {
		if errors.Is(err, attendance.ErrPermissionUsageNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete permission usage: %w", err)
	}

	slog.Info("permission revoked", "employee_id", employeeID, "date", date)
	return nil
}

// PermissionBalance implements attendance.PermissionService.
func (s *PermissionServiceImpl) PermissionBalance(ctx context.Context, employeeID string, date string) (attendance.PermissionBalanceResponse, error) {
	d, err := validateEmployeeDate(employeeID, date)
	if err != nil {
		return attendance.PermissionBalanceResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.PermissionBalanceResponse{}, err
	}
	cfg, err := s.ruleService.PermissionConfig(ctx)
	if err != nil {
		return attendance.PermissionBalanceResponse{}, err
	}
	period := attendance.PeriodFor(d, settings.PayrollCycleStartDay)

	used, err := s.PermissionUsageRepository.CountBetween(ctx, employeeID, period.Start, period.End)
	if err != nil {
		return attendance.PermissionBalanceResponse{}, fmt.Errorf("failed to count permission usage: %w", err)
	}
	extra, err := s.extraGranted(ctx, employeeID, period.Start)
	if err != nil {
		return attendance.PermissionBalanceResponse{}, err
	}

	resp := attendance.PermissionBalanceResponse{
		EmployeeID:           employeeID,
		PeriodStart:          attendance.DateKey(period.Start),
		PeriodEnd:            attendance.DateKey(period.End),
		Used:                 used,
		ExtraGranted:         extra,
		MinutesPerPermission: cfg.MinutesPerPermission,
	}
	if allowed, bounded := cfg.Allowance(extra); bounded {
		remaining := max(0, allowed-used)
		resp.Allowed = &allowed
		resp.Remaining = &remaining
	}
	return resp, nil
}

// GrantExtraPermissions implements attendance.PermissionService.
func (s *PermissionServiceImpl) GrantExtraPermissions(ctx context.Context, req attendance.GrantExtraPermissionsRequest) (attendance.PermissionOverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}
	period := attendance.PeriodFor(date, settings.PayrollCycleStartDay)

	grant := attendance.OverrideGrant{
		EmployeeID:  req.EmployeeID,
		PeriodStart: period.Start,
		Amount:      req.Amount,
		Reason:      req.Reason,
	}
	if req.GrantedBy != "" {
		grant.GrantedBy = &req.GrantedBy
	}

	if _, err := s.PermissionOverrideRepository.AddGrant(ctx, grant); err != nil {
		return attendance.PermissionOverrideResponse{}, fmt.Errorf("failed to grant extra permissions: %w", err)
	}

	slog.Info("extra permissions granted",
		"employee_id", req.EmployeeID,
		"period_start", attendance.DateKey(period.Start),
		"amount", req.Amount,
	)

	return s.overrideResponse(ctx, req.EmployeeID, period.Start)
}

// GetOverride implements attendance.PermissionService.
func (s *PermissionServiceImpl) GetOverride(ctx context.Context, employeeID string, date string) (attendance.PermissionOverrideResponse, error) {
	d, err := validateEmployeeDate(employeeID, date)
	if err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}

	settings, err := s.settingService.Current(ctx)
	if err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}
	period := attendance.PeriodFor(d, settings.PayrollCycleStartDay)

	return s.overrideResponse(ctx, employeeID, period.Start)
}

func (s *PermissionServiceImpl) overrideResponse(ctx context.Context, employeeID string, periodStart time.Time) (attendance.PermissionOverrideResponse, error) {
	extra, err := s.extraGranted(ctx, employeeID, periodStart)
	if err != nil {
		return attendance.PermissionOverrideResponse{}, err
	}
	grants, err := s.PermissionOverrideRepository.ListGrants(ctx, employeeID, periodStart)
	if err != nil {
		return attendance.PermissionOverrideResponse{}, fmt.Errorf("failed to list override grants: %w", err)
	}

	resp := attendance.PermissionOverrideResponse{
		EmployeeID:              employeeID,
		PeriodStart:             attendance.DateKey(periodStart),
		ExtraPermissionsGranted: extra,
		Grants:                  make([]attendance.OverrideGrantResponse, 0, len(grants)),
	}
	for _, g := range grants {
		resp.Grants = append(resp.Grants, attendance.OverrideGrantResponse{
			ID:        g.ID,
			Amount:    g.Amount,
			Reason:    g.Reason,
			GrantedBy: g.GrantedBy,
			GrantedAt: g.GrantedAt,
		})
	}
	return resp, nil
}

func NewPermissionService(
	usageRepository attendance.PermissionUsageRepository,
	overrideRepository attendance.PermissionOverrideRepository,
	employeeRepository employee.EmployeeRepository,
	ruleService rule.RuleService,
	settingService setting.SettingService,
	transactor database.Transactor,
) attendance.PermissionService {
	return &PermissionServiceImpl{
		PermissionUsageRepository:    usageRepository,
		PermissionOverrideRepository: overrideRepository,
		EmployeeRepository:           employeeRepository,
		ruleService:                  ruleService,
		settingService:               settingService,
		transactor:                   transactor,
	}
}
