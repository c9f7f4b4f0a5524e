package setting

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type SettingServiceImpl struct {
	setting.SettingRepository
	transactor database.Transactor
	defaults   setting.Settings
}

// Current implements setting.SettingService.
func (s *SettingServiceImpl) Current(ctx context.Context) (setting.Settings, error) {
	stored, err := s.SettingRepository.GetAll(ctx)
	if err != nil {
		return setting.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return merge(s.defaults, stored), nil
}

// merge overlays stored values on defaults. Values that no longer parse are
// logged and skipped.
func merge(defaults setting.Settings, stored map[string]setting.Setting) setting.Settings {
	current := defaults
	current.WeekendDays = append([]time.Weekday(nil), defaults.WeekendDays...)

	if v, ok := stored[setting.KeyWeekendDays]; ok {
		var names []string
		if strings.TrimSpace(v.Value) != "" {
			names = strings.Split(v.Value, ",")
		}
		current.WeekendDays = setting.ParseWeekdays(names)
	}
	if v, ok := stored[setting.KeyWorkHoursPerDay]; ok {
		if d, err := decimal.NewFromString(v.Value); err == nil && d.IsPositive() {
			current.WorkHoursPerDay = d
		} else {
			slog.Warn("ignoring invalid setting", "key", v.Key, "value", v.Value)
		}
	}
	if v, ok := stored[setting.KeyWfhAttendanceHours]; ok {
		if d, err := decimal.NewFromString(v.Value); err == nil && !d.IsNegative() {
			current.WfhAttendanceHours = d
		} else {
			slog.Warn("ignoring invalid setting", "key", v.Key, "value", v.Value)
		}
	}
	if v, ok := stored[setting.KeyPayrollCycleStartDay]; ok {
		if n, err := strconv.Atoi(v.Value); err == nil {
			current.PayrollCycleStartDay = n
		} else {
			slog.Warn("ignoring invalid setting", "key", v.Key, "value", v.Value)
		}
	}
	if v, ok := stored[setting.KeyAllowPastDateRequests]; ok {
		if b, err := strconv.ParseBool(v.Value); err == nil {
			current.AllowPastDateRequests = b
		} else {
			slog.Warn("ignoring invalid setting", "key", v.Key, "value", v.Value)
		}
	}
	return current
}

// GetSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetSettings(ctx context.Context) (setting.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return setting.SettingsResponse{}, err
	}
	return setting.NewSettingsResponse(current), nil
}

// UpdateSettings implements setting.SettingService.
func (s *SettingServiceImpl) UpdateSettings(ctx context.Context, req setting.UpdateSettingsRequest) (setting.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return setting.SettingsResponse{}, err
	}

	var updates []setting.Setting
	if req.WeekendDays != nil {
		names := setting.WeekdayNames(setting.ParseWeekdays(req.WeekendDays))
		updates = append(updates, setting.Setting{Key: setting.KeyWeekendDays, Value: strings.Join(names, ",")})
	}
	if req.WorkHoursPerDay != nil {
		updates = append(updates, setting.Setting{Key: setting.KeyWorkHoursPerDay, Value: req.WorkHoursPerDay.String()})
	}
	if req.WfhAttendanceHours != nil {
		updates = append(updates, setting.Setting{Key: setting.KeyWfhAttendanceHours, Value: req.WfhAttendanceHours.String()})
	}
	if req.PayrollCycleStartDay != nil {
		updates = append(updates, setting.Setting{Key: setting.KeyPayrollCycleStartDay, Value: strconv.Itoa(*req.PayrollCycleStartDay)})
	}
	if req.AllowPastDateRequests != nil {
		updates = append(updates, setting.Setting{Key: setting.KeyAllowPastDateRequests, Value: strconv.FormatBool(*req.AllowPastDateRequests)})
	}

	// All keys of one request are applied together or not at all.
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, u := range updates {
			if req.UpdatedBy != "" {
				u.UpdatedBy = &req.UpdatedBy
			}
			if _, err := s.SettingRepository.Upsert(ctx, u); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", u.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return setting.SettingsResponse{}, err
	}
	for _, u := range updates {
		slog.Info("setting updated", "key", u.Key, "value", u.Value)
	}

	return s.GetSettings(ctx)
}

func NewSettingService(settingRepository setting.SettingRepository, transactor database.Transactor, defaults setting.Settings) setting.SettingService {
	return &SettingServiceImpl{
		SettingRepository: settingRepository,
		transactor:        transactor,
		defaults:          defaults,
	}
}
