package setting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseWeekdays(t *testing.T) {
	days := ParseWeekdays([]string{"Friday", " saturday ", "friday", "someday"})

	assert.Equal(t, []time.Weekday{time.Friday, time.Saturday}, days)
	assert.Equal(t, []string{"friday", "saturday"}, WeekdayNames(days))
}

func TestSettings_IsWeekend(t *testing.T) {
	s := Settings{WeekendDays: []time.Weekday{time.Friday, time.Saturday}}

	assert.True(t, s.IsWeekend(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, s.IsWeekend(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, s.Loc())
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	hours := decimal.NewFromInt(7)
	assert.NoError(t, (&UpdateSettingsRequest{WorkHoursPerDay: &hours}).Validate())

	assert.Error(t, (&UpdateSettingsRequest{}).Validate())

	zero := decimal.Zero
	cycle := 32
	err := (&UpdateSettingsRequest{
		WeekendDays:          []string{"friday", "funday"},
		WorkHoursPerDay:      &zero,
		PayrollCycleStartDay: &cycle,
	}).Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "weekend_days")
		assert.Contains(t, err.Error(), "work_hours_per_day")
		assert.Contains(t, err.Error(), "payroll_cycle_start_day")
	}
}
