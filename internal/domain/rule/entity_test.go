package rule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRuleSet_LatePenaltyMinutes(t *testing.T) {
	rs := NewRuleSet(nil, []LatePenaltyTier{
		{LateMinutes: 60, PenaltyMinutes: 30},
		{LateMinutes: 15, PenaltyMinutes: 5},
		{LateMinutes: 30, PenaltyMinutes: 15},
	}, nil, nil)

	tests := []struct {
		late int
		want int
	}{
		{0, 0},
		{10, 0},
		{15, 5},
		{29, 5},
		{45, 15},
		{60, 30},
		{300, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rs.LatePenaltyMinutes(tt.late), "late=%d", tt.late)
	}
}

func TestNewRuleSet_DoesNotReorderInput(t *testing.T) {
	tiers := []LatePenaltyTier{{LateMinutes: 30}, {LateMinutes: 15}}

	rs := NewRuleSet(nil, tiers, nil, nil)

	assert.Equal(t, 15, rs.Tiers[0].LateMinutes)
	assert.Equal(t, 30, tiers[0].LateMinutes)
}

func TestNewRuleSet_Defaults(t *testing.T) {
	rs := NewRuleSet(nil, nil, nil, nil)

	assert.Equal(t, DefaultFlexibleHours(), rs.FlexibleHours)
	assert.Equal(t, DefaultMinutesPerPermission, rs.Permission.MinutesPerPermission)
	assert.Nil(t, rs.Permission.MaxPerMonth)
	assert.Nil(t, rs.WfhPolicy)
	assert.Equal(t, 0, rs.LatePenaltyMinutes(500))

	rs = NewRuleSet(nil, nil, &PermissionConfig{}, nil)
	assert.Equal(t, DefaultMinutesPerPermission, rs.Permission.MinutesPerPermission)
}

func TestFlexibleHours_Deadline(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	deadline := FlexibleHours{From: "08:30", To: "09:45"}.Deadline(date, cairo)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 45, 0, 0, cairo), deadline)

	deadline = FlexibleHours{To: "late"}.Deadline(date, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), deadline)
}

func TestPermissionConfig_Allowance(t *testing.T) {
	_, bounded := DefaultPermissionConfig().Allowance(3)
	assert.False(t, bounded)

	limit := 2
	allowed, bounded := PermissionConfig{MinutesPerPermission: 120, MaxPerMonth: &limit}.Allowance(1)
	assert.True(t, bounded)
	assert.Equal(t, 3, allowed)
}

func TestRuleSet_WfhHoursPerDay(t *testing.T) {
	eight := decimal.NewFromInt(8)
	fallback := decimal.NewFromInt(6)

	rs := NewRuleSet(nil, nil, nil, nil)
	assert.True(t, rs.WfhHoursPerDay(eight, fallback).Equal(fallback))

	rs = NewRuleSet(nil, nil, nil, &WfhPolicy{MaxDaysPerMonth: 4, AttendancePercentage: decimal.NewFromInt(75)})
	assert.True(t, rs.WfhHoursPerDay(eight, fallback).Equal(decimal.NewFromInt(6)))
}
