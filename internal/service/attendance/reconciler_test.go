package attendance

import (
	"testing"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_UsesEarliestAndLatest(t *testing.T) {
	punches := []attendance.RawPunch{
		punch("e", at("2024-03-01", "14:32:00")),
		punch("e", at("2024-03-01", "09:05:00")),
		punch("e", at("2024-03-01", "12:00:00")),
	}

	timeIn, timeOut := Reconcile(punches)
	require.NotNil(t, timeIn)
	require.NotNil(t, timeOut)
	assert.Equal(t, at("2024-03-01", "09:05:00"), *timeIn)
	assert.Equal(t, at("2024-03-01", "14:32:00"), *timeOut)

	// input order is left untouched
	assert.Equal(t, at("2024-03-01", "14:32:00"), punches[0].PunchedAt)
}

func TestReconcile_SinglePunchCutoff(t *testing.T) {
	cases := []struct {
		name    string
		clock   string
		wantIn  bool
		wantOut bool
	}{
		{"just before cutoff", "12:59:59", true, false},
		{"exactly at cutoff", "13:00:00", false, true},
		{"early morning", "06:10:00", true, false},
		{"evening", "18:45:00", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			timeIn, timeOut := Reconcile([]attendance.RawPunch{punch("e", at("2024-03-01", tc.clock))})
			assert.Equal(t, tc.wantIn, timeIn != nil)
			assert.Equal(t, tc.wantOut, timeOut != nil)
		})
	}
}

func TestReconcile_NoPunches(t *testing.T) {
	timeIn, timeOut := Reconcile(nil)
	assert.Nil(t, timeIn)
	assert.Nil(t, timeOut)
}

func TestImpliedSource(t *testing.T) {
	cases := []struct {
		name   string
		source attendance.PunchSource
		clock  string
		want   attendance.PunchSource
	}{
		{"device morning", attendance.PunchSourceUnspecified, "09:03:00", attendance.PunchSourceSignIn},
		{"device at cutoff", attendance.PunchSourceUnspecified, "13:00:00", attendance.PunchSourceSignOut},
		{"explicit sign-in in the evening", attendance.PunchSourceSignIn, "18:00:00", attendance.PunchSourceSignIn},
		{"explicit sign-out in the morning", attendance.PunchSourceSignOut, "11:00:00", attendance.PunchSourceSignOut},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := punch("e", at("2024-03-01", tc.clock))
			p.Source = tc.source
			assert.Equal(t, tc.want, impliedSource(p))
		})
	}
}
