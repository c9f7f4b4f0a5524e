package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
	"github.com/samerkamel/aura-sub004/internal/repository/memory"
	attendanceService "github.com/samerkamel/aura-sub004/internal/service/attendance"
	calendarService "github.com/samerkamel/aura-sub004/internal/service/calendar"
	permissionService "github.com/samerkamel/aura-sub004/internal/service/permission"
	ruleService "github.com/samerkamel/aura-sub004/internal/service/rule"
	settingService "github.com/samerkamel/aura-sub004/internal/service/setting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestEmployeeID = "0190a5b2-4444-7000-8000-000000000001"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*chi.Mux, jwt.Service) {
	t.Helper()
	store := memory.NewStore()
	store.PutEmployee(employee.Employee{
		ID:               handlerTestEmployeeID,
		FullName:         "Mona Adel",
		EmploymentStatus: employee.EmploymentStatusActive,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	transactor := memory.NewTransactor(store)
	employees := memory.NewEmployeeRepository(store)
	settings := settingService.NewSettingService(memory.NewSettingRepository(store), memory.NewTransactor(store), setting.Settings{
		WeekendDays:          []time.Weekday{time.Friday, time.Saturday},
		WorkHoursPerDay:      decimal.NewFromInt(8),
		WfhAttendanceHours:   decimal.NewFromInt(8),
		PayrollCycleStartDay: 1,
		Location:             time.UTC,
	})
	rules := ruleService.NewRuleService(memory.NewRuleConfigRepository(store), memory.NewLatePenaltyTierRepository(store))

	handlers := Handlers{
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(
			memory.NewPunchRepository(store),
			memory.NewPermissionUsageRepository(store),
			memory.NewHolidayRepository(store),
			memory.NewWfhRepository(store),
			employees,
			memory.NewApprovedLeaveReader(store),
			memory.NewWorklogSource(store),
			rules,
			settings,
		)),
		Rule: NewRuleHandler(rules),
		Permission: NewPermissionHandler(permissionService.NewPermissionService(
			memory.NewPermissionUsageRepository(store),
			memory.NewPermissionOverrideRepository(store),
			employees,
			rules,
			settings,
			transactor,
		)),
		Calendar: NewCalendarHandler(calendarService.NewCalendarService(
			memory.NewHolidayRepository(store),
			memory.NewWfhRepository(store),
			employees,
			rules,
			settings,
			transactor,
		)),
		Setting: NewSettingHandler(settings),
	}

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(RouterOptions{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelError,
	}, jwtService, handlers)
	return router, jwtService
}

func bearer(t *testing.T, svc jwt.Service, isAdmin bool) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken("0190a5b2-9999-7000-8000-000000000001", isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, router http.Handler, method, path, auth string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRouter_Heartbeat(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	router, svc := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance/rules", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/rules", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := jwt.NewJWTService("another-secret", "1h")
	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/rules", bearer(t, other, true), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/rules", bearer(t, svc, false), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestRouter_AdminOnly(t *testing.T) {
	router, svc := newTestRouter(t)
	holiday := map[string]string{"date": "2024-04-10", "name": "Eid al-Fitr"}

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance/holidays", bearer(t, svc, false), holiday)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/summaries/organization?year=2024", bearer(t, svc, false), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_HolidayConflict(t *testing.T) {
	router, svc := newTestRouter(t)
	admin := bearer(t, svc, true)
	holiday := map[string]string{"date": "2024-04-10", "name": "Eid al-Fitr"}

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance/holidays", admin, holiday)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "2024-04-10", created.Date)

	rec, resp = doRequest(t, router, http.MethodPost, "/api/v1/attendance/holidays", admin, holiday)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "a public holiday already exists on this date", resp.Error.Message)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/holidays?year=2024", bearer(t, svc, false), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, router, http.MethodDelete, "/api/v1/attendance/holidays/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, router, http.MethodDelete, "/api/v1/attendance/holidays/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ValidationAndDecodeErrors(t *testing.T) {
	router, svc := newTestRouter(t)
	admin := bearer(t, svc, true)

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance/punches/manual", admin, map[string]string{
		"employee_id": handlerTestEmployeeID,
		"punched_at":  "2024-03-20 09:00:00",
		"source":      "badge",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "source")

	rec, _ = doRequest(t, router, http.MethodPost, "/api/v1/attendance/punches", admin, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/summaries/organization?year=abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RecordPunchesAndDailyRecords(t *testing.T) {
	router, svc := newTestRouter(t)
	admin := bearer(t, svc, true)

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance/punches", admin, map[string]any{
		"punches": []map[string]string{
			{"employee_id": handlerTestEmployeeID, "punched_at": "2024-03-18 09:00:00"},
			{"employee_id": handlerTestEmployeeID, "punched_at": "2024-03-18 17:00:00"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		Inserted int64 `json:"inserted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, int64(2), result.Inserted)

	path := "/api/v1/attendance/daily-records?start_date=2024-03-18&end_date=2024-03-18&employee_ids=" + handlerTestEmployeeID
	rec, resp = doRequest(t, router, http.MethodGet, path, bearer(t, svc, false), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []struct {
		TimeIn       *string `json:"time_in"`
		TotalMinutes int     `json:"total_minutes"`
		Status       string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "09:00:00", *records[0].TimeIn)
	assert.Equal(t, 480, records[0].TotalMinutes)
	assert.Equal(t, "present", records[0].Status)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/attendance/summaries/employees/0190a5b2-4444-7000-8000-0000000000ff?month=2024-03", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
