package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListDailyRecords(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	OrganizationSummary(w http.ResponseWriter, r *http.Request)
	RecordPunches(w http.ResponseWriter, r *http.Request)
	AddManualPunch(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// queryList reads a comma-separated or repeated query parameter.
func queryList(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}

// ListDailyRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListDailyRecords(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListDailyRecordsRequest{
		StartDate:   r.URL.Query().Get("start_date"),
		EndDate:     r.URL.Query().Get("end_date"),
		EmployeeIDs: queryList(r, "employee_ids"),
	}

	records, err := h.attendanceService.ListDailyRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// EmployeeSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.EmployeeSummaryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Month:      r.URL.Query().Get("month"),
	}

	summary, err := h.attendanceService.EmployeeSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// OrganizationSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) OrganizationSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	req := attendance.OrganizationSummaryRequest{
		Year:        year,
		EmployeeIDs: queryList(r, "employee_ids"),
	}

	summary, err := h.attendanceService.OrganizationSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// RecordPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPunches decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.UserID(r.Context())

	result, err := h.attendanceService.RecordPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches recorded successfully", result)
}

// AddManualPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddManualPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddManualPunch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.UserID(r.Context())

	result, err := h.attendanceService.AddManualPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual punch recorded successfully", result)
}
