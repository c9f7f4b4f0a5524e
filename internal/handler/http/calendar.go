package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
)

type CalendarHandler interface {
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	CreateWfhRecord(w http.ResponseWriter, r *http.Request)
	ListWfhRecords(w http.ResponseWriter, r *http.Request)
	DeleteWfhRecord(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService attendance.CalendarService
}

func NewCalendarHandler(calendarService attendance.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

// CreateHoliday implements CalendarHandler.
func (h *calendarHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.calendarService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Public holiday created successfully", result)
}

// ListHolidays implements CalendarHandler.
func (h *calendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	holidays, err := h.calendarService.ListHolidays(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// DeleteHoliday implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Public holiday deleted successfully", nil)
}

// CreateWfhRecord implements CalendarHandler.
func (h *calendarHandlerImpl) CreateWfhRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateWfhRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateWfhRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.UserID(r.Context())

	result, err := h.calendarService.CreateWfhRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "WFH record created successfully", result)
}

// ListWfhRecords implements CalendarHandler.
func (h *calendarHandlerImpl) ListWfhRecords(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListWfhRecordsRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	records, err := h.calendarService.ListWfhRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// DeleteWfhRecord implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteWfhRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarService.DeleteWfhRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH record deleted successfully", nil)
}
