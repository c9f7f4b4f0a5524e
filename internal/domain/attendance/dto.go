package attendance

import (
	"strconv"
	"time"

	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	MaxDailyRecordRangeDays = 62
	MaxSummaryRangeDays     = 366
)

// ========================================
// REPORT DTOs
// ========================================

type ListDailyRecordsRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`

	// Parsed by Validate
	Period Period `json:"-"`
}

func (r *ListDailyRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	period, ok := validateRange(&errs, r.StartDate, r.EndDate, MaxDailyRecordRangeDays)
	if ok {
		r.Period = period
	}
	validateEmployeeIDs(&errs, r.EmployeeIDs)

	return errs.Err()
}

// EmployeeSummaryRequest selects a range either by explicit dates or by a
// payroll month in YYYY-MM form.
type EmployeeSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Month      string `json:"month,omitempty"`

	// Parsed by Validate. Zero when Month is used.
	Period  Period    `json:"-"`
	MonthOf time.Time `json:"-"`
}

func (r *EmployeeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	switch {
	case r.Month != "":
		if r.StartDate != "" || r.EndDate != "" {
			errs.Add("month", "month cannot be combined with start_date or end_date")
			break
		}
		month, err := time.Parse("2006-01", r.Month)
		if err != nil {
			errs.Add("month", "month must be in YYYY-MM format")
			break
		}
		r.MonthOf = month
	default:
		if period, ok := validateRange(&errs, r.StartDate, r.EndDate, MaxSummaryRangeDays); ok {
			r.Period = period
		}
	}

	return errs.Err()
}

type OrganizationSummaryRequest struct {
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *OrganizationSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.Year, 2000, 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	validateEmployeeIDs(&errs, r.EmployeeIDs)

	return errs.Err()
}

// ========================================
// PUNCH DTOs
// ========================================

type PunchInput struct {
	EmployeeID string `json:"employee_id"`
	PunchedAt  string `json:"punched_at"`
	Source     string `json:"source,omitempty"`
}

type RecordPunchesRequest struct {
	Punches   []PunchInput `json:"punches"`
	CreatedBy string       `json:"-"`
}

func (r *RecordPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs.Add("punches", "at least one punch is required")
	}
	if len(r.Punches) > 10000 {
		errs.Add("punches", "at most 10000 punches can be recorded per request")
	}
	for i, p := range r.Punches {
		field := "punches[" + strconv.Itoa(i) + "]"
		if !validator.IsValidUUID(p.EmployeeID) {
			errs.Add(field+".employee_id", "employee_id must be a valid UUID")
		}
		if _, ok := validator.IsValidDateTime(p.PunchedAt); !ok {
			errs.Add(field+".punched_at", "punched_at must be in YYYY-MM-DD HH:MM:SS format")
		}
		if p.Source != "" && !PunchSource(p.Source).IsValid() {
			errs.Add(field+".source", "source must be one of: sign_in, sign_out, unspecified")
		}
	}

	return errs.Err()
}

type RecordPunchesResponse struct {
	Received int   `json:"received"`
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
}

type ManualPunchRequest struct {
	EmployeeID string `json:"employee_id"`
	PunchedAt  string `json:"punched_at"`
	Source     string `json:"source"`
	CreatedBy  string `json:"-"`
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDateTime(r.PunchedAt); !ok {
		errs.Add("punched_at", "punched_at must be in YYYY-MM-DD HH:MM:SS format")
	}
	if source := PunchSource(r.Source); source != PunchSourceSignIn && source != PunchSourceSignOut {
		errs.Add("source", "source must be sign_in or sign_out")
	}

	return errs.Err()
}

type PunchResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	PunchedAt  string    `json:"punched_at"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// ========================================
// PERMISSION DTOs
// ========================================

type GrantPermissionRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	GrantedBy  string `json:"-"`
}

func (r *GrantPermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.Err()
}

type PermissionUsageResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	MinutesUsed int       `json:"minutes_used"`
	GrantedBy   *string   `json:"granted_by,omitempty"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type PermissionBalanceResponse struct {
	EmployeeID           string `json:"employee_id"`
	PeriodStart          string `json:"period_start"`
	PeriodEnd            string `json:"period_end"`
	Used                 int    `json:"used"`
	ExtraGranted         int    `json:"extra_granted"`
	MinutesPerPermission int    `json:"minutes_per_permission"`

	// Allowed and Remaining are nil when no monthly cap is configured.
	Allowed   *int `json:"allowed"`
	Remaining *int `json:"remaining"`
}

type GrantExtraPermissionsRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
	GrantedBy  string `json:"-"`
}

func (r *GrantExtraPermissionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !validator.InRange(r.Amount, 1, 31) {
		errs.Add("amount", "amount must be between 1 and 31")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.Err()
}

type PermissionOverrideResponse struct {
	EmployeeID              string                  `json:"employee_id"`
	PeriodStart             string                  `json:"period_start"`
	ExtraPermissionsGranted int                     `json:"extra_permissions_granted"`
	Grants                  []OverrideGrantResponse `json:"grants"`
}

type OverrideGrantResponse struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	GrantedBy *string   `json:"granted_by,omitempty"`
	GrantedAt time.Time `json:"granted_at"`
}

// ========================================
// CALENDAR DTOs
// ========================================

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type CreateWfhRecordRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes,omitempty"`
	CreatedBy  string  `json:"-"`
}

func (r *CreateWfhRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}

	return errs.Err()
}

type ListWfhRecordsRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	Period Period `json:"-"`
}

func (r *ListWfhRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if period, ok := validateRange(&errs, r.StartDate, r.EndDate, MaxSummaryRangeDays); ok {
		r.Period = period
	}

	return errs.Err()
}

type WfhRecordResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedBy  *string   `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ========================================
// DAILY RECORD RESPONSE
// ========================================

type DailyRecordResponse struct {
	EmployeeID         string           `json:"employee_id"`
	EmployeeName       string           `json:"employee_name"`
	Date               string           `json:"date"`
	TimeIn             *string          `json:"time_in"`
	TimeOut            *string          `json:"time_out"`
	TotalMinutes       int              `json:"total_minutes"`
	PermissionMinutes  int              `json:"permission_minutes"`
	LateMinutes        int              `json:"late_minutes"`
	LatePenaltyMinutes int              `json:"late_penalty_minutes"`
	IsWeekend          bool             `json:"is_weekend"`
	IsHoliday          bool             `json:"is_holiday"`
	IsOnLeave          bool             `json:"is_on_leave"`
	IsWfh              bool             `json:"is_wfh"`
	IsMissing          bool             `json:"is_missing"`
	Status             DayStatus        `json:"status"`
	BillableHours      *decimal.Decimal `json:"billable_hours"`
}

// ========================================
// HELPERS
// ========================================

func validateRange(errs *validator.ValidationErrors, startStr, endStr string, maxDays int) (Period, bool) {
	start, startOK := validator.IsValidDate(startStr)
	end, endOK := validator.IsValidDate(endStr)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if !startOK || !endOK {
		return Period{}, false
	}
	period := Period{Start: start, End: end}
	if end.Before(start) {
		errs.Add("end_date", "end_date must be on or after start_date")
		return Period{}, false
	}
	if period.DayCount() > maxDays {
		errs.Add("end_date", "date range must not exceed "+strconv.Itoa(maxDays)+" days")
		return Period{}, false
	}
	return period, true
}

func validateEmployeeIDs(errs *validator.ValidationErrors, ids []string) {
	for _, id := range ids {
		if !validator.IsValidUUID(id) {
			errs.Add("employee_ids", "employee_ids must contain valid UUIDs")
			return
		}
	}
}
