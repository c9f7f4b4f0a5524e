package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth errors
	switch {
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Punch errors
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrPastDateNotAllowed),
		errors.Is(err, attendance.ErrFutureDateNotAllowed):
		BadRequest(w, err.Error(), nil)

	// Permission errors
	case errors.Is(err, attendance.ErrPermissionAlreadyUsed):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrPermissionQuotaExceeded):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrPermissionUsageNotFound):
		NotFound(w, "Permission usage not found")
	case errors.Is(err, attendance.ErrPermissionOverrideNotFound):
		NotFound(w, "Permission override not found")

	// Calendar errors
	case errors.Is(err, attendance.ErrHolidayAlreadyExists),
		errors.Is(err, attendance.ErrWfhAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")
	case errors.Is(err, attendance.ErrWfhRecordNotFound):
		NotFound(w, "WFH record not found")
	case errors.Is(err, attendance.ErrWfhQuotaExceeded):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, attendance.ErrRangeTooLarge):
		BadRequest(w, err.Error(), nil)

	// Rule errors
	case errors.Is(err, rule.ErrLatePenaltyTierNotFound):
		NotFound(w, "Late penalty tier not found")
	case errors.Is(err, rule.ErrRuleNotConfigured):
		NotFound(w, "Rule is not configured")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
