package response

import (
	"errors"
	"net/http"

	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open attendance session")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance has already been checked out")
	case errors.Is(err, attendance.ErrInvalidInterval):
		BadRequest(w, "Check-out time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrNoOvertimeRequest):
		Conflict(w, "No pending overtime request")
	case errors.Is(err, attendance.ErrOvertimeAlreadyDecided):
		Conflict(w, "Overtime request already decided")
	case errors.Is(err, attendance.ErrOvertimeNotConfirmed):
		Conflict(w, "Overtime has not been confirmed")
	case errors.Is(err, attendance.ErrNoPositionReported):
		BadRequest(w, "No position reported for this session", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Company domain errors
	case errors.Is(err, company.ErrSettingsNotFound):
		NotFound(w, "Work settings not found")
	case errors.Is(err, company.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")
	case errors.Is(err, company.ErrInvalidBreakWindow),
		errors.Is(err, company.ErrInvalidClockTime),
		errors.Is(err, company.ErrInvalidTimezone):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
