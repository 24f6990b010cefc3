package attendance

import (
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/geofence"
	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

// ReportLocationRequest carries a periodic position ping from the client.
// Every ping re-evaluates the geofence for the open session.
type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *ReportLocationRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

// RequestOvertimeRequest opens an overtime request on today's session.
// ScheduledCheckOut anchors the overtime arithmetic: overtime hours are the
// positive part of (actual checkout - scheduled checkout).
type RequestOvertimeRequest struct {
	ScheduledCheckOut string `json:"scheduled_check_out"` // RFC3339
}

func (r *RequestOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScheduledCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_check_out",
			Message: "scheduled_check_out is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.ScheduledCheckOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_check_out",
			Message: "scheduled_check_out must be an RFC3339 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(latitude, longitude float64) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`

	WorkedMinutes       *float64 `json:"worked_minutes,omitempty"`
	BreakMinutes        *float64 `json:"break_minutes,omitempty"`
	TransitionBuffer    *float64 `json:"transition_buffer,omitempty"`
	EffectiveWorkHours  *float64 `json:"effective_work_hours,omitempty"`
	ShrinkagePercentage *float64 `json:"shrinkage_percentage,omitempty"`

	Status       string                `json:"status"`
	StatusReason *string               `json:"status_reason,omitempty"`
	Thresholds   *shrinkage.Thresholds `json:"thresholds,omitempty"`
	CheckoutType *CheckoutType         `json:"checkout_type,omitempty"`

	OvertimeStatus    OvertimeStatus `json:"overtime_status"`
	ScheduledCheckOut *string        `json:"scheduled_check_out,omitempty"`
	OvertimeHours     *float64       `json:"overtime_hours,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// GeofenceCheckResponse reports a location ping's outcome. Attendance is
// set when the ping triggered an automatic checkout.
type GeofenceCheckResponse struct {
	IsWithinGeofence bool                `json:"is_within_geofence"`
	ClosestLocation  *geofence.Location  `json:"closest_location,omitempty"`
	MinDistance      float64             `json:"min_distance"`
	CheckedOut       bool                `json:"checked_out"`
	Attendance       *AttendanceResponse `json:"attendance,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// FILTERS
// ========================================

var validSortFields = []string{"date", "check_in", "check_out", "status", "effective_work_hours"}

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (f *AttendanceFilter) Validate() error {
	return validateFilter(f.StartDate, f.EndDate, f.Status, f.SortBy, f.SortOrder)
}

type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *MyAttendanceFilter) Validate() error {
	return validateFilter(f.StartDate, f.EndDate, f.Status, f.SortBy, f.SortOrder)
}

func validateFilter(startDate, endDate, status *string, sortBy, sortOrder string) error {
	var errs validator.ValidationErrors

	var start, end time.Time
	if startDate != nil {
		var ok bool
		if start, ok = validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if endDate != nil {
		var ok bool
		if end, ok = validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if startDate != nil && endDate != nil && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if status != nil && !validator.IsInSlice(*status,
		[]string{string(shrinkage.StatusPresent), string(shrinkage.StatusHalfDay), string(shrinkage.StatusAbsent), "open"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, half-day, absent, open",
		})
	}

	if sortBy != "" && !validator.IsInSlice(sortBy, validSortFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "invalid sort field",
		})
	}

	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
