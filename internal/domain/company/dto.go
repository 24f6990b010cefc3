package company

import (
	"fmt"
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// WORK SETTINGS DTOs
// ========================================

type WorkSettingsResponse struct {
	CompanyID               string                  `json:"company_id"`
	Timezone                string                  `json:"timezone"`
	FullDayHours            float64                 `json:"full_day_hours"`
	HalfDayHours            float64                 `json:"half_day_hours"`
	TransitionBufferMinutes float64                 `json:"transition_buffer_minutes"`
	BreakTimings            []shrinkage.BreakTiming `json:"break_timings"`
	UpdatedAt               string                  `json:"updated_at"`
}

type UpdateWorkSettingsRequest struct {
	Timezone                *string                 `json:"timezone,omitempty"`
	FullDayHours            *float64                `json:"full_day_hours,omitempty"`
	HalfDayHours            *float64                `json:"half_day_hours,omitempty"`
	TransitionBufferMinutes *float64                `json:"transition_buffer_minutes,omitempty"`
	BreakTimings            []shrinkage.BreakTiming `json:"break_timings,omitempty"`
}

// Validate rejects configuration the calculator would otherwise silently
// degrade on: malformed HH:MM windows, inverted windows, unknown weekday
// names, unloadable timezones and non-positive thresholds.
func (r *UpdateWorkSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "timezone",
				Message: "timezone must be a valid IANA zone name",
			})
		}
	}

	if r.FullDayHours != nil && *r.FullDayHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_day_hours",
			Message: "full_day_hours must be greater than zero",
		})
	}

	if r.HalfDayHours != nil && *r.HalfDayHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day_hours",
			Message: "half_day_hours must be greater than zero",
		})
	}

	if r.TransitionBufferMinutes != nil && *r.TransitionBufferMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "transition_buffer_minutes",
			Message: "transition_buffer_minutes must not be negative",
		})
	}

	for i, bt := range r.BreakTimings {
		field := fmt.Sprintf("break_timings[%d]", i)

		if validator.IsEmpty(bt.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "name is required",
			})
		}

		startMins, startOK := validator.ClockTimeMinutes(bt.StartTime)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".start_time",
				Message: "start_time must be in HH:MM format",
			})
		}

		endMins, endOK := validator.ClockTimeMinutes(bt.EndTime)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: "end_time must be in HH:MM format",
			})
		}

		if startOK && endOK && startMins >= endMins {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "start_time must be before end_time (overnight breaks are not supported)",
			})
		}

		for _, day := range bt.Days {
			if !validator.IsValidWeekday(day) {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".days",
					Message: fmt.Sprintf("unknown weekday %q", day),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// WORK LOCATION DTOs
// ========================================

type WorkLocationResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	RadiusMeters       float64  `json:"radius_meters"`
	AllowedDepartments []string `json:"allowed_departments"`
	AllowedEmployees   []string `json:"allowed_employees"`
	IsActive           bool     `json:"is_active"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

type SaveWorkLocationRequest struct {
	Name               string   `json:"name"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	RadiusMeters       float64  `json:"radius_meters"`
	AllowedDepartments []string `json:"allowed_departments,omitempty"`
	AllowedEmployees   []string `json:"allowed_employees,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

func (r *SaveWorkLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
