package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidInterval   = errors.New("check-out time must be after check-in time")

	// Overtime errors
	ErrNoOvertimeRequest      = errors.New("no overtime request on this attendance")
	ErrOvertimeAlreadyDecided = errors.New("overtime request has already been decided")
	ErrOvertimeNotConfirmed   = errors.New("overtime has not been confirmed")

	// Geofence errors
	ErrNoPositionReported = errors.New("no position has been reported for this session")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
