package attendance

import (
	"context"
)

// AttendanceService defines the business logic for attendance sessions and
// the three checkout paths (manual, geofence auto, overtime), which all
// close a session through the same calculation.
type AttendanceService interface {
	// CheckIn opens today's session for the authenticated employee
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the open session at the current time (manual path)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// ReportLocation records a position ping and evaluates the geofence;
	// a ping outside every allowed location auto-checks the employee out
	ReportLocation(ctx context.Context, req ReportLocationRequest) (GeofenceCheckResponse, error)

	// RequestOvertime marks the open session's overtime as pending
	RequestOvertime(ctx context.Context, req RequestOvertimeRequest) (AttendanceResponse, error)

	// ConfirmOvertime approves a pending overtime request; the session
	// stays open until OvertimeCheckOut
	ConfirmOvertime(ctx context.Context) (AttendanceResponse, error)

	// DeclineOvertime declines a pending request and closes the session
	// immediately, like a manual checkout with its own reason
	DeclineOvertime(ctx context.Context) (AttendanceResponse, error)

	// OvertimeCheckOut closes a confirmed-overtime session and records
	// overtime hours past the scheduled checkout, floored at zero
	OvertimeCheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
