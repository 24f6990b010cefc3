package attendance

import (
	"context"
)

// AttendanceRepository defines data access for attendance sessions. All
// methods take a companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// Create opens a new attendance session
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetOpenSession returns the employee's session without a checkout
	GetOpenSession(ctx context.Context, employeeID string, companyID string) (Attendance, error)

	// HasCheckedInToday guards against double check-in; dateLocal is the
	// company-local "2006-01-02" day
	HasCheckedInToday(ctx context.Context, employeeID string, dateLocal string, companyID string) (bool, error)

	// CloseSession persists a checkout. It only matches rows whose
	// check_out is still NULL and returns ErrAlreadyCheckedOut when a
	// concurrent writer got there first (single-writer guarantee).
	CloseSession(ctx context.Context, attendance Attendance) error

	// Update persists overtime/position fields on an open session
	Update(ctx context.Context, attendance Attendance) error

	// UpdateLastPosition stores the most recent reported coordinates
	UpdateLastPosition(ctx context.Context, id string, latitude, longitude float64) error

	// ListOpenSessionsWithPosition returns every open session, any company,
	// that has reported at least one position. Used by the geofence sweep.
	ListOpenSessionsWithPosition(ctx context.Context) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, companyID string) ([]Attendance, int64, error)
}
