package attendance

import (
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
)

// CheckoutType records which path closed an attendance session. All three
// paths run the same shrinkage calculation and day classification; only the
// reason suffix and overtime side fields differ.
type CheckoutType string

const (
	CheckoutManual       CheckoutType = "manual"
	CheckoutAutoGeofence CheckoutType = "auto_geofence"
	CheckoutOvertime     CheckoutType = "overtime"
)

// OvertimeStatus tracks the overtime request attached to a session.
type OvertimeStatus string

const (
	OvertimeNone      OvertimeStatus = "none"
	OvertimePending   OvertimeStatus = "pending"
	OvertimeConfirmed OvertimeStatus = "confirmed"
	OvertimeDeclined  OvertimeStatus = "declined"
	OvertimeCancelled OvertimeStatus = "cancelled"
)

type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Department string
	Date       time.Time

	CheckIn  *time.Time
	CheckOut *time.Time

	// Last reported coordinates, refreshed by location reports and used by
	// the geofence sweep.
	LastLatitude  *float64
	LastLongitude *float64
	LastSeenAt    *time.Time

	// Filled at checkout from the shrinkage calculator.
	WorkedMinutes       *float64
	BreakMinutes        *float64
	TransitionBuffer    *float64
	EffectiveWorkHours  *float64
	ShrinkagePercentage *float64

	Status       string
	StatusReason *string
	CheckoutType *CheckoutType

	OvertimeStatus    OvertimeStatus
	ScheduledCheckOut *time.Time
	OvertimeHours     *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	// Thresholds the last classification was derived from; transient, not
	// persisted (reproducible from settings + effective hours).
	Thresholds *shrinkage.Thresholds
}

// IsOpen reports whether the session still lacks a checkout.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}
