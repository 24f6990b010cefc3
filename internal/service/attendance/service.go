package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/domain/geofence"
	"github.com/teamtrace/attendance-backend-go/internal/domain/shrinkage"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/teamtrace/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	settingsRepo company.WorkSettingsRepository
	locationRepo company.WorkLocationRepository

	now  func() time.Time
	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo company.WorkSettingsRepository,
	locationRepo company.WorkLocationRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		settingsRepo:         settingsRepo,
		locationRepo:         locationRepo,
		now:                  time.Now,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}

type identity struct {
	EmployeeID string
	CompanyID  string
	Department string
}

// identityFromContext extracts the employee identity from the verified
// token claims.
func identityFromContext(ctx context.Context) (identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return identity{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return identity{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	department, _ := claims["department"].(string)

	return identity{EmployeeID: employeeID, CompanyID: companyID, Department: department}, nil
}

// workSettings loads the company configuration, seeding defaults the first
// time a company touches attendance.
func (a *AttendanceServiceImpl) workSettings(ctx context.Context, companyID string) (company.WorkSettings, error) {
	settings, err := a.settingsRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingsNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return a.settingsRepo.Upsert(ctx, company.DefaultWorkSettings(companyID))
		}
		return company.WorkSettings{}, fmt.Errorf("failed to get work settings: %w", err)
	}
	return settings, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	settings, err := a.workSettings(ctx, ident.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := a.now().UTC()
	nowLocal := nowUTC.In(settings.Location())
	dateLocal := nowLocal.Format("2006-01-02")

	data := attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: ident.EmployeeID,
		CompanyID:  ident.CompanyID,
		Department: ident.Department,

		// Date is the company-local work day, not a timestamp.
		Date: time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC),

		CheckIn:       &nowUTC,
		LastLatitude:  &req.Latitude,
		LastLongitude: &req.Longitude,
		LastSeenAt:    &nowUTC,

		Status:         "open",
		OvertimeStatus: attendance.OvertimeNone,
	}

	// Guard and insert run in one transaction so two concurrent check-ins
	// cannot both pass the guard.
	var created attendance.Attendance
	err = a.inTx(ctx, func(txCtx context.Context) error {
		hasCheckedIn, err := a.AttendanceRepository.HasCheckedInToday(txCtx, ident.EmployeeID, dateLocal, ident.CompanyID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check if employee has checked in today: %w", err)
		}
		if hasCheckedIn {
			return attendance.ErrAlreadyCheckedIn
		}

		created, err = a.AttendanceRepository.Create(txCtx, data)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := a.now().UTC()
	session.LastLatitude = &req.Latitude
	session.LastLongitude = &req.Longitude

	closed, err := a.closeSession(ctx, session, nowUTC, attendance.CheckoutManual, "")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(closed), nil
}

// ReportLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReportLocation(ctx context.Context, req attendance.ReportLocationRequest) (attendance.GeofenceCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GeofenceCheckResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.GeofenceCheckResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.GeofenceCheckResponse{}, err
	}

	if err := a.AttendanceRepository.UpdateLastPosition(ctx, session.ID, req.Latitude, req.Longitude); err != nil {
		return attendance.GeofenceCheckResponse{}, fmt.Errorf("failed to update last position: %w", err)
	}
	session.LastLatitude = &req.Latitude
	session.LastLongitude = &req.Longitude

	evaluation, err := a.evaluateGeofence(ctx, session, geofence.Point{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		return attendance.GeofenceCheckResponse{}, err
	}

	resp := attendance.GeofenceCheckResponse{
		IsWithinGeofence: evaluation.IsWithinGeofence,
		ClosestLocation:  evaluation.ClosestLocation,
		MinDistance:      evaluation.MinDistance,
	}

	if evaluation.IsWithinGeofence {
		return resp, nil
	}

	closed, err := a.autoCheckout(ctx, session)
	if err != nil {
		return attendance.GeofenceCheckResponse{}, err
	}

	closedResp := mapAttendanceToResponse(closed)
	resp.CheckedOut = true
	resp.Attendance = &closedResp
	return resp, nil
}

// AutoCheckoutIfOutside closes the session when its last reported position
// is outside every allowed location. Used by the geofence sweep job; the
// HTTP path goes through ReportLocation.
func (a *AttendanceServiceImpl) AutoCheckoutIfOutside(ctx context.Context, session attendance.Attendance) (bool, error) {
	if session.LastLatitude == nil || session.LastLongitude == nil {
		return false, attendance.ErrNoPositionReported
	}

	evaluation, err := a.evaluateGeofence(ctx, session, geofence.Point{
		Latitude:  *session.LastLatitude,
		Longitude: *session.LastLongitude,
	})
	if err != nil {
		return false, err
	}

	if evaluation.IsWithinGeofence {
		return false, nil
	}

	if _, err := a.autoCheckout(ctx, session); err != nil {
		return false, err
	}
	return true, nil
}

// RequestOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RequestOvertime(ctx context.Context, req attendance.RequestOvertimeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if session.OvertimeStatus != attendance.OvertimeNone && session.OvertimeStatus != attendance.OvertimeCancelled {
		return attendance.AttendanceResponse{}, attendance.ErrOvertimeAlreadyDecided
	}

	scheduledOut, err := time.Parse(time.RFC3339, req.ScheduledCheckOut)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse scheduled check-out: %w", err)
	}
	scheduledOutUTC := scheduledOut.UTC()

	session.OvertimeStatus = attendance.OvertimePending
	session.ScheduledCheckOut = &scheduledOutUTC

	if err := a.AttendanceRepository.Update(ctx, session); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to request overtime: %w", err)
	}

	return mapAttendanceToResponse(session), nil
}

// ConfirmOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ConfirmOvertime(ctx context.Context) (attendance.AttendanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if session.OvertimeStatus != attendance.OvertimePending {
		return attendance.AttendanceResponse{}, attendance.ErrNoOvertimeRequest
	}

	session.OvertimeStatus = attendance.OvertimeConfirmed
	if err := a.AttendanceRepository.Update(ctx, session); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to confirm overtime: %w", err)
	}

	return mapAttendanceToResponse(session), nil
}

// DeclineOvertime implements attendance.AttendanceService. Declining closes
// the session immediately, through the same calculation as a manual
// checkout.
func (a *AttendanceServiceImpl) DeclineOvertime(ctx context.Context) (attendance.AttendanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if session.OvertimeStatus != attendance.OvertimePending {
		return attendance.AttendanceResponse{}, attendance.ErrNoOvertimeRequest
	}

	session.OvertimeStatus = attendance.OvertimeDeclined

	closed, err := a.closeSession(ctx, session, a.now().UTC(), attendance.CheckoutManual, "overtime declined")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(closed), nil
}

// OvertimeCheckOut implements attendance.AttendanceService. Overtime hours
// are the positive part of (checkout - scheduled checkout); the shrinkage
// calculation itself is identical to the other paths.
func (a *AttendanceServiceImpl) OvertimeCheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := a.openSession(ctx, ident)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if session.OvertimeStatus != attendance.OvertimeConfirmed {
		return attendance.AttendanceResponse{}, attendance.ErrOvertimeNotConfirmed
	}

	nowUTC := a.now().UTC()

	var overtimeHours float64
	if session.ScheduledCheckOut != nil && nowUTC.After(*session.ScheduledCheckOut) {
		overtimeHours = round2(nowUTC.Sub(*session.ScheduledCheckOut).Hours())
	}
	session.OvertimeHours = &overtimeHours
	session.LastLatitude = &req.Latitude
	session.LastLongitude = &req.Longitude

	closed, err := a.closeSession(ctx, session, nowUTC, attendance.CheckoutOvertime,
		fmt.Sprintf("overtime checkout, %.2f overtime hours", overtimeHours))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(closed), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id, ident.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.GetMyAttendance(ctx, ident.EmployeeID, filter, ident.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	ident, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter, ident.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// openSession loads the caller's open session or reports ErrNotCheckedIn.
func (a *AttendanceServiceImpl) openSession(ctx context.Context, ident identity) (attendance.Attendance, error) {
	session, err := a.AttendanceRepository.GetOpenSession(ctx, ident.EmployeeID, ident.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return session, nil
}

// evaluateGeofence runs the stateless evaluator over the company's active
// locations.
func (a *AttendanceServiceImpl) evaluateGeofence(ctx context.Context, session attendance.Attendance, point geofence.Point) (geofence.Evaluation, error) {
	locations, err := a.locationRepo.ListByCompanyID(ctx, session.CompanyID)
	if err != nil {
		return geofence.Evaluation{}, fmt.Errorf("failed to list work locations: %w", err)
	}

	fences := make([]geofence.Location, 0, len(locations))
	for _, loc := range locations {
		fences = append(fences, geofence.Location{
			ID:                 loc.ID,
			Name:               loc.Name,
			Latitude:           loc.Latitude,
			Longitude:          loc.Longitude,
			RadiusMeters:       loc.RadiusMeters,
			AllowedDepartments: loc.AllowedDepartments,
			AllowedEmployees:   loc.AllowedEmployees,
			IsActive:           loc.IsActive,
		})
	}

	subject := geofence.Subject{EmployeeID: session.EmployeeID, Department: session.Department}
	return geofence.Evaluate(subject, fences, point), nil
}

// autoCheckout closes a session found outside the geofence and cancels any
// pending overtime request tied to it.
func (a *AttendanceServiceImpl) autoCheckout(ctx context.Context, session attendance.Attendance) (attendance.Attendance, error) {
	if session.OvertimeStatus == attendance.OvertimePending {
		session.OvertimeStatus = attendance.OvertimeCancelled
	}

	return a.closeSession(ctx, session, a.now().UTC(), attendance.CheckoutAutoGeofence, "outside geofence")
}

// closeSession runs the shared checkout calculation and persists it. Every
// terminal path goes through here so the three checkout types cannot drift
// apart in semantics.
func (a *AttendanceServiceImpl) closeSession(ctx context.Context, session attendance.Attendance, checkOutUTC time.Time, checkoutType attendance.CheckoutType, reasonSuffix string) (attendance.Attendance, error) {
	if session.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if !checkOutUTC.After(*session.CheckIn) {
		return attendance.Attendance{}, attendance.ErrInvalidInterval
	}

	settings, err := a.workSettings(ctx, session.CompanyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	// The configured buffer is forwarded as a pointer so a company that set
	// it to zero is charged zero, not the built-in default.
	result := shrinkage.CalculateEffectiveWorkHours(*session.CheckIn, checkOutUTC, settings.BreakTimings, shrinkage.Options{
		Location:              settings.Location(),
		BufferPerBreakMinutes: &settings.TransitionBufferMinutes,
	})
	verdict := shrinkage.DetermineAttendanceStatus(result.EffectiveWorkHours, settings.StatusSettings())

	reason := verdict.Reason
	if reasonSuffix != "" {
		reason = fmt.Sprintf("%s (%s)", verdict.Reason, reasonSuffix)
	}

	session.CheckOut = &checkOutUTC
	session.WorkedMinutes = &result.TotalLoggedMinutes
	session.BreakMinutes = &result.BreakMinutes
	session.TransitionBuffer = &result.TransitionBuffer
	session.EffectiveWorkHours = &result.EffectiveWorkHours
	session.ShrinkagePercentage = &result.ShrinkagePercentage
	session.Status = string(verdict.Status)
	session.StatusReason = &reason
	session.CheckoutType = &checkoutType
	session.Thresholds = &verdict.Thresholds

	if err := a.AttendanceRepository.CloseSession(ctx, session); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance session: %w", err)
	}

	return session, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                  att.ID,
		EmployeeID:          att.EmployeeID,
		EmployeeName:        att.EmployeeName,
		Date:                att.Date.Format("2006-01-02"),
		CheckInTime:         timePtrToString(att.CheckIn),
		CheckOutTime:        timePtrToString(att.CheckOut),
		WorkedMinutes:       att.WorkedMinutes,
		BreakMinutes:        att.BreakMinutes,
		TransitionBuffer:    att.TransitionBuffer,
		EffectiveWorkHours:  att.EffectiveWorkHours,
		ShrinkagePercentage: att.ShrinkagePercentage,
		Status:              att.Status,
		StatusReason:        att.StatusReason,
		Thresholds:          att.Thresholds,
		CheckoutType:        att.CheckoutType,
		OvertimeStatus:      att.OvertimeStatus,
		ScheduledCheckOut:   timePtrToString(att.ScheduledCheckOut),
		OvertimeHours:       att.OvertimeHours,
	}

	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format("2006-01-02 15:04:05")
	}

	return resp
}

func buildListResponse(attendances []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
