package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, company_id, department, date,
	   check_in, check_out, last_latitude, last_longitude, last_seen_at,
	   worked_minutes, break_minutes, transition_buffer,
	   effective_work_hours, shrinkage_percentage,
	   status, status_reason, checkout_type,
	   overtime_status, scheduled_check_out, overtime_hours,
	   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Department, &att.Date,
		&att.CheckIn, &att.CheckOut, &att.LastLatitude, &att.LastLongitude, &att.LastSeenAt,
		&att.WorkedMinutes, &att.BreakMinutes, &att.TransitionBuffer,
		&att.EffectiveWorkHours, &att.ShrinkagePercentage,
		&att.Status, &att.StatusReason, &att.CheckoutType,
		&att.OvertimeStatus, &att.ScheduledCheckOut, &att.OvertimeHours,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, department, date,
			check_in, last_latitude, last_longitude, last_seen_at,
			status, overtime_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.CompanyID,
		newAttendance.Department,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.LastLatitude,
		newAttendance.LastLongitude,
		newAttendance.LastSeenAt,
		newAttendance.Status,
		newAttendance.OvertimeStatus,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// HasCheckedInToday implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasCheckedInToday(ctx context.Context, employeeID string, dateLocal string, companyID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1
			  AND company_id = $2
			  AND date = $3::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, dateLocal).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	return exists, nil
}

// CloseSession implements attendance.AttendanceRepository. The
// check_out IS NULL predicate is the single-writer guard: a session racing
// between a manual and an automatic checkout is closed exactly once.
func (a *attendanceRepository) CloseSession(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $3,
			last_latitude = $4,
			last_longitude = $5,
			worked_minutes = $6,
			break_minutes = $7,
			transition_buffer = $8,
			effective_work_hours = $9,
			shrinkage_percentage = $10,
			status = $11,
			status_reason = $12,
			checkout_type = $13,
			overtime_status = $14,
			overtime_hours = $15,
			updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CompanyID, att.CheckOut,
		att.LastLatitude, att.LastLongitude,
		att.WorkedMinutes, att.BreakMinutes, att.TransitionBuffer,
		att.EffectiveWorkHours, att.ShrinkagePercentage,
		att.Status, att.StatusReason, att.CheckoutType,
		att.OvertimeStatus, att.OvertimeHours,
	)
	if err != nil {
		return fmt.Errorf("failed to close attendance session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// Update implements attendance.AttendanceRepository. Guarded by the same
// check_out IS NULL predicate as CloseSession: an overtime request racing an
// auto checkout must not stamp overtime state onto a closed record.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET last_latitude = $3,
			last_longitude = $4,
			last_seen_at = $5,
			overtime_status = $6,
			scheduled_check_out = $7,
			overtime_hours = $8,
			updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CompanyID,
		att.LastLatitude, att.LastLongitude, att.LastSeenAt,
		att.OvertimeStatus, att.ScheduledCheckOut, att.OvertimeHours,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// UpdateLastPosition implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateLastPosition(ctx context.Context, id string, latitude, longitude float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET last_latitude = $2,
			last_longitude = $3,
			last_seen_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, latitude, longitude)
	if err != nil {
		return fmt.Errorf("failed to update last position: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListOpenSessionsWithPosition implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenSessionsWithPosition(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_out IS NULL
		  AND last_latitude IS NOT NULL
		  AND last_longitude IS NOT NULL
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		sessions = append(sessions, att)
	}

	return sessions, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	conditions, args = appendDateStatusFilters(conditions, args, filter.StartDate, filter.EndDate, filter.Status)

	return a.list(ctx, conditions, args, filter.SortBy, filter.SortOrder, filter.Page, filter.Limit)
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	conditions := []string{"company_id = $1", "employee_id = $2"}
	args := []interface{}{companyID, employeeID}

	conditions, args = appendDateStatusFilters(conditions, args, filter.StartDate, filter.EndDate, filter.Status)

	return a.list(ctx, conditions, args, filter.SortBy, filter.SortOrder, filter.Page, filter.Limit)
}

func appendDateStatusFilters(conditions []string, args []interface{}, startDate, endDate, status *string) ([]string, []interface{}) {
	if startDate != nil {
		args = append(args, *startDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if endDate != nil {
		args = append(args, *endDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d::date", len(args)))
	}
	if status != nil {
		args = append(args, *status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	return conditions, args
}

func (a *attendanceRepository) list(ctx context.Context, conditions []string, args []interface{}, sortBy, sortOrder string, page, limit int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Sort fields are whitelisted by the filter's Validate; default to the
	// most recent day first.
	if sortBy == "" {
		sortBy = "date"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, sortBy, strings.ToUpper(sortOrder), len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}
