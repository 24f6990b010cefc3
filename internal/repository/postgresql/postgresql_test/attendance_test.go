package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/teamtrace/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this package need a real PostgreSQL instance and are skipped
// unless TEST_DATABASE_URL is set.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	_, err = db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS attendances (
			id TEXT PRIMARY KEY,
			employee_id TEXT NOT NULL,
			company_id TEXT NOT NULL,
			department TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			check_in TIMESTAMPTZ,
			check_out TIMESTAMPTZ,
			last_latitude DOUBLE PRECISION,
			last_longitude DOUBLE PRECISION,
			last_seen_at TIMESTAMPTZ,
			worked_minutes DOUBLE PRECISION,
			break_minutes DOUBLE PRECISION,
			transition_buffer DOUBLE PRECISION,
			effective_work_hours DOUBLE PRECISION,
			shrinkage_percentage DOUBLE PRECISION,
			status TEXT NOT NULL,
			status_reason TEXT,
			checkout_type TEXT,
			overtime_status TEXT NOT NULL,
			scheduled_check_out TIMESTAMPTZ,
			overtime_hours DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE attendances")
	require.NoError(t, err)

	return db
}

// Helper untuk membuat open session untuk testing
func createOpenSession(t *testing.T, ctx context.Context, repo attendance.AttendanceRepository, id string) attendance.Attendance {
	checkIn := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	lat, lon := 28.6139, 77.2090

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:             id,
		EmployeeID:     "emp-1",
		CompanyID:      "co-1",
		Department:     "Engineering",
		Date:           time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:        &checkIn,
		LastLatitude:   &lat,
		LastLongitude:  &lon,
		LastSeenAt:     &checkIn,
		Status:         "open",
		OvertimeStatus: attendance.OvertimeNone,
	})
	require.NoError(t, err)
	return created
}

func closedCopy(session attendance.Attendance) attendance.Attendance {
	checkOut := session.CheckIn.Add(9 * time.Hour)
	worked := 540.0
	breaks := 60.0
	buffer := 5.0
	effective := 7.92
	shrinkagePct := 12.04
	reason := "Worked 7.92 effective hours, meeting the full-day threshold of 7.20 hours"
	checkoutType := attendance.CheckoutManual

	session.CheckOut = &checkOut
	session.WorkedMinutes = &worked
	session.BreakMinutes = &breaks
	session.TransitionBuffer = &buffer
	session.EffectiveWorkHours = &effective
	session.ShrinkagePercentage = &shrinkagePct
	session.Status = "present"
	session.StatusReason = &reason
	session.CheckoutType = &checkoutType
	return session
}

func TestAttendanceRepository_CreateAndGetOpenSession(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	created := createOpenSession(t, ctx, repo, "att-1")
	assert.False(t, created.CreatedAt.IsZero())

	open, err := repo.GetOpenSession(ctx, "emp-1", "co-1")
	require.NoError(t, err)
	assert.Equal(t, "att-1", open.ID)
	assert.True(t, open.IsOpen())
	require.NotNil(t, open.CheckIn)
	assert.True(t, open.CheckIn.Equal(*created.CheckIn))
}

func TestAttendanceRepository_GetOpenSession_NotFound(t *testing.T) {
	db := testDatabase(t)
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.GetOpenSession(context.Background(), "emp-missing", "co-1")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_HasCheckedInToday(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	createOpenSession(t, ctx, repo, "att-1")

	checkedIn, err := repo.HasCheckedInToday(ctx, "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)
	assert.True(t, checkedIn)

	checkedIn, err = repo.HasCheckedInToday(ctx, "emp-1", "2026-03-03", "co-1")
	require.NoError(t, err)
	assert.False(t, checkedIn)
}

func TestAttendanceRepository_CloseSession_SecondCloseRejected(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	session := closedCopy(createOpenSession(t, ctx, repo, "att-1"))

	// First close wins
	require.NoError(t, repo.CloseSession(ctx, session))

	// A racing second writer hits the check_out IS NULL predicate and loses
	err := repo.CloseSession(ctx, session)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	// The session is closed exactly once
	stored, err := repo.GetByID(ctx, "att-1", "co-1")
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOut)
	assert.True(t, stored.CheckOut.Equal(*session.CheckOut))
	assert.Equal(t, "present", stored.Status)
}

func TestAttendanceRepository_Update_ClosedSessionRejected(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	session := closedCopy(createOpenSession(t, ctx, repo, "att-1"))
	require.NoError(t, repo.CloseSession(ctx, session))

	// An overtime request racing the close must not touch the closed record
	scheduled := session.CheckIn.Add(10 * time.Hour)
	session.OvertimeStatus = attendance.OvertimePending
	session.ScheduledCheckOut = &scheduled

	err := repo.Update(ctx, session)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	stored, err := repo.GetByID(ctx, "att-1", "co-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.OvertimeNone, stored.OvertimeStatus)
	assert.Nil(t, stored.ScheduledCheckOut)
}

func TestAttendanceRepository_Update_OpenSession(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	session := createOpenSession(t, ctx, repo, "att-1")
	scheduled := session.CheckIn.Add(10 * time.Hour)
	session.OvertimeStatus = attendance.OvertimePending
	session.ScheduledCheckOut = &scheduled

	require.NoError(t, repo.Update(ctx, session))

	stored, err := repo.GetByID(ctx, "att-1", "co-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.OvertimePending, stored.OvertimeStatus)
	require.NotNil(t, stored.ScheduledCheckOut)
	assert.True(t, stored.ScheduledCheckOut.Equal(scheduled))
}

func TestAttendanceRepository_ListOpenSessionsWithPosition(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	session := createOpenSession(t, ctx, repo, "att-1")

	// A session without coordinates is invisible to the sweep
	noPos := session
	noPos.ID = "att-2"
	noPos.EmployeeID = "emp-2"
	noPos.LastLatitude = nil
	noPos.LastLongitude = nil
	_, err := repo.Create(ctx, noPos)
	require.NoError(t, err)

	sessions, err := repo.ListOpenSessionsWithPosition(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "att-1", sessions[0].ID)
}
