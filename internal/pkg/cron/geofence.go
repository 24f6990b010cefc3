package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	attendanceService "github.com/teamtrace/attendance-backend-go/internal/service/attendance"
)

type GeofenceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	attendanceSvc  *attendanceService.AttendanceServiceImpl
	sweepInterval  time.Duration
}

func NewGeofenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	attendanceSvc *attendanceService.AttendanceServiceImpl,
	sweepInterval time.Duration,
) *GeofenceJobs {
	return &GeofenceJobs{
		attendanceRepo: attendanceRepo,
		attendanceSvc:  attendanceSvc,
		sweepInterval:  sweepInterval,
	}
}

func (j *GeofenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("geofence_sweep", j.sweepInterval, j.SweepOpenSessions)
}

// SweepOpenSessions re-evaluates the last reported position of every open
// session and auto-checks-out the ones that have left their company's
// geofenced locations. Sessions with no position yet are skipped.
func (j *GeofenceJobs) SweepOpenSessions(ctx context.Context) error {
	sessions, err := j.attendanceRepo.ListOpenSessionsWithPosition(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(sessions) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range sessions {
		closed, err := j.attendanceSvc.AutoCheckoutIfOutside(ctx, session)
		if err != nil {
			if errors.Is(err, attendance.ErrNoPositionReported) || errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				continue
			}
			slog.Error("Cron: Failed to evaluate session geofence",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		if closed {
			closedCount++
			slog.Info("Cron: Auto checked-out session outside geofence",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID)
		}
	}

	if closedCount > 0 {
		slog.Info("Cron: Geofence sweep completed",
			"checked", len(sessions),
			"closed", closedCount)
	}
	return nil
}
