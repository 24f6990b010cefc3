package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamtrace/attendance-backend-go/internal/config"
	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	appHTTP "github.com/teamtrace/attendance-backend-go/internal/handler/http"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/cron"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/database"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/jwt"
	"github.com/teamtrace/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/teamtrace/attendance-backend-go/internal/service/attendance"
	companyService "github.com/teamtrace/attendance-backend-go/internal/service/company"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	company.ConfigureDefaults(
		cfg.Attendance.DefaultFullDayHours,
		cfg.Attendance.DefaultHalfDayHours,
		cfg.Attendance.DefaultTransitionBufferMins,
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workSettingsRepo := postgresql.NewWorkSettingsRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, workSettingsRepo, workLocationRepo)
	settingsSvc := companyService.NewSettingsService(db, workSettingsRepo, workLocationRepo)

	scheduler := cron.NewScheduler()
	geofenceJobs := cron.NewGeofenceJobs(attendanceRepo, attendanceSvc, cfg.Attendance.GeofenceSweepInterval)
	geofenceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	companyHandler := appHTTP.NewCompanyHandler(settingsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		companyHandler,
		cfg.App.Env,
		cfg.App.AllowedOrigins,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	server.Close()
}
