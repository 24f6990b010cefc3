package http

import (
	"log/slog"
	"os"

	"github.com/teamtrace/attendance-backend-go/internal/handler/http/middleware"
	"github.com/teamtrace/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	companyHandler CompanyHandler,
	env string,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/location", attendanceHandler.ReportLocation)

				r.Route("/overtime", func(r chi.Router) {
					r.Post("/request", attendanceHandler.RequestOvertime)
					r.Post("/confirm", attendanceHandler.ConfirmOvertime)
					r.Post("/decline", attendanceHandler.DeclineOvertime)
					r.Patch("/check-out", attendanceHandler.OvertimeCheckOut)
				})

				r.Get("/my", attendanceHandler.GetMyAttendance)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/settings", companyHandler.GetWorkSettings)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/settings", companyHandler.UpdateWorkSettings)

					r.Route("/locations", func(r chi.Router) {
						r.Get("/", companyHandler.ListWorkLocations)
						r.Post("/", companyHandler.CreateWorkLocation)
						r.Put("/{id}", companyHandler.UpdateWorkLocation)
						r.Delete("/{id}", companyHandler.DeleteWorkLocation)
					})
				})
			})
		})
	})
	return r
}
