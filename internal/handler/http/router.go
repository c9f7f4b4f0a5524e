package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

type Handlers struct {
	Attendance AttendanceHandler
	Rule       RuleHandler
	Permission PermissionHandler
	Calendar   CalendarHandler
	Setting    SettingHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "aura-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
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
				r.Get("/daily-records", h.Attendance.ListDailyRecords)
				r.Get("/summaries/employees/{employeeID}", h.Attendance.EmployeeSummary)

				r.Get("/rules", h.Rule.Get)
				r.Get("/holidays", h.Calendar.ListHolidays)
				r.Get("/wfh", h.Calendar.ListWfhRecords)
				r.Get("/settings", h.Setting.Get)

				r.Get("/permissions/{employeeID}/balance", h.Permission.Balance)
				r.Get("/permissions/{employeeID}/overrides", h.Permission.GetOverride)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)

					r.Get("/summaries/organization", h.Attendance.OrganizationSummary)

					r.Post("/punches", h.Attendance.RecordPunches)
					r.Post("/punches/manual", h.Attendance.AddManualPunch)

					r.Put("/rules/flexible-hours", h.Rule.UpdateFlexibleHours)
					r.Post("/rules/late-penalty-tiers", h.Rule.CreateLatePenaltyTier)
					r.Delete("/rules/late-penalty-tiers/{id}", h.Rule.DeleteLatePenaltyTier)
					r.Put("/rules/permission", h.Rule.UpdatePermissionConfig)
					r.Put("/rules/wfh-policy", h.Rule.UpdateWfhPolicy)
					r.Delete("/rules/wfh-policy", h.Rule.DeleteWfhPolicy)

					r.Post("/permissions", h.Permission.Grant)
					r.Post("/permissions/overrides", h.Permission.GrantExtra)
					r.Delete("/permissions/{employeeID}/{date}", h.Permission.Revoke)

					r.Post("/holidays", h.Calendar.CreateHoliday)
					r.Delete("/holidays/{id}", h.Calendar.DeleteHoliday)

					r.Post("/wfh", h.Calendar.CreateWfhRecord)
					r.Delete("/wfh/{id}", h.Calendar.DeleteWfhRecord)

					r.Put("/settings", h.Setting.Update)
				})
			})
		})
	})

	return r
}
