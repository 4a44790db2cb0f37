package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	timesheetHandler TimesheetHandler,
	payrollHandler PayrollHandler,
	inquiryHandler InquiryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(appConfig.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Public contact form
		r.Post("/inquiries", inquiryHandler.Create)

		// Requires authentication
		r.Group(func(r chi.Router) {
			// The query fallback serves EventSource clients, which cannot set headers.
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/employees/me", employeeHandler.Me)

			r.Route("/timesheet", func(r chi.Router) {
				r.Post("/actions", timesheetHandler.RecordAction)
				r.Post("/import", timesheetHandler.Import)
				r.Get("/summary", timesheetHandler.GetSummary)
				r.Get("/recent", timesheetHandler.ListRecent)
				r.Get("/recent/stream", timesheetHandler.StreamRecent)
			})

			r.Route("/payrate", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPayRate)
				r.Put("/", payrollHandler.SetPayRate)
			})
			r.Get("/payments", payrollHandler.ListPayments)

			r.Route("/payouts", func(r chi.Router) {
				r.Post("/", payrollHandler.GetPayouts)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/confirm", payrollHandler.ConfirmPayout)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/inquiries", inquiryHandler.List)
				r.Get("/inquiries/{transactionNo}", inquiryHandler.Get)
				r.Put("/inquiries/{transactionNo}", inquiryHandler.Update)
				r.Delete("/inquiries/{transactionNo}", inquiryHandler.Delete)
			})
		})
	})
	return r
}
