package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/timesheet-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	inquiryService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/inquiry"
	payrollService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/payroll"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	var revoked tokenstore.Store
	if cfg.Redis.Addr != "" {
		revoked, err = tokenstore.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
	} else {
		slog.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
		revoked = tokenstore.NewMemoryStore()
	}
	defer revoked.Close()

	// Repositories
	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	clockEventRepo := postgresql.NewClockEventRepository(db)
	dailySummaryRepo := postgresql.NewDailySummaryRepository(db)
	payRateRepo := postgresql.NewPayRateRepository(db)
	paymentRecordRepo := postgresql.NewPaymentRecordRepository(db)
	inquiryRepo := postgresql.NewInquiryRepository(db)

	// Infrastructure
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, revoked)
	archive, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("init import archive: %w", err)
	}
	feed := sse.NewHub()
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email service: %w", err)
	}

	// Services
	authSvc := serviceAuth.NewAuthService(tx, userRepo, employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	aggregator := timesheetService.NewAggregator(clockEventRepo, dailySummaryRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		tx,
		employeeRepo,
		clockEventRepo,
		dailySummaryRepo,
		aggregator,
		archive,
		feed,
		cfg.Import.MaxRows,
	)
	payrollSvc := payrollService.NewPayrollService(tx, employeeRepo, dailySummaryRepo, payRateRepo, paymentRecordRepo)
	inquirySvc := inquiryService.NewInquiryService(inquiryRepo, emailService)

	// Background jobs
	scheduler := cron.NewScheduler(false)
	cron.NewPayrollJobs(payrollSvc, cfg.Payroll.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewTimesheetHandler(timesheetSvc, cfg.Import, feed),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewInquiryHandler(inquirySvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(feed.Close)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	// Let in-flight staff notifications finish before the process exits.
	inquirySvc.Wait()
	slog.Info("Server exiting")
	return nil
}
