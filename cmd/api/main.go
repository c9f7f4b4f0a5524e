package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samerkamel/aura-sub004/internal/config"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	appHTTP "github.com/samerkamel/aura-sub004/internal/handler/http"
	"github.com/samerkamel/aura-sub004/internal/pkg/cron"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
	"github.com/samerkamel/aura-sub004/internal/pkg/jwt"
	"github.com/samerkamel/aura-sub004/internal/repository/memory"
	"github.com/samerkamel/aura-sub004/internal/repository/postgresql"
	attendanceService "github.com/samerkamel/aura-sub004/internal/service/attendance"
	calendarService "github.com/samerkamel/aura-sub004/internal/service/calendar"
	permissionService "github.com/samerkamel/aura-sub004/internal/service/permission"
	ruleService "github.com/samerkamel/aura-sub004/internal/service/rule"
	settingService "github.com/samerkamel/aura-sub004/internal/service/setting"
)

// repositories is the storage surface the services are built from.
type repositories struct {
	punch              attendance.PunchRepository
	permissionUsage    attendance.PermissionUsageRepository
	permissionOverride attendance.PermissionOverrideRepository
	holiday            attendance.HolidayRepository
	wfh                attendance.WfhRepository
	ruleConfig         rule.RuleConfigRepository
	latePenaltyTier    rule.LatePenaltyTierRepository
	setting            setting.SettingRepository
	employee           employee.EmployeeRepository
	leave              leave.ApprovedLeaveReader
	worklog            worklog.WorklogSource
	transactor         database.Transactor
	close              func()
}

func postgresRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &repositories{
		punch:              postgresql.NewPunchRepository(db),
		permissionUsage:    postgresql.NewPermissionUsageRepository(db),
		permissionOverride: postgresql.NewPermissionOverrideRepository(db),
		holiday:            postgresql.NewHolidayRepository(db),
		wfh:                postgresql.NewWfhRepository(db),
		ruleConfig:         postgresql.NewRuleConfigRepository(db),
		latePenaltyTier:    postgresql.NewLatePenaltyTierRepository(db),
		setting:            postgresql.NewSettingRepository(db),
		employee:           postgresql.NewEmployeeRepository(db),
		leave:              postgresql.NewApprovedLeaveReader(db),
		worklog:            postgresql.NewWorklogSource(db),
		transactor:         postgresql.NewTransactor(db),
		close:              db.Close,
	}, nil
}

func memoryRepositories(cfg *config.Config) (*repositories, error) {
	store := memory.NewStore()
	if cfg.Storage.SeedFile != "" {
		if err := memory.LoadSeedFile(store, cfg.Storage.SeedFile); err != nil {
			return nil, err
		}
		slog.Info("Loaded memory seed", "path", cfg.Storage.SeedFile)
	}

	return &repositories{
		punch:              memory.NewPunchRepository(store),
		permissionUsage:    memory.NewPermissionUsageRepository(store),
		permissionOverride: memory.NewPermissionOverrideRepository(store),
		holiday:            memory.NewHolidayRepository(store),
		wfh:                memory.NewWfhRepository(store),
		ruleConfig:         memory.NewRuleConfigRepository(store),
		latePenaltyTier:    memory.NewLatePenaltyTierRepository(store),
		setting:            memory.NewSettingRepository(store),
		employee:           memory.NewEmployeeRepository(store),
		leave:              memory.NewApprovedLeaveReader(store),
		worklog:            memory.NewWorklogSource(store),
		transactor:         memory.NewTransactor(store),
		close:              func() {},
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()

	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		repos, err = postgresRepositories(ctx, cfg)
	case config.StorageDriverMemory:
		repos, err = memoryRepositories(cfg)
	default:
		err = fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	defer repos.close()

	defaults := setting.Settings{
		WeekendDays:           setting.ParseWeekdays(cfg.Attendance.WeekendDays),
		WorkHoursPerDay:       cfg.Attendance.WorkHoursPerDay,
		WfhAttendanceHours:    cfg.Attendance.WfhAttendanceHours,
		PayrollCycleStartDay:  cfg.Attendance.PayrollCycleStartDay,
		AllowPastDateRequests: cfg.Attendance.AllowPastDateRequests,
		Location:              cfg.Location(),
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	settingSvc := settingService.NewSettingService(repos.setting, repos.transactor, defaults)
	ruleSvc := ruleService.NewRuleService(repos.ruleConfig, repos.latePenaltyTier)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.punch,
		repos.permissionUsage,
		repos.holiday,
		repos.wfh,
		repos.employee,
		repos.leave,
		repos.worklog,
		ruleSvc,
		settingSvc,
	)
	permissionSvc := permissionService.NewPermissionService(
		repos.permissionUsage,
		repos.permissionOverride,
		repos.employee,
		ruleSvc,
		settingSvc,
		repos.transactor,
	)
	calendarSvc := calendarService.NewCalendarService(
		repos.holiday,
		repos.wfh,
		repos.employee,
		ruleSvc,
		settingSvc,
		repos.transactor,
	)

	scheduler := cron.NewScheduler()
	if cfg.Attendance.DigestInterval > 0 {
		attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, settingSvc)
		if err := attendanceJobs.RegisterJobs(scheduler, cfg.Attendance.DigestInterval); err != nil {
			log.Fatal("Failed to register cron jobs: ", err)
		}
	}
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Rule:       appHTTP.NewRuleHandler(ruleSvc),
			Permission: appHTTP.NewPermissionHandler(permissionSvc),
			Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
			Setting:    appHTTP.NewSettingHandler(settingSvc),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}
