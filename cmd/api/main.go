package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-tracker/internal/api/http"
	"github.com/spec-kit/shift-tracker/internal/api/http/handlers"
	"github.com/spec-kit/shift-tracker/internal/auth"
	"github.com/spec-kit/shift-tracker/internal/config"
	"github.com/spec-kit/shift-tracker/internal/events"
	"github.com/spec-kit/shift-tracker/internal/observability"
	"github.com/spec-kit/shift-tracker/internal/persistence"
	"github.com/spec-kit/shift-tracker/internal/repository"
	"github.com/spec-kit/shift-tracker/internal/repository/memory"
	"github.com/spec-kit/shift-tracker/internal/service"
	"github.com/spec-kit/shift-tracker/internal/worker"
)

type repositories struct {
	users         repository.UserRepository
	entries       repository.TimeEntryRepository
	shifts        repository.ShiftRepository
	notifications repository.NotificationRepository
	branches      repository.BranchRepository
	departments   repository.DepartmentRepository
	resets        repository.PasswordResetRepository
}

func newRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		store := memory.NewStore()
		return repositories{
			users:         store.Users(),
			entries:       store.TimeEntries(),
			shifts:        store.Shifts(),
			notifications: store.Notifications(),
			branches:      store.Branches(),
			departments:   store.Departments(),
			resets:        store.PasswordResets(),
		}
	}
	pool := pg.Pool
	return repositories{
		users:         repository.NewUserRepository(pool),
		entries:       repository.NewTimeEntryRepository(pool),
		shifts:        repository.NewShiftRepository(pool),
		notifications: repository.NewNotificationRepository(pool),
		branches:      repository.NewBranchRepository(pool),
		departments:   repository.NewDepartmentRepository(pool),
		resets:        repository.NewPasswordResetRepository(pool),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := newRepositories(pg)
	location := cfg.Session.Location()

	var (
		revocations auth.RevocationList   = auth.NewMemoryRevocationList()
		ledger      worker.ReminderLedger = worker.NewMemoryReminderLedger()
		publisher   service.Publisher
	)
	if redis.Enabled() {
		revocations = auth.NewRedisRevocationList(redis.Client)
		ledger = worker.NewRedisReminderLedger(redis.Client)
		publisher = redis
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	policy := auth.NewPolicy(cfg.Access)
	clock := service.SystemClock{}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:          repos.users,
		PasswordResetRepo: repos.resets,
		Revocations:       revocations,
		Clock:             clock,
		Logger:            logger,
	})
	sessionService := service.NewTimeSessionService(cfg.Session, service.TimeSessionDependencies{
		Entries:    repos.entries,
		Clock:      clock,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(cfg.Notification, location, service.NotificationDependencies{
		Dispatcher: dispatcher,
		Repo:       repos.notifications,
		Publisher:  publisher,
		Metrics:    metrics,
		Logger:     logger,
	})
	shiftService := service.NewShiftService(location, service.ShiftDependencies{
		Shifts:     repos.shifts,
		Users:      repos.users,
		Branches:   repos.branches,
		Dispatcher: dispatcher,
		Clock:      clock,
		Logger:     logger,
	})
	employeeService := service.NewEmployeeService(repos.users, repos.departments, policy)
	orgService := service.NewOrgService(service.OrgDependencies{
		BranchRepo:     repos.branches,
		DepartmentRepo: repos.departments,
	})
	dashboardService := service.NewDashboardService(location, service.DashboardDependencies{
		Shifts:        shiftService,
		Sessions:      sessionService,
		Notifications: notificationService,
		Users:         repos.users,
		ShiftRepo:     repos.shifts,
		Entries:       repos.entries,
		Roles:         policy,
		Clock:         clock,
	})

	worker.StartNotificationWorker(notificationService)
	reminders := worker.NewShiftReminderWorker(repos.shifts, notificationService, ledger, clock,
		cfg.Notification.ReminderLead(), cfg.Notification.ReminderInterval(), logger)
	go reminders.Run(ctx)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users, policy, revocations, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService, policy, cfg.App.IsDevelopment()),
		Time:           handlers.NewTimeHandler(sessionService),
		Shifts:         handlers.NewShiftHandler(shiftService),
		Employees:      handlers.NewEmployeeHandler(employeeService),
		Org:            handlers.NewOrgHandler(orgService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Notifications:  handlers.NewNotificationHandler(notificationService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
