package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masterbook/config"
	"masterbook/internal/bot"
	deliveryHttp "masterbook/internal/delivery/http"
	"masterbook/internal/delivery/http/handler"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/infrastructure/cache"
	"masterbook/internal/infrastructure/database"
	"masterbook/internal/repository"
	"masterbook/internal/scheduler"
	"masterbook/internal/service"
	"masterbook/internal/usecase"
	"masterbook/pkg/jwt"
	"masterbook/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Scheduler   *scheduler.Scheduler
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, sched, err := initialize(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.Scheduler = sched

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, usecases, the bot, the scheduler and the
// HTTP server.
func initialize(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *scheduler.Scheduler, error) {
	log := logrus.StandardLogger()

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timezone %q: %w", cfg.Booking.Timezone, err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	masterRepo := repository.NewMasterRepository()
	serviceRepo := repository.NewServiceRepository()
	priceRepo := repository.NewPriceRepository()
	clientRepo := repository.NewClientRepository()
	aptRepo := repository.NewAppointmentRepository()
	blackoutRepo := repository.NewBlackoutRepository()
	reminderRepo := repository.NewReminderRepository()
	eventRepo := repository.NewEventRepository()

	// Initialize services
	events := service.NewEventService(log, eventRepo)

	// Initialize usecases
	masterUsecase := usecase.NewMasterUsecase(db, log, masterRepo)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, events)
	priceUsecase := usecase.NewPriceUsecase(db, log, priceRepo, serviceRepo, events)
	clientUsecase := usecase.NewClientUsecase(db, log, clientRepo, events)
	blackoutUsecase := usecase.NewBlackoutUsecase(db, log, blackoutRepo, events)
	slotUsecase := usecase.NewSlotUsecase(db, log, cfg.Booking, masterRepo, aptRepo, blackoutRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, aptRepo, serviceRepo, priceRepo, clientRepo, reminderRepo, events)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, masterRepo, aptRepo, clientRepo, eventRepo)

	// Initialize bot
	transport, err := bot.NewTransport(cfg.Bot.Token, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telegram transport: %w", err)
	}
	sessions := bot.NewSessionStore(redisClient, cfg.Booking.FlowSessionExpiry)
	tgBot := bot.New(log, transport, sessions, loc, clientUsecase, bookingUsecase, slotUsecase, serviceUsecase, masterUsecase)
	notifier := bot.NewNotifier(transport, loc)
	log.Infof("Telegram bot authorized as @%s, expecting webhook at %s", transport.Self().UserName, cfg.Bot.WebhookURL)

	// Initialize scheduler
	sched := scheduler.New(log, redisClient)
	dispatcher := scheduler.NewReminderDispatcher(db, log, reminderRepo, clientRepo, events, notifier)
	sweeper := scheduler.NewLifecycleSweeper(db, log, clientRepo, events, notifier, cfg.Lifecycle.SleepingThresholdDays, cfg.Lifecycle.ReactivationCooldownDays)
	sched.AddPeriodic(dispatcher, cfg.Booking.DispatcherPeriod)
	if err := sched.AddCron(sweeper, cfg.Booking.SweeperCronSpec, loc); err != nil {
		return nil, nil, fmt.Errorf("invalid sweeper cron spec: %w", err)
	}

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(log, tgBot, cfg.Bot.WebhookSecret)
	authHandler := handler.NewAuthHandler(log, masterUsecase, jwtService, redisClient, cfg.Bot.Token)
	masterHandler := handler.NewMasterHandler(masterUsecase, customValidator, cfg.Booking.BufferOptions)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	priceHandler := handler.NewPriceHandler(priceUsecase, customValidator)
	blackoutHandler := handler.NewBlackoutHandler(blackoutUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		webhookHandler,
		authHandler,
		masterHandler,
		serviceHandler,
		priceHandler,
		blackoutHandler,
		dashboardHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, sched, nil
}

// Run starts the scheduler and the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Scheduler.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Stop background jobs after the webhook stops accepting updates
	app.Scheduler.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
