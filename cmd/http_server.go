package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	"github.com/frahmantamala/asset-lifecycle/internal/allocation"
	"github.com/frahmantamala/asset-lifecycle/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-lifecycle/internal/asset/postgres"
	"github.com/frahmantamala/asset-lifecycle/internal/churn"
	churnPostgres "github.com/frahmantamala/asset-lifecycle/internal/churn/postgres"
	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
	"github.com/frahmantamala/asset-lifecycle/internal/employee"
	employeePostgres "github.com/frahmantamala/asset-lifecycle/internal/employee/postgres"
	assetHealth "github.com/frahmantamala/asset-lifecycle/internal/health"
	"github.com/frahmantamala/asset-lifecycle/internal/notification"
	"github.com/frahmantamala/asset-lifecycle/internal/procurement"
	"github.com/frahmantamala/asset-lifecycle/internal/recovery"
	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/frahmantamala/asset-lifecycle/internal/transport/rest"
	"github.com/frahmantamala/asset-lifecycle/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	// Repositories
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	analyticsRepo := churnPostgres.NewAnalyticsRepository(gormDB)

	// Event bus plus the notification side subscribed to it
	eventBus := events.NewEventBus(appLogger)
	mailer := notification.NewSMTPMailer(config.Notification, appLogger)
	notification.NewEventHandler(mailer, appLogger).RegisterHandlers(eventBus)

	// Services
	employeeService := employee.NewService(employeeRepo, assetRepo, appLogger)
	assetService := asset.NewService(assetRepo, appLogger)
	allocationService := allocation.NewService(employeeRepo, assetRepo, appLogger)
	recoveryService := recovery.NewService(employeeRepo, assetRepo, eventBus, config.Procurement.ReturnGraceDays, appLogger)
	healthService := assetHealth.NewService(assetRepo, config.Procurement.RefreshAgeYears, appLogger)
	churnClient := churn.NewModelClient(churn.ModelClientConfig{
		BaseURL: config.Churn.ModelAPIURL,
		APIKey:  config.Churn.APIKey,
		Timeout: config.Churn.RequestTimeout,
	}, appLogger)
	churnService := churn.NewService(employeeRepo, analyticsRepo, churnClient, config.Churn.HighRiskThreshold, appLogger)
	procurementService := procurement.NewService(healthService, churnService, assetRepo,
		config.Procurement.ForecastMonths, config.Procurement.SafetyStockPercent, appLogger)

	// Handlers
	baseHandler := transport.NewBaseHandler(appLogger)
	handlers := rest.Handlers{
		Employee:    employee.NewHandler(baseHandler, employeeService, recoveryService),
		Asset:       asset.NewHandler(baseHandler, assetService),
		Allocation:  allocation.NewHandler(baseHandler, allocationService),
		Recovery:    recovery.NewHandler(baseHandler, recoveryService),
		AssetHealth: assetHealth.NewHandler(baseHandler, healthService),
		Churn:       churn.NewHandler(baseHandler, churnService),
		Procurement: procurement.NewHandler(baseHandler, procurementService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   appLogger,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		EventBus: eventBus,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing connection pool so sqlx and GORM share it.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
