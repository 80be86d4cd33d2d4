package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/oltecnologia/analyst-management/internal"
	"github.com/oltecnologia/analyst-management/internal/analyst"
	analystPostgres "github.com/oltecnologia/analyst-management/internal/analyst/postgres"
	"github.com/oltecnologia/analyst-management/internal/auth"
	authPostgres "github.com/oltecnologia/analyst-management/internal/auth/postgres"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
	"github.com/oltecnologia/analyst-management/internal/salary"
	salaryPostgres "github.com/oltecnologia/analyst-management/internal/salary/postgres"
	"github.com/oltecnologia/analyst-management/internal/transport/rest"
	"github.com/oltecnologia/analyst-management/internal/user"
	userPostgres "github.com/oltecnologia/analyst-management/internal/user/postgres"
	"github.com/oltecnologia/analyst-management/internal/vacation"
	vacationPostgres "github.com/oltecnologia/analyst-management/internal/vacation/postgres"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

// Seed admin credentials; the bootstrap account every fresh store gets.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
	seedAdminName     = "Administrador"
	seedAdminEmail    = "admin@oltecnologia.com"
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
	DB       *gorm.DB
	Router   *chi.Mux
	Sessions *auth.Registry
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Sessions.Close()
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Database close error", "error", err)
			}
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

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sessions := auth.NewRegistry(config.Security.SessionTTL, config.Security.SweepInterval)

	userRepo := userPostgres.NewUserRepository(db)
	analystRepo := analystPostgres.NewAnalystRepository(db)
	vacationRepo := vacationPostgres.NewVacationRepository(db)
	salaryRepo := salaryPostgres.NewSalaryRepository(db)

	userService := user.NewService(userRepo, config.Security.BCryptCost, lg)
	authService := auth.NewService(authPostgres.NewUserRepository(db), sessions, lg)
	analystService := analyst.NewService(analystRepo, lg)
	vacationService := vacation.NewService(vacationRepo, analystRepo, lg)
	salaryService := salary.NewService(salaryRepo, analystRepo, lg)

	// The in-memory store starts empty on every boot; make sure there is
	// always one way in.
	if err := userService.EnsureAdmin(seedAdminUsername, seedAdminPassword, seedAdminName, seedAdminEmail); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		mustSQLDB(db),
		config.Server.AllowedOrigins,
		auth.NewHandler(authService),
		user.NewHandler(userService),
		analyst.NewHandler(analystService),
		vacation.NewHandler(vacationService),
		salary.NewHandler(salaryService),
		lg,
	)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Sessions: sessions,
		Logger:   lg,
	}, nil
}

// initDB opens the backing store. The sqlite driver with the default :memory:
// source keeps every record in process memory; postgres is for deployments
// that want real persistence.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	}

	switch cfg.Driver {
	case internal.DriverPostgres:
		dbConn, err := sqlx.Connect("pgx", cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), gormCfg)

	default:
		db, err := gorm.Open(gormSqlite.Open(cfg.Source), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}

		// A shared in-memory sqlite database exists per connection; keep a
		// single one so every request sees the same store.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		// Schema is rebuilt on every boot since the store starts empty.
		if err := db.AutoMigrate(
			&userDatamodel.User{},
			&analystDatamodel.Analyst{},
			&vacationDatamodel.VacationPeriod{},
			&salaryDatamodel.SalaryHistory{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}

		return db, nil
	}
}

func mustSQLDB(db *gorm.DB) *sql.DB {
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	return sqlDB
}
