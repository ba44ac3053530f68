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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/auth"
	authPostgres "github.com/campushub/records-portal/internal/auth/postgres"
	"github.com/campushub/records-portal/internal/core/events"
	"github.com/campushub/records-portal/internal/hierarchy"
	hierarchyPostgres "github.com/campushub/records-portal/internal/hierarchy/postgres"
	"github.com/campushub/records-portal/internal/identifier"
	identifierPostgres "github.com/campushub/records-portal/internal/identifier/postgres"
	"github.com/campushub/records-portal/internal/mailer"
	"github.com/campushub/records-portal/internal/person"
	personPostgres "github.com/campushub/records-portal/internal/person/postgres"
	"github.com/campushub/records-portal/internal/registration"
	registrationPostgres "github.com/campushub/records-portal/internal/registration/postgres"
	"github.com/campushub/records-portal/internal/transport"
	"github.com/campushub/records-portal/internal/transport/rest"
	"github.com/campushub/records-portal/internal/transport/swagger"
	"github.com/campushub/records-portal/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Redis  *redis.Client
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler         *auth.Handler
	HierarchyHandler    *hierarchy.Handler
	RegistrationHandler *registration.Handler
	PersonHandler       *person.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if _, err := swagger.LoadSpec("./api/openapi.yml"); err != nil {
		deps.Logger.Warn("openapi spec not loadable, swagger ui may 404", "error", err)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.Redis,
		deps.AuthHandler,
		deps.HierarchyHandler,
		deps.RegistrationHandler,
		deps.PersonHandler,
		deps.Logger,
	)

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
		if err := deps.Redis.Close(); err != nil {
			slog.Error("Redis close error", "error", err)
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

	logger.Init(config.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: config.Redis.Addr,
		DB:   config.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	mailSender := mailer.New(
		config.Mail.Host,
		config.Mail.Port,
		config.Mail.Username,
		config.Mail.Password,
		config.Mail.From,
	)
	mailer.NewEventHandler(mailSender, lg).RegisterEventHandlers(eventBus)

	hierarchyRepo := hierarchyPostgres.NewHierarchyRepository(gormDB)
	hierarchyService := hierarchy.NewService(hierarchyRepo, lg)
	hierarchyHandler := hierarchy.NewHandler(transport.NewBaseHandler(lg), hierarchyService)

	studentIDs := identifier.NewGenerator(identifierPostgres.NewStudentIdentifierRepository(gormDB), lg)
	employeeIDs := identifier.NewGenerator(identifierPostgres.NewEmployeeIdentifierRepository(gormDB), lg)

	sessions := auth.NewSessionManager(config.Security.SessionSecret, config.Security.SessionDuration)
	captchaStore := auth.NewRedisCaptchaStore(redisClient, config.Redis.CaptchaTTL)

	authService := auth.NewService(
		authPostgres.NewAccountRepository(gormDB),
		authPostgres.NewOtpRepository(gormDB),
		captchaStore,
		sessions,
		eventBus,
		config.Security.OtpValidity,
		config.Security.BCryptCost,
		lg,
	)
	authHandler := auth.NewHandler(authService)

	registrationService := registration.NewService(
		registrationPostgres.NewRegistrationRepository(gormDB),
		hierarchyService,
		studentIDs,
		employeeIDs,
		eventBus,
		config.Security.BCryptCost,
		lg,
	)
	registrationHandler := registration.NewHandler(registrationService)

	personService := person.NewService(
		personPostgres.NewPersonRepository(gormDB),
		hierarchyService,
		studentIDs,
		employeeIDs,
		lg,
	)
	personHandler := person.NewHandler(personService)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Redis:  redisClient,
		Router: chi.NewRouter(),
		Logger: lg,

		AuthHandler:         authHandler,
		HierarchyHandler:    hierarchyHandler,
		RegistrationHandler: registrationHandler,
		PersonHandler:       personHandler,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers gorm over the already-open pgx connection pool so the ORM
// and raw health checks share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}
