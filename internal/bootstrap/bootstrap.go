package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dstcrm/dstcrm/internal/app/controllers"
	appMigrations "github.com/dstcrm/dstcrm/internal/app/migrations"
	appRepos "github.com/dstcrm/dstcrm/internal/app/repositories"
	appRoutes "github.com/dstcrm/dstcrm/internal/app/routes"
	appServices "github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/config"
	"github.com/dstcrm/dstcrm/internal/db"
	appMiddleware "github.com/dstcrm/dstcrm/internal/middleware"
	pkgAuth "github.com/dstcrm/dstcrm/internal/pkg/auth"
	"github.com/dstcrm/dstcrm/internal/pkg/email"
	"github.com/dstcrm/dstcrm/internal/pkg/helpers"
	"github.com/dstcrm/dstcrm/internal/pkg/logger"
	"github.com/dstcrm/dstcrm/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	PaymentService    *appServices.PaymentService
	ReconcileService  *appServices.ReconcileService
	ImportService     *appServices.ImportService
	StatsService      *appServices.StatsService
	MailService       *appServices.MailService
	UserService       *appServices.UserService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	PaymentController *appControllers.PaymentController
	ImportController  *appControllers.ImportController
	StatsController   *appControllers.StatsController
	MailController    *appControllers.MailController
	UserController    *appControllers.UserController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	MailSender        email.Sender
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.MailSender = email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.AllowedEmailRepository,
		deps.JWTService,
		cfg.Admin.Email,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.PaymentRepository, lgr)
	deps.PaymentService = appServices.NewPaymentService(deps.Repos.PaymentRepository, lgr)
	deps.ReconcileService = appServices.NewReconcileService(deps.Repos.StudentRepository, deps.Repos.PaymentRepository, lgr)
	deps.ImportService = appServices.NewImportService(deps.Repos.StudentRepository, deps.Repos.PaymentRepository, lgr)
	deps.StatsService = appServices.NewStatsService(deps.Repos.StudentRepository, deps.Repos.PaymentRepository, lgr)
	deps.MailService = appServices.NewMailService(deps.MailSender, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.AllowedEmailRepository, deps.Repos.PendingRegRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.Logger)
	deps.PaymentController = appControllers.NewPaymentController(deps.PaymentService, deps.ReconcileService, deps.Logger)
	deps.ImportController = appControllers.NewImportController(deps.ImportService, deps.Logger)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService, deps.Logger)
	deps.MailController = appControllers.NewMailController(deps.MailService, deps.Logger)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.Logger)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.PaymentController,
		deps.ImportController,
		deps.StatsController,
		deps.MailController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
