package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/deniz/teamup/internal/app/controllers"
	appMigrations "github.com/deniz/teamup/internal/app/migrations"
	appRepos "github.com/deniz/teamup/internal/app/repositories"
	appRoutes "github.com/deniz/teamup/internal/app/routes"
	appServices "github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/config"
	"github.com/deniz/teamup/internal/db"
	appMiddleware "github.com/deniz/teamup/internal/middleware"
	pkgAuth "github.com/deniz/teamup/internal/pkg/auth"
	"github.com/deniz/teamup/internal/pkg/filestorage"
	"github.com/deniz/teamup/internal/pkg/helpers"
	"github.com/deniz/teamup/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services               *appServices.Services
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	PostController         *appControllers.PostController
	ParticipantController  *appControllers.ParticipantController
	NotificationController *appControllers.NotificationController
	HomeController         *appControllers.HomeController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is loaded first so local overrides
// reach the env-based config layer.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database ready")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The file storage base URL must match the static file serving path
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorageBaseURL := strings.TrimRight(baseURL, "/") + "/uploads"

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.UserController = appControllers.NewUserController(deps.Services.Users)
	deps.PostController = appControllers.NewPostController(deps.Services.Posts)
	deps.ParticipantController = appControllers.NewParticipantController(deps.Services.Participants)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.Notifications)
	deps.HomeController = appControllers.NewHomeController(deps.Services.Posts)

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
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.PostController,
		deps.ParticipantController,
		deps.NotificationController,
		deps.HomeController,
		deps.AuthMiddleware,
	)

	return router
}
