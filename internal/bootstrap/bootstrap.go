package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/schoolreg/internal/app/controllers"
	appMigrations "github.com/yigit/schoolreg/internal/app/migrations"
	appRepos "github.com/yigit/schoolreg/internal/app/repositories"
	appRoutes "github.com/yigit/schoolreg/internal/app/routes"
	appServices "github.com/yigit/schoolreg/internal/app/services"
	"github.com/yigit/schoolreg/internal/config"
	"github.com/yigit/schoolreg/internal/db"
	appMiddleware "github.com/yigit/schoolreg/internal/middleware"
	"github.com/yigit/schoolreg/internal/pkg/logger"
	"github.com/yigit/schoolreg/internal/pkg/validation"
	"github.com/yigit/schoolreg/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService       appServices.UserService
	CourseService     appServices.CourseService
	EnrollmentService appServices.EnrollmentService
	UserController    *appControllers.UserController
	CourseController  *appControllers.CourseController
	HealthController  *appControllers.HealthController
	Repos             *appRepos.Repositories
	Database          *db.Database
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env is fine; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env")
	}

	configPath := config.GetEnv("CONFIG_PATH", config.DefaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger applies the logging section of cfg and returns the configured logger.
func SetupLogger(cfg *config.Config) zerolog.Logger {
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})
	return logger.Get()
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// An in-memory store is always empty on start.
	if cfg.Database.AutoMigrate || cfg.IsInMemorySQLite() {
		lgr.Info().Msg("Running database migrations...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		migrator := appMigrations.NewMigrator(database.SQL, database.Dialect, lgr)
		if err := migrator.Up(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		version, _, err := migrator.Version(ctx)
		if err != nil {
			lgr.Warn().Err(err).Msg("Could not read schema version")
		}
		lgr.Info().Uint("version", version).Msg("Database migrations successfully applied.")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Database: database}

	deps.Repos = appRepos.NewRepositories(database)
	validator := validation.New()

	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		validator,
		lgr.With().Str("component", "users").Logger(),
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		validator,
		lgr.With().Str("component", "courses").Logger(),
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		validator,
		lgr.With().Str("component", "enrollment").Logger(),
	)

	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService)
	deps.HealthController = appControllers.NewHealthController(database)

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, deps.UserService, deps.CourseService, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.ContextWithFallback = true
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.CourseController,
		deps.HealthController,
	)

	return router
}

// WrapCORS applies the configured CORS policy around the router.
func WrapCORS(cfg *config.Config, handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	}).Handler(handler)
}
